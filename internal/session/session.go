// Package session drives an interpreter from a line source to a line sink.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/merchant/internal/interpreter"
	"github.com/ppiankov/merchant/internal/model"
)

// Stats summarizes a finished session
type Stats struct {
	Lines        int // Lines handed to the interpreter
	Replies      int // Lines written to the sink
	Unrecognized int // Lines answered with interpreter.NoIdea
}

// Session is one conversation: an interpreter plus the rules for reading
// and writing lines
type Session struct {
	ID     string
	cfg    model.SessionConfig
	interp *interpreter.Interpreter
	logger *zap.Logger
}

// New creates a session with a fresh interpreter
func New(cfg model.SessionConfig, logger *zap.Logger, opts ...interpreter.Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.NewString()
	logger = logger.With(zap.String("session", id))

	opts = append([]interpreter.Option{interpreter.WithLogger(logger)}, opts...)

	return &Session{
		ID:     id,
		cfg:    cfg,
		interp: interpreter.New(opts...),
		logger: logger,
	}
}

// Interpreter returns the interpreter owned by the session
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// Run reads lines from in until end of input, a blank line or the stop word,
// writing one reply per answered line to out. The farewell is written when
// the loop ends normally.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) (Stats, error) {
	var stats Stats
	w := bufio.NewWriter(out)

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			_ = w.Flush()
			return stats, err
		}

		if s.cfg.Prompt != "" {
			if _, err := w.WriteString(s.cfg.Prompt); err != nil {
				return stats, fmt.Errorf("write prompt: %w", err)
			}
			if err := w.Flush(); err != nil {
				return stats, fmt.Errorf("flush prompt: %w", err)
			}
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if s.isStop(line) {
			break
		}

		resp, ok := s.interp.Process(line)
		if !ok {
			break
		}
		stats.Lines++
		if resp.Text == interpreter.NoIdea {
			stats.Unrecognized++
		}

		if resp.Text == "" && !s.cfg.EchoSuccess {
			continue
		}
		if _, err := fmt.Fprintln(w, resp.Text); err != nil {
			return stats, fmt.Errorf("write reply: %w", err)
		}
		stats.Replies++

		// Interactive callers need each reply before the next line is read
		if err := w.Flush(); err != nil {
			return stats, fmt.Errorf("flush reply: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		_ = w.Flush()
		return stats, fmt.Errorf("read line: %w", err)
	}

	if s.cfg.Farewell != "" {
		if _, err := fmt.Fprintln(w, s.cfg.Farewell); err != nil {
			return stats, fmt.Errorf("write farewell: %w", err)
		}
	}

	s.logger.Debug("session finished",
		zap.Int("lines", stats.Lines),
		zap.Int("replies", stats.Replies),
		zap.Int("unrecognized", stats.Unrecognized),
	)

	return stats, w.Flush()
}

// isStop reports whether line ends the session
func (s *Session) isStop(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	return s.cfg.StopWord != "" && strings.EqualFold(trimmed, s.cfg.StopWord)
}
