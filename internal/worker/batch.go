package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/merchant/internal/model"
	"github.com/ppiankov/merchant/internal/session"
)

// SessionFactory creates a fresh session for one note file
type SessionFactory func() *session.Session

// SessionJob runs one note file through its own session
type SessionJob struct {
	Index      int
	Source     string
	Transcript string
	NewSession SessionFactory
	Limiter    *Limiter
}

// Execute executes the session job
func (j *SessionJob) Execute(ctx context.Context) Result {
	result := &SessionResult{
		Index:      j.Index,
		Source:     j.Source,
		Transcript: j.Transcript,
	}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			result.Error = fmt.Errorf("wait for rate limit: %w", err)
			return result
		}
	}

	in, err := os.Open(j.Source)
	if err != nil {
		result.Error = fmt.Errorf("open notes: %w", err)
		return result
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(j.Transcript)
	if err != nil {
		result.Error = fmt.Errorf("create transcript: %w", err)
		return result
	}

	sess := j.NewSession()
	result.SessionID = sess.ID

	result.Stats, err = sess.Run(ctx, in, out)
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("close transcript: %w", closeErr)
	}
	result.Error = err

	return result
}

// SessionResult represents the result of a session job
type SessionResult struct {
	Index      int
	Source     string
	Transcript string
	SessionID  string
	Stats      session.Stats
	Error      error
}

// GetError returns the error from the session result
func (r *SessionResult) GetError() error {
	return r.Error
}

// Summary converts the result to its report entry
func (r *SessionResult) Summary() model.SessionSummary {
	s := model.SessionSummary{
		Source:       r.Source,
		Transcript:   r.Transcript,
		SessionID:    r.SessionID,
		Lines:        r.Stats.Lines,
		Replies:      r.Stats.Replies,
		Unrecognized: r.Stats.Unrecognized,
	}
	if r.Error != nil {
		s.Error = r.Error.Error()
	}
	return s
}

// BatchProcessor runs multiple note files concurrently, one session each
type BatchProcessor struct {
	newSession  SessionFactory
	concurrency int
	outputDir   string
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(newSession SessionFactory, concurrency int, outputDir string, sessionsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		newSession:  newSession,
		concurrency: concurrency,
		outputDir:   outputDir,
		limiter:     NewLimiter(sessionsPerSecond, burst),
	}
}

// ProcessFiles runs every note file and returns results in input order
func (b *BatchProcessor) ProcessFiles(ctx context.Context, sources []string) []*SessionResult {
	if len(sources) == 0 {
		return []*SessionResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	names := TranscriptNames(sources)
	for i, source := range sources {
		pool.Submit(&SessionJob{
			Index:      i,
			Source:     source,
			Transcript: filepath.Join(b.outputDir, names[i]),
			NewSession: b.newSession,
			Limiter:    b.limiter,
		})
	}

	results := pool.Wait()

	sessionResults := make([]*SessionResult, 0, len(results))
	for _, result := range results {
		sessionResults = append(sessionResults, result.(*SessionResult))
	}
	sort.Slice(sessionResults, func(i, j int) bool {
		return sessionResults[i].Index < sessionResults[j].Index
	})

	return sessionResults
}

// ProcessListFile reads note file paths from a list file and processes them
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string) ([]*SessionResult, error) {
	sources, err := ReadSourcesFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessFiles(ctx, sources), nil
}

// ReadSourcesFromFile reads note file paths from a file (one per line).
// Relative paths are resolved against the list file's directory.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)
	base := filepath.Dir(filePath)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}

// TranscriptNames derives a distinct transcript file name for each source
func TranscriptNames(sources []string) []string {
	names := make([]string, len(sources))
	used := make(map[string]int)

	for i, source := range sources {
		stem := sanitizeFilename(strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)))
		if stem == "" {
			stem = "notes"
		}

		name := stem + ".out"
		if n := used[stem]; n > 0 {
			name = fmt.Sprintf("%s-%d.out", stem, n+1)
		}
		used[stem]++
		names[i] = name
	}

	return names
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(s)

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}

	return s
}
