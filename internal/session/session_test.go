package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/ppiankov/merchant/internal/model"
)

const galaxyInput = `glob is I
prok is V
pish is X
tegj is L
glob glob Silver is 34 Credits
glob prok Gold is 57800 Credits
pish pish Iron is 3910 Credits
how much is pish tegj glob glob ?
how many Credits is glob prok Silver ?
how many Credits is glob prok Gold ?
how many Credits is glob prok Iron ?
how much wood could a woodchuck chuck if a woodchuck could chuck wood ?
`

func run(t *testing.T, cfg model.SessionConfig, input string) ([]string, Stats) {
	t.Helper()

	var out bytes.Buffer
	s := New(cfg, zap.NewNop())
	stats, err := s.Run(context.Background(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n"), stats
}

func TestSession_QuietSuccess(t *testing.T) {
	cfg := model.DefaultConfig().Session
	lines, stats := run(t, cfg, galaxyInput)

	want := []string{
		"pish tegj glob glob is 42",
		"glob prok Silver is 68 Credits",
		"glob prok Gold is 57800 Credits",
		"glob prok Iron is 782 Credits",
		"I have no idea what you are talking about",
		"Bye! See you soon!",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(Stats{Lines: 12, Replies: 5, Unrecognized: 1}, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_EchoSuccess(t *testing.T) {
	cfg := model.DefaultConfig().Session
	cfg.EchoSuccess = true
	cfg.Farewell = ""

	lines, stats := run(t, cfg, "glob is I\nglob glob Silver is 34 Credits\nhow much is glob ?\n")

	want := []string{"", "", "glob is 1"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
	if stats.Replies != 3 {
		t.Errorf("expected 3 replies, got %d", stats.Replies)
	}
}

func TestSession_StopConditions(t *testing.T) {
	tests := map[string]string{
		"stop word":  "glob is I\nSTOP\nhow much is glob ?\n",
		"blank line": "glob is I\n\nhow much is glob ?\n",
		"whitespace": "glob is I\n   \nhow much is glob ?\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			lines, stats := run(t, model.DefaultConfig().Session, input)

			if diff := cmp.Diff([]string{"Bye! See you soon!"}, lines); diff != "" {
				t.Errorf("transcript mismatch (-want +got):\n%s", diff)
			}
			if stats.Lines != 1 {
				t.Errorf("expected 1 processed line, got %d", stats.Lines)
			}
		})
	}
}

func TestSession_CRLFInput(t *testing.T) {
	lines, _ := run(t, model.DefaultConfig().Session, "glob is I\r\nhow much is glob glob ?\r\n")

	if lines[0] != "glob glob is 2" {
		t.Errorf("expected CRLF input to be handled, got %q", lines[0])
	}
}

func TestSession_Prompt(t *testing.T) {
	cfg := model.DefaultConfig().Session
	cfg.Prompt = "> "
	cfg.Farewell = ""

	var out bytes.Buffer
	s := New(cfg, nil)
	if _, err := s.Run(context.Background(), strings.NewReader("glob is I\n"), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if out.String() != "> > " {
		t.Errorf("expected two prompts, got %q", out.String())
	}
}

func TestSession_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(model.DefaultConfig().Session, nil)
	_, err := s.Run(ctx, strings.NewReader(galaxyInput), &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSession_IndependentState(t *testing.T) {
	a := New(model.DefaultConfig().Session, nil)
	b := New(model.DefaultConfig().Session, nil)

	if a.ID == b.ID {
		t.Error("sessions must have distinct IDs")
	}

	a.Interpreter().Ask("glob is I")
	if _, ok := b.Interpreter().Symbol("glob"); ok {
		t.Error("sessions must not share noun tables")
	}
}
