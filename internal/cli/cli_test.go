package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/merchant/internal/model"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "1944", want: "MCMXLIV"},
		{input: "MCMXLIV", want: "1944"},
		{input: "mcmxliv", want: "1944"},
		{input: "3999", want: "MMMCMXCIX"},
		{input: "42", want: "XLII"},
		{input: "0", wantErr: true},
		{input: "4000", wantErr: true},
		{input: "-7", wantErr: true},
		{input: "IIII", wantErr: true},
		{input: "VX", wantErr: true},
		{input: "ABC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := convert(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("convert(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("convert(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRunConvert(t *testing.T) {
	var out, errOut bytes.Buffer
	convertCmd.SetOut(&out)
	convertCmd.SetErr(&errOut)
	defer func() {
		convertCmd.SetOut(nil)
		convertCmd.SetErr(nil)
	}()

	err := runConvert(convertCmd, []string{"XLII", "IIII", "2006"})
	if err == nil {
		t.Fatal("expected error for failed conversion")
	}
	if !strings.Contains(err.Error(), "1 of 3") {
		t.Errorf("error = %v, want failure count", err)
	}

	want := "XLII = 42\n2006 = MMVI\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(errOut.String(), "IIII") {
		t.Errorf("stderr = %q, want failing input reported", errOut.String())
	}
}

func TestRunSession(t *testing.T) {
	logger = zap.NewNop()

	notes := strings.Join([]string{
		"glob is I",
		"prok is V",
		"pish is X",
		"tegj is L",
		"glob glob Silver is 34 Credits",
		"how much is pish tegj glob glob ?",
		"how many Credits is glob prok Silver ?",
		"how much wood could a woodchuck chuck ?",
	}, "\n") + "\n"

	cfg := model.DefaultConfig()
	var out bytes.Buffer
	stats, err := runSession(context.Background(), cfg, strings.NewReader(notes), &out)
	if err != nil {
		t.Fatalf("runSession() error = %v", err)
	}

	want := strings.Join([]string{
		"pish tegj glob glob is 42",
		"glob prok Silver is 68 Credits",
		"I have no idea what you are talking about",
		"Bye! See you soon!",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
	if stats.Replies != 3 {
		t.Errorf("Replies = %d, want 3", stats.Replies)
	}
}

func TestRunSessionWithoutCache(t *testing.T) {
	logger = zap.NewNop()

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Session.Farewell = ""

	var out bytes.Buffer
	_, err := runSession(context.Background(), cfg, strings.NewReader("glob is I\nhow much is glob glob ?\n"), &out)
	if err != nil {
		t.Fatalf("runSession() error = %v", err)
	}
	if got, want := out.String(), "glob glob is 2\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".merchant", "config.yaml")

	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Merchant Configuration File") {
		t.Errorf("config missing header:\n%s", data)
	}

	var got model.Config
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("config is not valid YAML: %v", err)
	}
	if diff := cmp.Diff(*model.DefaultConfig(), got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	if err := writeDefaultConfig(path); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.yaml")
	summary := model.BatchSummary{
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Sessions: []model.SessionSummary{
			{Source: "a.txt", Transcript: "a.out", Lines: 3, Replies: 1},
			{Source: "b.txt", Error: "open b.txt: no such file or directory"},
		},
	}
	summary.Tally()

	if err := writeSummary(path, &summary); err != nil {
		t.Fatalf("writeSummary() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var got model.BatchSummary
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("summary is not valid YAML: %v", err)
	}
	if got.Total != 2 || got.Succeeded != 1 || got.Failed != 1 {
		t.Errorf("tally = %d/%d/%d, want 2/1/1", got.Total, got.Succeeded, got.Failed)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	if got := strings.TrimSpace(out.String()); got != "merchant v0.1.0" {
		t.Errorf("version = %q", got)
	}
}
