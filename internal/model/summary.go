package model

import "time"

// BatchSummary is the report written after a batch of note files is processed
type BatchSummary struct {
	GeneratedAt time.Time        `yaml:"generated_at"`
	Total       int              `yaml:"total"`
	Succeeded   int              `yaml:"succeeded"`
	Failed      int              `yaml:"failed"`
	Sessions    []SessionSummary `yaml:"sessions"`
}

// SessionSummary describes one note file's session
type SessionSummary struct {
	Source       string `yaml:"source"`               // Note file that was read
	Transcript   string `yaml:"transcript,omitempty"` // File replies were written to
	SessionID    string `yaml:"session_id,omitempty"`
	Lines        int    `yaml:"lines"`
	Replies      int    `yaml:"replies"`
	Unrecognized int    `yaml:"unrecognized"`
	Error        string `yaml:"error,omitempty"`
}

// Tally fills the totals from Sessions
func (s *BatchSummary) Tally() {
	s.Total = len(s.Sessions)
	s.Succeeded, s.Failed = 0, 0
	for _, sess := range s.Sessions {
		if sess.Error != "" {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
}
