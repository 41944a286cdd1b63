package models

import "time"

// LintMessageInfo holds the detail of a single lint finding.
type LintMessageInfo struct {
	ID            string `json:"id"`
	LintMessageID string `json:"lintMessageId,omitempty"`
	Message       string `json:"message"`
	Path          string `json:"path,omitempty"`
}

// LintMessage describes one rule violation.
type LintMessage struct {
	ID        string            `json:"id"`
	Code      string            `json:"code"`
	Severity  string            `json:"severity"`
	CreatedAt time.Time         `json:"createdAt"`
	Infos     []LintMessageInfo `json:"infos,omitempty"`
}

// LintResult is the outcome of one lint run.
type LintResult struct {
	ID        string        `json:"id"`
	Successes bool          `json:"successes"`
	Failures  int           `json:"failures"`
	Warnings  int           `json:"warnings"`
	Score     int           `json:"score"`
	Messages  []LintMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
}
