package models

// WouldSendEntry is a dry-run record: the profile plus the message it would
// have received.
type WouldSendEntry struct {
	Profile
	MessagePreview string `json:"message_preview"`
}

// SkippedEntry is a profile skipped for a business reason, not a fault.
type SkippedEntry struct {
	Profile
	Reason string `json:"reason"`
}

// ErrorEntry is a profile whose processing failed unexpectedly.
type ErrorEntry struct {
	Profile
	Error string `json:"error"`
}

// Summary carries the run-level counters.
type Summary struct {
	Mode         string `json:"mode"`
	TotalSent    int    `json:"totalSent"`
	TotalSkipped int    `json:"totalSkipped"`
	TotalErrors  int    `json:"totalErrors"`
}

// RunResult is the final report of one run. The four lists partition every
// outcome by variant; a profile appears in exactly one of them.
type RunResult struct {
	Success   bool             `json:"success"`
	DryRun    bool             `json:"dry_run"`
	Summary   Summary          `json:"summary"`
	WouldSend []WouldSendEntry `json:"would_send"`
	Sent      []Profile        `json:"sent"`
	Skipped   []SkippedEntry   `json:"skipped"`
	Errors    []ErrorEntry     `json:"errors"`
}
