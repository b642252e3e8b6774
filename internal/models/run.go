package models

import (
	"time"
)

// JobStatus is what the control panel reports for an action
type JobStatus string

const (
	StatusIdle      JobStatus = "idle"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusError     JobStatus = "error"
)

// Run is one launched subprocess, kept in the run history
type Run struct {
	ID         string     `json:"id"`
	Action     string     `json:"action"`
	Command    string     `json:"command"`
	Status     JobStatus  `json:"status"`
	ExitCode   int        `json:"exit_code"`
	Output     string     `json:"output,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"` // nil while running
}

// RunSummary is a lightweight version for listings
type RunSummary struct {
	ID         string     `json:"id"`
	Action     string     `json:"action"`
	Status     JobStatus  `json:"status"`
	ExitCode   int        `json:"exit_code"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Issue is a localization finding reported by the validator
type Issue struct {
	File      string `json:"file"`
	Line      int    `json:"line,omitempty"`
	Field     string `json:"field,omitempty"`
	Found     string `json:"found,omitempty"`
	Expected  string `json:"expected,omitempty"`
	Context   string `json:"context,omitempty"`
	Sample    string `json:"sample_value,omitempty"`
	CharIndex *int   `json:"char_index,omitempty"`
	Problem   string `json:"issue,omitempty"` // file-level problem, e.g. "File not found"
}
