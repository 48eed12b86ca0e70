// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FileAction classifies what the importer did with one file.
type FileAction string

const (
	ActionCreated FileAction = "created"
	ActionSkipped FileAction = "skipped"
	ActionFailed  FileAction = "failed"
)

// FileOutcome records the result for a single scanned file.
type FileOutcome struct {
	Path   string     `json:"path" yaml:"path"`
	Action FileAction `json:"action" yaml:"action"`

	// WeblinkID is the identifier returned by the service, when the success
	// body could be decoded.
	WeblinkID string `json:"weblink_id,omitempty" yaml:"weblink_id,omitempty"`

	// Detail explains skips and failures (empty file, HTTP status, ...).
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// RunReport summarizes one import run. Written as YAML when --report is set.
type RunReport struct {
	VaultPath  string        `json:"vault_path" yaml:"vault_path"`
	Glob       string        `json:"glob" yaml:"glob"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time     `json:"finished_at" yaml:"finished_at"`
	Created    int           `json:"created" yaml:"created"`
	Skipped    int           `json:"skipped" yaml:"skipped"`
	Failed     int           `json:"failed" yaml:"failed"`
	Files      []FileOutcome `json:"files" yaml:"files"`
}
