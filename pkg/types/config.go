// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration, wire, and report structures shared
// between the CLI surface and the import pipeline.
package types

import "time"

// HTTPConfig holds shared HTTP settings for the Capacities API client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with API requests
	// (e.g. "weblink-importer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ImportConfig holds the validated settings for one import run. Construct it
// through internal/config so required fields are checked once at startup.
type ImportConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the Capacities bearer token. Required.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// SpaceID is the UUID of the target Capacities space. Required.
	SpaceID string `json:"space_id" yaml:"space_id"`

	// VaultPath is the root directory scanned for Markdown files. Required;
	// the directory must exist.
	VaultPath string `json:"vault_path" yaml:"vault_path"`

	// Glob is the filename pattern matched against base names during the
	// recursive scan (default "*.md").
	Glob string `json:"glob" yaml:"glob"`

	// MaxFiles caps how many matched files are processed, first N in sorted
	// order. Zero means unlimited.
	MaxFiles int `json:"max_files" yaml:"max_files"`

	// SleepSeconds is the fallback delay between consecutive API calls when
	// the response carries no usable rate-limit headers (default 7; the
	// published limit is 10 requests per 60s, so 7 is conservative).
	SleepSeconds int `json:"sleep_seconds" yaml:"sleep_seconds"`

	// AddFilenameHeader controls whether each body is prefixed with a
	// "### Imported: <file>" provenance line (default true).
	AddFilenameHeader bool `json:"add_filename_header" yaml:"add_filename_header"`

	// Tags are optional Capacities tag names attached to every created
	// weblink. Names must match existing tags exactly.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Description is an optional descriptionOverwrite applied to every
	// created weblink, clamped to DescriptionCap at load time.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// FallbackDelay returns SleepSeconds as a duration.
func (c ImportConfig) FallbackDelay() time.Duration {
	return time.Duration(c.SleepSeconds) * time.Second
}
