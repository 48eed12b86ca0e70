// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the validated import configuration from environment
// variables, an optional YAML config file, and .secrets/ fallbacks.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/weblink-importer/internal/secrets"
	"github.com/pdiddy/weblink-importer/internal/weblink"
	"github.com/pdiddy/weblink-importer/pkg/types"
)

// Environment variable names, kept compatible with the original import
// tooling so existing .env setups keep working.
const (
	EnvAPIKey      = "CAPACITIES_API_KEY"
	EnvSpaceID     = "SPACE_ID"
	EnvVaultPath   = "VAULT_PATH"
	EnvGlob        = "GLOB"
	EnvMaxFiles    = "MAX_FILES"
	EnvSleep       = "SLEEP_SECONDS"
	EnvAddHeader   = "ADD_FILENAME_HEADER"
	EnvTags        = "TAGS"
	EnvDescription = "DESCRIPTION"
)

// Defaults for optional settings.
const (
	DefaultGlob         = "*.md"
	DefaultSleepSeconds = 7
	DefaultTimeout      = 60 * time.Second
	DefaultUserAgent    = "weblink-importer/0.1"
)

// bindings maps viper config keys to their environment variables.
var bindings = map[string]string{
	"api_key":             EnvAPIKey,
	"space_id":            EnvSpaceID,
	"vault_path":          EnvVaultPath,
	"glob":                EnvGlob,
	"max_files":           EnvMaxFiles,
	"sleep_seconds":       EnvSleep,
	"add_filename_header": EnvAddHeader,
	"tags":                EnvTags,
	"description":         EnvDescription,
}

// Load builds an ImportConfig from v, falling back to sec for credentials.
// The vault path is required here; credentials are checked separately by
// RequireAuth so the scan command runs without a token. Malformed numeric
// and boolean settings fall back to their defaults; the description is
// clamped to its cap at load time.
func Load(v *viper.Viper, sec map[string]string) (types.ImportConfig, error) {
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return types.ImportConfig{}, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	apiKey := strings.TrimSpace(v.GetString("api_key"))
	if apiKey == "" {
		apiKey = sec[secrets.KeyAPIKey]
	}
	spaceID := strings.TrimSpace(v.GetString("space_id"))
	if spaceID == "" {
		spaceID = sec[secrets.KeySpaceID]
	}

	vaultPath := strings.TrimSpace(v.GetString("vault_path"))
	if vaultPath == "" {
		return types.ImportConfig{}, fmt.Errorf("missing required setting %s", EnvVaultPath)
	}

	glob := strings.TrimSpace(v.GetString("glob"))
	if glob == "" {
		glob = DefaultGlob
	}

	maxFiles := parseInt(v.GetString("max_files"), 0)
	if maxFiles < 0 {
		maxFiles = 0
	}

	cfg := types.ImportConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		APIKey:            apiKey,
		SpaceID:           spaceID,
		VaultPath:         vaultPath,
		Glob:              glob,
		MaxFiles:          maxFiles,
		SleepSeconds:      parseInt(v.GetString("sleep_seconds"), DefaultSleepSeconds),
		AddFilenameHeader: parseBool(v.GetString("add_filename_header"), true),
		Tags:              splitTags(v.GetString("tags")),
		Description:       weblink.Clamp(strings.TrimSpace(v.GetString("description")), types.DescriptionCap),
	}
	return cfg, nil
}

// RequireAuth verifies the credentials needed to call the API, naming the
// missing setting and its .secrets/ fallback in the error.
func RequireAuth(cfg types.ImportConfig) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("missing required setting %s (set the environment variable or %s%s)",
			EnvAPIKey, secrets.DefaultDir, secrets.KeyAPIKey)
	}
	if cfg.SpaceID == "" {
		return fmt.Errorf("missing required setting %s (set the environment variable or %s%s)",
			EnvSpaceID, secrets.DefaultDir, secrets.KeySpaceID)
	}
	return nil
}

// parseInt returns the parsed value of s, or def when s is blank or
// malformed.
func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// parseBool accepts 1/true/yes/y case-insensitively; any other non-blank
// value is false, and blank means def.
func parseBool(s string, def bool) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	switch s {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// splitTags splits a comma-separated tag list, trimming entries and
// dropping empties. An all-blank input yields nil.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
