// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package weblink shapes /save-weblink payloads and issues them against the
// Capacities API.
package weblink

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/weblink-importer/pkg/types"
)

// ellipsis replaces the final rune of a clamped string so the result sits
// exactly at its cap.
const ellipsis = "…"

// importedHeader prefixes the body with the source filename when the
// add-filename-header option is on.
const importedHeader = "### Imported: "

// Clamp truncates s to at most limit runes. When truncation occurs the last
// kept rune is replaced by an ellipsis so the result is exactly limit runes.
func Clamp(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + ellipsis
}

// BuildPayload shapes the outbound record for one file. The raw bytes are
// decoded permissively: invalid UTF-8 sequences are dropped, not errors.
// ok is false when the trimmed content is empty and no request should be
// issued for the file.
func BuildPayload(path string, raw []byte, cfg types.ImportConfig) (req types.WeblinkRequest, ok bool) {
	body := strings.TrimSpace(strings.ToValidUTF8(string(raw), ""))
	if body == "" {
		return types.WeblinkRequest{}, false
	}

	name := filepath.Base(path)
	mdText := body
	if cfg.AddFilenameHeader {
		mdText = importedHeader + name + "\n\n" + body
	}

	req = types.WeblinkRequest{
		SpaceID:              cfg.SpaceID,
		URL:                  types.PlaceholderURL,
		MDText:               Clamp(mdText, types.MDTextCap),
		TitleOverwrite:       Clamp(strings.TrimSuffix(name, filepath.Ext(name)), types.TitleCap),
		DescriptionOverwrite: cfg.Description,
		Tags:                 cfg.Tags,
	}
	return req, true
}
