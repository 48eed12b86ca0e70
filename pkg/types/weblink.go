// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Field caps from the published /save-weblink schema. Counted in runes;
// clamped strings end with a single ellipsis rune so they sit exactly at
// the cap.
const (
	// MDTextCap is the maximum mdText length.
	MDTextCap = 200_000

	// TitleCap is the maximum titleOverwrite length.
	TitleCap = 500

	// DescriptionCap is the maximum descriptionOverwrite length.
	DescriptionCap = 1_000
)

// PlaceholderURL fills the mandatory url field. The service requires a URL
// on every weblink but none is meaningful for a local-file import.
const PlaceholderURL = "https://www.google.com"

// WeblinkRequest is the /save-weblink request body.
type WeblinkRequest struct {
	SpaceID              string   `json:"spaceId"`
	URL                  string   `json:"url"`
	MDText               string   `json:"mdText"`
	TitleOverwrite       string   `json:"titleOverwrite,omitempty"`
	DescriptionOverwrite string   `json:"descriptionOverwrite,omitempty"`
	Tags                 []string `json:"tags,omitempty"`
}

// WeblinkResponse is the subset of the success body the importer reads.
type WeblinkResponse struct {
	ID string `json:"id"`
}
