// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ArticleRef identifies one article under consideration for full-text
// retrieval. Records arrive from the metadata-fetch stage; this subsystem
// does not validate them beyond what retrieval itself requires.
type ArticleRef struct {
	// DOI in canonical form, e.g. "10.1101/2024.12.18.628357".
	DOI string `json:"doi" yaml:"doi"`

	// PublicationDate in YYYY-MM-DD form. Empty when the upstream source
	// did not supply one; retrieval then cannot locate the month folder.
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`

	// Title is carried through for status output only.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// MonthIndex maps normalized DOIs to archive keys for one month folder.
// DOIs are unique within an index; on the rare duplicate, the last
// extraction wins. Indices are rebuilt wholesale, never patched.
type MonthIndex struct {
	// DOIs maps DOI -> S3 key.
	DOIs map[string]string

	// BuiltAt is when the index was built or loaded from disk.
	BuiltAt time.Time
}
