// Package taxon provides the data model shared by every data source:
// source tags, source-typed identifiers, normalized records, tables
// and results. This is a pure package without I/O.
package taxon

import (
	"fmt"
	"strings"
)

// Source is a tag of an external taxonomic data provider.
// Identifiers from one source are meaningless for any other source.
type Source int

const (
	UnknownSource Source = iota
	EOL
	ITIS
	NCBI
	WoRMS
	BOLD
	CoL
)

// AllSources lists supported sources in their canonical order.
var AllSources = []Source{EOL, ITIS, NCBI, WoRMS, BOLD, CoL}

var sourceNames = map[Source]string{
	EOL:   "eol",
	ITIS:  "itis",
	NCBI:  "ncbi",
	WoRMS: "worms",
	BOLD:  "bold",
	CoL:   "col",
}

var sourceTitles = map[Source]string{
	EOL:   "Encyclopedia of Life",
	ITIS:  "Integrated Taxonomic Information System",
	NCBI:  "NCBI Taxonomy (Entrez)",
	WoRMS: "World Register of Marine Species",
	BOLD:  "Barcode of Life Data Systems",
	CoL:   "Catalogue of Life (ChecklistBank)",
}

var sourceAliases = map[string]Source{
	"eol":           EOL,
	"itis":          ITIS,
	"ritis":         ITIS,
	"ncbi":          NCBI,
	"entrez":        NCBI,
	"worms":         WoRMS,
	"aphia":         WoRMS,
	"bold":          BOLD,
	"col":           CoL,
	"checklistbank": CoL,
}

// NewSource converts a string to a Source. It is case-insensitive
// and understands a few common aliases (e.g. "ritis", "entrez").
func NewSource(s string) (Source, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if res, ok := sourceAliases[s]; ok {
		return res, nil
	}
	return UnknownSource, fmt.Errorf("unknown data source '%s'", s)
}

// String returns the short lowercase name of the source.
func (s Source) String() string {
	if res, ok := sourceNames[s]; ok {
		return res
	}
	return "unknown"
}

// Title returns the full name of the data provider.
func (s Source) Title() string {
	if res, ok := sourceTitles[s]; ok {
		return res
	}
	return "Unknown source"
}

// MarshalText makes Source readable in JSON and YAML outputs.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a Source from its short name.
func (s *Source) UnmarshalText(b []byte) error {
	res, err := NewSource(string(b))
	if err != nil {
		return err
	}
	*s = res
	return nil
}
