package taxon

import (
	"fmt"
	"strings"
)

// ID is an identifier tagged with the source it belongs to.
// Value is opaque for everybody except the adapter of that source
// (ITIS TSN, NCBI UID, WoRMS AphiaID, EOL page ID, etc.).
type ID struct {
	// Source is the data provider that issued the identifier.
	Source Source `json:"source"`

	// Value is the identifier itself.
	Value string `json:"id"`

	// Name is the scientific name the identifier was resolved for,
	// if known.
	Name string `json:"name,omitempty"`

	// Rank of the taxon, if the resolver received it.
	Rank string `json:"rank,omitempty"`

	// Status is the taxonomic status (accepted, synonym etc.) if known.
	Status string `json:"status,omitempty"`
}

// NewID creates an identifier for a source.
func NewID(src Source, value string) ID {
	return ID{Source: src, Value: value}
}

// NewIDs creates identifiers for the same source.
func NewIDs(src Source, values ...string) []ID {
	res := make([]ID, len(values))
	for i := range values {
		res[i] = NewID(src, values[i])
	}
	return res
}

// String returns "source:value" form of the identifier.
func (id ID) String() string {
	return fmt.Sprintf("%s:%s", id.Source, id.Value)
}

// IsZero is true when the identifier carries no value.
func (id ID) IsZero() bool {
	return id.Value == ""
}

// ParseID reads an identifier in "source:value" form. A value without
// a source prefix belongs to the default source.
func ParseID(s string, def Source) (ID, error) {
	s = strings.TrimSpace(s)
	if pre, val, ok := strings.Cut(s, ":"); ok {
		if src, err := NewSource(pre); err == nil {
			s, def = strings.TrimSpace(val), src
		}
	}
	if s == "" {
		return ID{}, fmt.Errorf("empty identifier")
	}
	if def == UnknownSource {
		return ID{}, fmt.Errorf("unknown source for identifier '%s'", s)
	}
	return NewID(def, s), nil
}
