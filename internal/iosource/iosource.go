// Package iosource contains helpers shared by source adapters. Every
// source lives in its own subpackage.
package iosource

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Matcher compares a query name with a name returned by a source.
type Matcher func(query, name string) bool

// EqualFold is the default Matcher. It compares trimmed names ignoring
// case.
func EqualFold(query, name string) bool {
	return strings.EqualFold(strings.TrimSpace(query), strings.TrimSpace(name))
}

// OrDefault returns m, or EqualFold if m is nil.
func (m Matcher) OrDefault() Matcher {
	if m == nil {
		return EqualFold
	}
	return m
}

// Best selects the best hit for a query name. Exact matches win over
// other hits, and among exact matches accepted ones win. Without exact
// matches the first hit is returned. It returns false if there are no
// hits.
func Best[T any](
	query string,
	hits []T,
	nameOf func(T) string,
	accepted func(T) bool,
	match Matcher,
) (T, bool) {
	var zero T
	if len(hits) == 0 {
		return zero, false
	}
	match = match.OrDefault()

	exact := -1
	for i := range hits {
		if !match(query, nameOf(hits[i])) {
			continue
		}
		if accepted == nil || accepted(hits[i]) {
			return hits[i], true
		}
		if exact == -1 {
			exact = i
		}
	}
	if exact > -1 {
		return hits[exact], true
	}
	return hits[0], true
}

// Blank is true for names that cannot be resolved.
func Blank(name string) bool {
	return strings.TrimSpace(name) == ""
}

// FlexString decodes JSON strings, numbers and null into a string.
// Some sources switch between numbers and strings for identifiers.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, string(b) == "null":
		*f = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the value as a string.
func (f FlexString) String() string {
	return string(f)
}
