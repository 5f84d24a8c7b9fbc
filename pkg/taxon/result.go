package taxon

import (
	"fmt"
	"strings"
)

// Operation names a dispatcher query type.
type Operation string

const (
	OpIDs            Operation = "ids"
	OpCommonNames    Operation = "common"
	OpClassification Operation = "classification"
	OpChildren       Operation = "children"
	OpDownstream     Operation = "downstream"
	OpTaxonSearch    Operation = "bold"
	OpDataObjects    Operation = "dataobjects"
)

// Operations lists all dispatcher operations.
var Operations = []Operation{
	OpIDs, OpCommonNames, OpClassification, OpChildren, OpDownstream,
	OpTaxonSearch, OpDataObjects,
}

// NewOperation converts a string to an Operation.
func NewOperation(s string) (Operation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range Operations {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown operation '%s'", s)
}

// Input is a generic query input: either free-text names with a
// source selector, or source-typed identifiers. Only one of Names
// and IDs is expected to be given.
type Input struct {
	// Names are scientific names, possibly partial or invalid.
	Names []string

	// Source selects resolver and adapter for Names.
	Source Source

	// IDs are pre-resolved identifiers. Their own source tags
	// select the adapters.
	IDs []ID
}

// NamesInput creates an Input from names.
func NamesInput(src Source, names ...string) Input {
	return Input{Source: src, Names: names}
}

// IDsInput creates an Input from identifiers.
func IDsInput(ids ...ID) Input {
	return Input{IDs: ids}
}

// Len returns the number of input elements.
func (in Input) Len() int {
	if len(in.IDs) > 0 {
		return len(in.IDs)
	}
	return len(in.Names)
}

// IsEmpty is true if neither names nor identifiers were given.
func (in Input) IsEmpty() bool {
	return len(in.Names) == 0 && len(in.IDs) == 0
}

// Result is the outcome for one input element.
type Result struct {
	// Input is the original name or identifier value.
	Input string `json:"input"`

	// Source is the data source that produced the result.
	Source Source `json:"source"`

	// ID is the identifier used for the query, nil if the name
	// could not be resolved.
	ID *ID `json:"resolvedId,omitempty"`

	// Missing marks "no data", distinct from an empty collection.
	Missing bool `json:"missing"`

	// Simple is the flat output for simplify=true.
	Simple []string `json:"simple,omitempty"`

	// Table is the full output for simplify=false.
	Table *Table `json:"table,omitempty"`

	// Message is a diagnostic for soft failures.
	Message string `json:"message,omitempty"`

	// Err keeps a transport error when the batch continues on errors.
	Err error `json:"-"`

	// Error is a text form of Err for serialization.
	Error string `json:"error,omitempty"`
}

// SetMissing turns the result into a missing-value marker.
func (r *Result) SetMissing(msg string) {
	r.Missing = true
	r.Simple = nil
	r.Table = nil
	if msg != "" {
		r.Message = msg
	}
}

// SetError records an isolated failure of this element.
func (r *Result) SetError(err error) {
	r.SetMissing("")
	r.Err = err
	if err != nil {
		r.Error = err.Error()
	}
}

// Results is the result mapping. It keeps the order of the input and
// has one entry per input element, duplicates included.
type Results []Result

// Keys returns inputs in their original order.
func (rs Results) Keys() []string {
	res := make([]string, len(rs))
	for i := range rs {
		res[i] = rs[i].Input
	}
	return res
}

// Get returns all results for an input key.
func (rs Results) Get(key string) []Result {
	var res []Result
	for i := range rs {
		if rs[i].Input == key {
			res = append(res, rs[i])
		}
	}
	return res
}

// MissingCount returns the number of missing entries.
func (rs Results) MissingCount() int {
	var res int
	for i := range rs {
		if rs[i].Missing {
			res++
		}
	}
	return res
}
