package iodispatch

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxa/pkg/errcode"
	"github.com/gnames/gntaxa/pkg/taxon"
)

func caller() string {
	pc, _, _, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name()
}

// NoInputError is returned when a query has neither names nor
// identifiers.
func NoInputError(op taxon.Operation) error {
	msg := "Nothing to query: <em>%s</em> needs names or identifiers"
	return &gn.Error{
		Code: errcode.NoInputError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("from %s: no input for %s", caller(), op),
	}
}

// AmbiguousInputError is returned when a query has both names and
// identifiers.
func AmbiguousInputError(op taxon.Operation) error {
	msg := "Give either names or identifiers to <em>%s</em>, not both"
	return &gn.Error{
		Code: errcode.AmbiguousInputError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("from %s: names and ids for %s", caller(), op),
	}
}

// UnknownSourceError is returned when names come without a data
// source.
func UnknownSourceError(op taxon.Operation) error {
	msg := `Data source is not set for <em>%s</em>

Use one of: eol, itis, ncbi, worms, bold, col`
	return &gn.Error{
		Code: errcode.UnknownSourceError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("from %s: unknown source for %s", caller(), op),
	}
}

// UnsupportedSourceError is returned for operation and source
// combinations that do not exist.
func UnsupportedSourceError(op taxon.Operation, src taxon.Source) error {
	msg := "<em>%s</em> is not supported by <em>%s</em>"
	return &gn.Error{
		Code: errcode.UnsupportedSourceError,
		Msg:  msg,
		Vars: []any{op, src.Title()},
		Err: fmt.Errorf("from %s: %s does not support %s",
			caller(), src, op),
	}
}

// SourceMismatchError is returned when an identifier belongs to a
// different source than the one requested.
func SourceMismatchError(src taxon.Source, id taxon.ID) error {
	msg := "Identifier <em>%s</em> does not belong to <em>%s</em>"
	return &gn.Error{
		Code: errcode.SourceMismatchError,
		Msg:  msg,
		Vars: []any{id.String(), src.Title()},
		Err: fmt.Errorf("from %s: id %s used with source %s",
			caller(), id, src),
	}
}

// UnknownRankError is returned when downstream gets a rank it does not
// know.
func UnknownRankError(rank string) error {
	msg := "Unknown rank <em>%s</em>"
	return &gn.Error{
		Code: errcode.UnknownRankError,
		Msg:  msg,
		Vars: []any{rank},
		Err:  fmt.Errorf("from %s: unknown rank '%s'", caller(), rank),
	}
}

// UnknownOperationError is returned when Run gets an operation it does
// not dispatch.
func UnknownOperationError(op taxon.Operation) error {
	msg := "Unknown operation <em>%s</em>"
	return &gn.Error{
		Code: errcode.UnknownOperationError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("from %s: unknown operation '%s'", caller(), op),
	}
}
