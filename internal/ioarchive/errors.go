package ioarchive

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxa/pkg/errcode"
)

// ConnectionError is returned when the archive storage cannot be
// opened.
func ConnectionError(kind, target string, err error) error {
	msg := `Cannot open <em>%s</em> archive at <em>%s</em>

<em>Possible causes:</em>
  - PostgreSQL is not running or the database does not exist
  - Wrong credentials in config.yaml
  - No write access to the archive file`
	vars := []any{kind, target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open %s archive: %w",
			fn.Name(), kind, err),
	}
}

// SchemaError is returned when archive tables cannot be created.
func SchemaError(kind string, err error) error {
	msg := "Cannot create tables of <em>%s</em> archive"
	vars := []any{kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveSchemaError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot migrate %s archive: %w",
			fn.Name(), kind, err),
	}
}

// WriteError is returned when results cannot be saved.
func WriteError(kind string, err error) error {
	msg := "Cannot save results to <em>%s</em> archive"
	vars := []any{kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write to %s archive: %w",
			fn.Name(), kind, err),
	}
}

// UnknownArchiveError is returned for unsupported archive types.
func UnknownArchiveError(kind string) error {
	msg := "Unknown archive type <em>%s</em>, use sqlite or postgres"
	vars := []any{kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownArchiveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown archive '%s'", fn.Name(), kind),
	}
}
