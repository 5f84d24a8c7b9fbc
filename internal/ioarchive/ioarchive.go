// Package ioarchive implements archive.Archiver for SQLite and
// PostgreSQL.
package ioarchive

import (
	"github.com/gnames/gntaxa/pkg/archive"
	"github.com/gnames/gntaxa/pkg/config"
)

// New creates an Archiver for the configured archive type. It returns
// nil for the "none" type.
func New(cfg *config.Config) (archive.Archiver, error) {
	switch cfg.Archive.Type {
	case "", "none":
		return nil, nil
	case "sqlite":
		path := config.ArchivePath(cfg.HomeDir, cfg.Archive.Path)
		return NewSQLite(path), nil
	case "postgres":
		return NewPostgres(cfg.Archive.Database), nil
	}
	return nil, UnknownArchiveError(cfg.Archive.Type)
}
