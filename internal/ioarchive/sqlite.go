package ioarchive

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gnames/gntaxa/pkg/archive"
	"github.com/gnames/gntaxa/pkg/taxon"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  operation TEXT NOT NULL,
  version TEXT,
  created_at TIMESTAMP
);
CREATE TABLE IF NOT EXISTS results (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  operation TEXT NOT NULL,
  source TEXT NOT NULL,
  input TEXT NOT NULL,
  name_id TEXT,
  source_id TEXT,
  missing BOOLEAN,
  message TEXT,
  columns TEXT,
  "values" TEXT
);
CREATE INDEX IF NOT EXISTS idx_results_run_id ON results (run_id);
CREATE INDEX IF NOT EXISTS idx_results_source ON results (source);
CREATE INDEX IF NOT EXISTS idx_results_name_id ON results (name_id);
`

type sqliteArchive struct {
	path string
	db   *sql.DB
	// positions keeps the number of saved results per run.
	positions map[string]int
}

// NewSQLite creates an Archiver that writes to a SQLite file.
func NewSQLite(path string) archive.Archiver {
	return &sqliteArchive{path: path, positions: make(map[string]int)}
}

func (s *sqliteArchive) Init(ctx context.Context) error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return ConnectionError("sqlite", s.path, err)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return ConnectionError("sqlite", s.path, err)
	}
	if _, err = db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return SchemaError("sqlite", err)
	}
	s.db = db
	slog.Info("Archive is ready", "type", "sqlite", "path", s.path)
	return nil
}

func (s *sqliteArchive) Save(
	ctx context.Context,
	run archive.Run,
	rs taxon.Results,
) error {
	offset, seen := s.positions[run.ID]
	rows, err := archive.Rows(run, rs, offset)
	if err != nil {
		return WriteError("sqlite", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WriteError("sqlite", err)
	}
	defer tx.Rollback()

	if !seen {
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO runs (id, operation, version, created_at)
			 VALUES (?, ?, ?, ?)`,
			run.ID, run.Operation, run.Version, run.CreatedAt,
		)
		if err != nil {
			return WriteError("sqlite", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, position, operation, source, input,
		 name_id, source_id, missing, message, columns, "values")
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return WriteError("sqlite", err)
	}
	defer stmt.Close()

	for _, v := range rows {
		_, err = stmt.ExecContext(ctx,
			v.RunID, v.Position, v.Operation, v.Source, v.Input,
			v.NameID, v.SourceID, v.Missing, v.Message, v.Columns, v.Values,
		)
		if err != nil {
			return WriteError("sqlite", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return WriteError("sqlite", err)
	}
	s.positions[run.ID] = offset + len(rs)
	return nil
}

func (s *sqliteArchive) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
