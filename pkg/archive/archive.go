// Package archive defines storage of query results. An archive keeps
// every run of the program with the flattened rows of its results, so
// that results of different runs and sources can be compared later
// with plain SQL.
package archive

import (
	"context"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// Archiver saves results of runs.
type Archiver interface {
	// Init connects to the storage and creates or updates its schema.
	Init(ctx context.Context) error

	// Save stores a run and its results. It can be called several times
	// for the same run, once per batch.
	Save(ctx context.Context, run Run, rs taxon.Results) error

	// Close releases the storage.
	Close() error
}

// Run describes one execution of an operation.
type Run struct {
	// ID is a random UUID of the run.
	ID string `gorm:"type:varchar(36);primaryKey"`

	// Operation is the query type.
	Operation string `gorm:"type:varchar(30);not null"`

	// Version of gntaxa that produced the run.
	Version string `gorm:"type:varchar(30)"`

	// CreatedAt is the start time of the run.
	CreatedAt time.Time
}

// TableName implements gorm's Tabler.
func (Run) TableName() string { return "runs" }

// NewRun creates a run with a random ID.
func NewRun(op taxon.Operation, version string) Run {
	return Run{
		ID:        uuid.NewString(),
		Operation: string(op),
		Version:   version,
		CreatedAt: time.Now().UTC(),
	}
}

// Row is one record of a result. Missing results are stored as one row
// without values.
type Row struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	// RunID points to the run.
	RunID string `gorm:"type:varchar(36);index;not null"`

	// Position of the input element in the run.
	Position int `gorm:"not null"`

	// Operation is repeated here for convenience of queries.
	Operation string `gorm:"type:varchar(30);not null"`

	// Source is the short name of the data source.
	Source string `gorm:"type:varchar(10);index;not null"`

	// Input is the original name or identifier.
	Input string `gorm:"type:text;not null"`

	// NameID is UUID v5 of the input, it is the same for the same
	// input string across runs.
	NameID string `gorm:"type:varchar(36);index"`

	// SourceID is the resolved identifier.
	SourceID string `gorm:"type:varchar(100)"`

	Missing bool
	Message string `gorm:"type:text"`

	// Columns and Values are JSON arrays.
	Columns string `gorm:"type:text"`
	Values  string `gorm:"type:text"`
}

// TableName implements gorm's Tabler.
func (Row) TableName() string { return "results" }

// Models returns models for schema migration.
func Models() []any {
	return []any{&Run{}, &Row{}}
}

// Rows flattens results into archive rows. Offset is the position of
// the first result in the run.
func Rows(run Run, rs taxon.Results, offset int) ([]Row, error) {
	enc := gnfmt.GNjson{}
	var res []Row
	for i, r := range rs {
		base := Row{
			RunID:     run.ID,
			Position:  offset + i,
			Operation: run.Operation,
			Source:    r.Source.String(),
			Input:     r.Input,
			NameID:    gnuuid.New(r.Input).String(),
			Missing:   r.Missing,
			Message:   r.Message,
		}
		if r.ID != nil {
			base.SourceID = r.ID.Value
		}
		if r.Error != "" {
			base.Message = r.Error
		}

		var cols []string
		var vals [][]string
		switch {
		case r.Table.Len() > 0:
			cols, vals = r.Table.Columns, r.Table.Rows
		case len(r.Simple) > 0:
			cols = []string{"value"}
			for _, v := range r.Simple {
				vals = append(vals, []string{v})
			}
		}
		if len(vals) == 0 {
			res = append(res, base)
			continue
		}

		colsJSON, err := enc.Encode(cols)
		if err != nil {
			return nil, err
		}
		for _, v := range vals {
			valsJSON, err := enc.Encode(v)
			if err != nil {
				return nil, err
			}
			row := base
			row.Columns = string(colsJSON)
			row.Values = string(valsJSON)
			res = append(res, row)
		}
	}
	return res, nil
}
