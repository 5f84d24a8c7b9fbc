package ioarchive

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/gntaxa/pkg/archive"
	"github.com/gnames/gntaxa/pkg/config"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var rowColumns = []string{
	"run_id", "position", "operation", "source", "input", "name_id",
	"source_id", "missing", "message", "columns", "values",
}

type pgArchive struct {
	cfg       config.DatabaseConfig
	pool      *pgxpool.Pool
	positions map[string]int
}

// NewPostgres creates an Archiver that writes to PostgreSQL.
func NewPostgres(cfg config.DatabaseConfig) archive.Archiver {
	return &pgArchive{cfg: cfg, positions: make(map[string]int)}
}

func (p *pgArchive) target() string {
	return fmt.Sprintf("%s@%s:%d/%s",
		p.cfg.User, p.cfg.Host, p.cfg.Port, p.cfg.Database)
}

// Init connects to the database and migrates the schema.
func (p *pgArchive) Init(ctx context.Context) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.cfg.User,
		p.cfg.Password,
		p.cfg.Host,
		p.cfg.Port,
		p.cfg.Database,
		p.cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError("postgres", p.target(), err)
	}
	poolConfig.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError("postgres", p.target(), err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError("postgres", p.target(), err)
	}

	db := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		pool.Close()
		return SchemaError("postgres", err)
	}
	if err = gormDB.WithContext(ctx).AutoMigrate(archive.Models()...); err != nil {
		pool.Close()
		return SchemaError("postgres", err)
	}

	p.pool = pool
	slog.Info("Archive is ready", "type", "postgres", "database", p.target())
	return nil
}

// Save inserts the run and copies result rows.
func (p *pgArchive) Save(
	ctx context.Context,
	run archive.Run,
	rs taxon.Results,
) error {
	offset, seen := p.positions[run.ID]
	rows, err := archive.Rows(run, rs, offset)
	if err != nil {
		return WriteError("postgres", err)
	}

	if !seen {
		_, err = p.pool.Exec(ctx,
			`INSERT INTO runs (id, operation, version, created_at)
			 VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			run.ID, run.Operation, run.Version, run.CreatedAt,
		)
		if err != nil {
			return WriteError("postgres", err)
		}
	}

	data := make([][]any, len(rows))
	for i, v := range rows {
		data[i] = []any{
			v.RunID, v.Position, v.Operation, v.Source, v.Input, v.NameID,
			v.SourceID, v.Missing, v.Message, v.Columns, v.Values,
		}
	}
	_, err = p.pool.CopyFrom(
		ctx,
		pgx.Identifier{"results"},
		rowColumns,
		pgx.CopyFromRows(data),
	)
	if err != nil {
		return WriteError("postgres", err)
	}
	p.positions[run.ID] = offset + len(rs)
	return nil
}

func (p *pgArchive) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
