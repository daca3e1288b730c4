package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dstjohniii/rand-db-jsonb-populate/internal/datagen"
)

// Column names of the target table: id bigint primary key, values jsonb.
const (
	IDColumn       = "id"
	DocumentColumn = "values"
)

// Conn is the slice of *pgx.Conn the loader needs.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RowSource produces one generated record per call.
type RowSource interface {
	Row() datagen.Row
}

// Config describes where and how much to load.
type Config struct {
	Schema        string
	Table         string
	TotalRows     int
	RowsPerInsert int
}

// Validate checks the load shape.
func (c Config) Validate() error {
	if c.Table == "" {
		return errors.New("table name is required")
	}
	if c.TotalRows < 0 {
		return fmt.Errorf("total rows must not be negative (got %d)", c.TotalRows)
	}
	if c.RowsPerInsert < 1 {
		return fmt.Errorf("rows per insert must be at least 1 (got %d)", c.RowsPerInsert)
	}
	return nil
}

// Batches is the number of insert statements a full load issues.
func (c Config) Batches() int {
	if c.RowsPerInsert < 1 {
		return 0
	}
	return (c.TotalRows + c.RowsPerInsert - 1) / c.RowsPerInsert
}

// BatchStats is reported after every successful insert.
type BatchStats struct {
	Index   int
	FirstID int64
	LastID  int64
	Rows    int
	Bytes   int
	Elapsed time.Duration
}

// Result summarizes a completed load.
type Result struct {
	RunID    uuid.UUID
	Rows     int
	Batches  int
	Bytes    int64
	Duration time.Duration
}

// Loader writes generated rows into one table over a single connection.
type Loader struct {
	conn Conn
	cfg  Config

	// OnBatch, if set, is called after each batch is acknowledged.
	OnBatch func(BatchStats)
}

// New returns a loader for cfg.
func New(conn Conn, cfg Config) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loader{conn: conn, cfg: cfg}, nil
}

func (l *Loader) tableName() string {
	if l.cfg.Schema == "" {
		return pgx.Identifier{l.cfg.Table}.Sanitize()
	}
	return pgx.Identifier{l.cfg.Schema, l.cfg.Table}.Sanitize()
}

// Clear removes every existing row from the target table.
func (l *Loader) Clear(ctx context.Context) (int64, error) {
	tag, err := l.conn.Exec(ctx, fmt.Sprintf("DELETE FROM %s", l.tableName()))
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", l.tableName(), err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of rows currently in the target table.
func (l *Loader) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := l.conn.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", l.tableName())).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", l.tableName(), err)
	}
	return n, nil
}

// InsertSQL is the single statement used for every batch. Both parameters
// are arrays of equal length: row ids and JSON documents.
func (l *Loader) InsertSQL() string {
	return fmt.Sprintf(
		"INSERT INTO %s (%s, %s) SELECT b.id, b.doc::jsonb FROM unnest($1::bigint[], $2::text[]) AS b(id, doc)",
		l.tableName(),
		pgx.Identifier{IDColumn}.Sanitize(),
		pgx.Identifier{DocumentColumn}.Sanitize(),
	)
}

// Load inserts TotalRows rows from src in sequential batches of RowsPerInsert. The
// last batch carries the remainder. The first failing batch stops the run.
func (l *Loader) Load(ctx context.Context, src RowSource) (Result, error) {
	res := Result{RunID: uuid.New()}
	start := time.Now()
	query := l.InsertSQL()

	for batch := 0; batch < l.cfg.Batches(); batch++ {
		size := l.cfg.RowsPerInsert
		if remaining := l.cfg.TotalRows - batch*l.cfg.RowsPerInsert; size > remaining {
			size = remaining
		}

		batchStart := time.Now()
		ids, docs, bytes, err := l.buildBatch(src, batch, size)
		if err != nil {
			return res, err
		}

		if _, err := l.conn.Exec(ctx, query, ids, docs); err != nil {
			return res, fmt.Errorf("insert batch %d (ids %d-%d): %w", batch+1, ids[0], ids[len(ids)-1], err)
		}

		res.Rows += size
		res.Batches++
		res.Bytes += int64(bytes)
		if l.OnBatch != nil {
			l.OnBatch(BatchStats{
				Index:   batch,
				FirstID: ids[0],
				LastID:  ids[len(ids)-1],
				Rows:    size,
				Bytes:   bytes,
				Elapsed: time.Since(batchStart),
			})
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}

// buildBatch generates size rows with ids row + RowsPerInsert*batch, 1-based.
func (l *Loader) buildBatch(src RowSource, batch, size int) ([]int64, []string, int, error) {
	ids := make([]int64, size)
	docs := make([]string, size)
	bytes := 0
	for row := 1; row <= size; row++ {
		doc, err := json.Marshal(src.Row())
		if err != nil {
			return nil, nil, 0, fmt.Errorf("encode row: %w", err)
		}
		ids[row-1] = int64(row + l.cfg.RowsPerInsert*batch)
		docs[row-1] = string(doc)
		bytes += len(doc)
	}
	return ids, docs, bytes, nil
}
