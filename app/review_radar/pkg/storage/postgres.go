// Package storage 将每次搜索的运行情况写入 PostgreSQL，仅用于排查问题，不回读。
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/config"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

const schema = `CREATE TABLE IF NOT EXISTS search_runs (
	id            TEXT PRIMARY KEY,
	generation    BIGINT NOT NULL,
	query         TEXT NOT NULL,
	mode          TEXT NOT NULL,
	total         INTEGER NOT NULL,
	source_status JSONB NOT NULL,
	insight_error TEXT NOT NULL DEFAULT '',
	error         TEXT NOT NULL DEFAULT '',
	duration_ms   BIGINT NOT NULL,
	started_at    TIMESTAMPTZ NOT NULL
)`

const insertRun = `INSERT INTO search_runs
	(id, generation, query, mode, total, source_status, insight_error, error, duration_ms, started_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO NOTHING`

// Storage 搜索运行日志
type Storage struct {
	db *sql.DB
}

// NewStorage 连接数据库并建表
func NewStorage(ctx context.Context, cfg config.DBConfig) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close 关闭连接
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRun 记录一次搜索
func (s *Storage) SaveRun(ctx context.Context, res *model.Result) error {
	row, err := NewRun(res)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, insertRun,
		row.ID, row.Generation, row.Query, row.Mode, row.Total,
		row.SourceStatus, row.InsightError, row.Error, row.DurationMS, row.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", row.ID, err)
	}
	return nil
}
