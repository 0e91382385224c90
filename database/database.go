package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Connect 连接到数据库
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 设置连接池
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// Migrate 运行数据库迁移
func Migrate(db *sql.DB) error {
	migrations := []string{
		// 快照比赛表：当前基线，每轮检测后整体替换
		`CREATE TABLE IF NOT EXISTS snapshot_matches (
			match_id VARCHAR(100) PRIMARY KEY,
			payload JSONB NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// 变更明细表：归类后的变更审计记录
		`CREATE TABLE IF NOT EXISTS match_changes (
			id BIGSERIAL PRIMARY KEY,
			run_id VARCHAR(64) NOT NULL,
			match_id VARCHAR(100) NOT NULL,
			category VARCHAR(50) NOT NULL,
			priority VARCHAR(20) NOT NULL,
			stakeholders TEXT NOT NULL,
			field_name VARCHAR(100),
			description TEXT,
			detail JSONB NOT NULL,
			detected_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_match_changes_run_id ON match_changes(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_match_changes_match_id ON match_changes(match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_match_changes_category ON match_changes(category)`,
		`CREATE INDEX IF NOT EXISTS idx_match_changes_detected_at ON match_changes(detected_at)`,

		// 处理轮次表：每轮检测的汇总统计
		`CREATE TABLE IF NOT EXISTS processing_runs (
			id BIGSERIAL PRIMARY KEY,
			run_id VARCHAR(64) UNIQUE NOT NULL,
			run_timestamp TIMESTAMP NOT NULL,
			total_changes INTEGER NOT NULL,
			critical_changes INTEGER NOT NULL,
			warnings_count INTEGER NOT NULL,
			summary JSONB NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_processing_runs_run_timestamp ON processing_runs(run_timestamp)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
