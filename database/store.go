package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"match-list-service/logger"
	"match-list-service/models"
	"match-list-service/services"
)

// Store Postgres 快照与变更审计存储
//
// 同时充当基线快照存储和每轮检测结果的落库端。
type Store struct {
	db *sql.DB
}

// NewStore 创建存储
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load 加载基线快照，表为空时返回空快照
func (s *Store) Load() (models.Snapshot, error) {
	rows, err := s.db.Query(`SELECT payload FROM snapshot_matches`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	snapshot := make(models.Snapshot)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		var match models.Match
		if err := json.Unmarshal(payload, &match); err != nil {
			return nil, fmt.Errorf("%w: %v", services.ErrSnapshotCorrupted, err)
		}
		snapshot[match.ID] = &match
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot rows: %w", err)
	}

	logger.Printf("📋 Loaded baseline snapshot from database: %d matches", len(snapshot))
	return snapshot, nil
}

// Save 整体替换基线快照
func (s *Store) Save(snapshot models.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM snapshot_matches`); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	for _, id := range snapshot.SortedIDs() {
		payload, err := json.Marshal(snapshot[id])
		if err != nil {
			return fmt.Errorf("failed to marshal match %s: %w", id, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO snapshot_matches (match_id, payload, updated_at) VALUES ($1, $2, NOW())`,
			id, payload,
		); err != nil {
			return fmt.Errorf("failed to insert match %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	logger.Printf("💾 Saved baseline snapshot to database: %d matches", len(snapshot))
	return nil
}

// RecordRun 落库一轮检测结果：明细 + 轮次汇总
func (s *Store) RecordRun(result *models.CategorizedChanges) {
	if err := s.recordRun(result); err != nil {
		logger.Errorf("❌ Failed to record processing run %s: %v", result.RunID, err)
	}
}

func (s *Store) recordRun(result *models.CategorizedChanges) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, detail := range result.Changes {
		payload, err := json.Marshal(detail)
		if err != nil {
			return fmt.Errorf("failed to marshal change detail: %w", err)
		}

		stakeholders := make([]string, 0, len(detail.Stakeholders))
		for _, st := range detail.Stakeholders {
			stakeholders = append(stakeholders, string(st))
		}

		if _, err := tx.Exec(
			`INSERT INTO match_changes (run_id, match_id, category, priority, stakeholders, field_name, description, detail, detected_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			result.RunID, detail.MatchID, string(detail.Category), string(detail.Priority),
			strings.Join(stakeholders, ","), detail.FieldName, detail.Description,
			payload, detail.DetectedAt,
		); err != nil {
			return fmt.Errorf("failed to insert change for match %s: %w", detail.MatchID, err)
		}
	}

	summary, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	critical := result.ByPriority[models.PriorityCritical]
	if _, err := tx.Exec(
		`INSERT INTO processing_runs (run_id, run_timestamp, total_changes, critical_changes, warnings_count, summary)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		result.RunID, result.RunTimestamp, result.TotalChanges, critical, len(result.Warnings), summary,
	); err != nil {
		return fmt.Errorf("failed to insert processing run: %w", err)
	}

	return tx.Commit()
}

// GetLatestChanges 查询最近的变更明细（按检测时间倒序）
func (s *Store) GetLatestChanges(limit int) ([]models.MatchChangeDetail, error) {
	rows, err := s.db.Query(
		`SELECT detail FROM match_changes ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query changes: %w", err)
	}
	defer rows.Close()

	var details []models.MatchChangeDetail
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan change row: %w", err)
		}
		var detail models.MatchChangeDetail
		if err := json.Unmarshal(payload, &detail); err != nil {
			return nil, fmt.Errorf("failed to unmarshal change detail: %w", err)
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}

// Stats 存储统计
type Stats struct {
	SnapshotMatches int            `json:"snapshot_matches"`
	TotalChanges    int            `json:"total_changes"`
	TotalRuns       int            `json:"total_runs"`
	ByCategory      map[string]int `json:"by_category"`
	ByPriority      map[string]int `json:"by_priority"`
}

// GetStats 查询存储统计
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{
		ByCategory: make(map[string]int),
		ByPriority: make(map[string]int),
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM snapshot_matches`).Scan(&stats.SnapshotMatches); err != nil {
		return nil, fmt.Errorf("failed to count snapshot matches: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM match_changes`).Scan(&stats.TotalChanges); err != nil {
		return nil, fmt.Errorf("failed to count changes: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM processing_runs`).Scan(&stats.TotalRuns); err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}

	rows, err := s.db.Query(`SELECT category, COUNT(*) FROM match_changes GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by category: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats.ByCategory[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := s.db.Query(`SELECT priority, COUNT(*) FROM match_changes GROUP BY priority`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by priority: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var priority string
		var count int
		if err := prows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		stats.ByPriority[priority] = count
	}

	return stats, prows.Err()
}
