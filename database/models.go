package database

import (
	"time"
)

// ChangeRecord 变更明细审计记录
type ChangeRecord struct {
	ID           int64     `db:"id"`
	RunID        string    `db:"run_id"`
	MatchID      string    `db:"match_id"`
	Category     string    `db:"category"`
	Priority     string    `db:"priority"`
	Stakeholders string    `db:"stakeholders"`
	FieldName    *string   `db:"field_name"`
	Description  *string   `db:"description"`
	Detail       string    `db:"detail"`
	DetectedAt   time.Time `db:"detected_at"`
	CreatedAt    time.Time `db:"created_at"`
}

// ProcessingRun 处理轮次汇总
type ProcessingRun struct {
	ID              int64     `db:"id"`
	RunID           string    `db:"run_id"`
	RunTimestamp    time.Time `db:"run_timestamp"`
	TotalChanges    int       `db:"total_changes"`
	CriticalChanges int       `db:"critical_changes"`
	WarningsCount   int       `db:"warnings_count"`
	Summary         string    `db:"summary"`
	CreatedAt       time.Time `db:"created_at"`
}
