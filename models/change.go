package models

import "time"

// ChangeCategory 变更类别
type ChangeCategory string

const (
	CategoryNewAssignment     ChangeCategory = "new_assignment"
	CategoryRefereeChange     ChangeCategory = "referee_change"
	CategoryTimeChange        ChangeCategory = "time_change"
	CategoryDateChange        ChangeCategory = "date_change"
	CategoryVenueChange       ChangeCategory = "venue_change"
	CategoryTeamChange        ChangeCategory = "team_change"
	CategoryCancellation      ChangeCategory = "cancellation"
	CategoryPostponement      ChangeCategory = "postponement"
	CategoryInterruption      ChangeCategory = "interruption"
	CategoryStatusChange      ChangeCategory = "status_change"
	CategoryCompetitionChange ChangeCategory = "competition_change"
)

// AllCategories 按声明顺序排列的全部类别，排序时以此为准
var AllCategories = []ChangeCategory{
	CategoryNewAssignment,
	CategoryRefereeChange,
	CategoryTimeChange,
	CategoryDateChange,
	CategoryVenueChange,
	CategoryTeamChange,
	CategoryCancellation,
	CategoryPostponement,
	CategoryInterruption,
	CategoryStatusChange,
	CategoryCompetitionChange,
}

var categoryRank = func() map[ChangeCategory]int {
	ranks := make(map[ChangeCategory]int, len(AllCategories))
	for i, c := range AllCategories {
		ranks[c] = i
	}
	return ranks
}()

// Rank 返回类别在声明顺序中的位置，未知类别排在最后
func (c ChangeCategory) Rank() int {
	if rank, ok := categoryRank[c]; ok {
		return rank
	}
	return len(AllCategories)
}

// ChangePriority 变更优先级，CRITICAL > HIGH > MEDIUM > LOW
type ChangePriority string

const (
	PriorityCritical ChangePriority = "critical"
	PriorityHigh     ChangePriority = "high"
	PriorityMedium   ChangePriority = "medium"
	PriorityLow      ChangePriority = "low"
)

// AllPriorities 按紧急程度降序排列的全部优先级
var AllPriorities = []ChangePriority{
	PriorityCritical,
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

// StakeholderType 干系人类型
//
// StakeholderAll 是独立的路由键，不展开为其余三类。
type StakeholderType string

const (
	StakeholderReferees     StakeholderType = "referees"
	StakeholderCoordinators StakeholderType = "coordinators"
	StakeholderTeams        StakeholderType = "teams"
	StakeholderAll          StakeholderType = "all"
)

// AllStakeholders 全部干系人类型
var AllStakeholders = []StakeholderType{
	StakeholderReferees,
	StakeholderCoordinators,
	StakeholderTeams,
	StakeholderAll,
}

// MatchChangeDetail 单条变更明细
//
// 同一场比赛在一次运行中可以产生多条明细，每个独立变化的字段组一条，
// 类别和优先级都按单条明细评估，不做合并。
type MatchChangeDetail struct {
	MatchID       string            `json:"match_id"`
	MatchNr       string            `json:"match_nr,omitempty"`
	Category      ChangeCategory    `json:"category"`
	Priority      ChangePriority    `json:"priority"`
	Stakeholders  []StakeholderType `json:"affected_stakeholders"`
	FieldName     string            `json:"field_name"`
	PreviousValue interface{}       `json:"previous_value"`
	CurrentValue  interface{}       `json:"current_value"`
	Description   string            `json:"change_description"`
	DetectedAt    time.Time         `json:"detected_at"`
}

// CategorizedChanges 一次比较运行的聚合结果
//
// 由检测器独占构造，返回后不再修改。Changes 按比赛ID升序、
// 类别声明顺序排列，保证逐字节可复现。
type CategorizedChanges struct {
	RunID         string                  `json:"run_id"`
	RunTimestamp  time.Time               `json:"run_timestamp"`
	Changes       []MatchChangeDetail     `json:"changes"`
	TotalChanges  int                     `json:"total_changes"`
	ByCategory    map[ChangeCategory]int  `json:"by_category"`
	ByPriority    map[ChangePriority]int  `json:"by_priority"`
	ByStakeholder map[StakeholderType]int `json:"by_stakeholder"`
	Warnings      []string                `json:"warnings,omitempty"`
}

// HasChanges 是否检测到任何变更
func (c *CategorizedChanges) HasChanges() bool {
	return c.TotalChanges > 0
}

// HasCriticalChanges 是否存在 CRITICAL 级别变更
func (c *CategorizedChanges) HasCriticalChanges() bool {
	return c.ByPriority[PriorityCritical] > 0
}

// ChangesByCategory 返回指定类别的全部变更
func (c *CategorizedChanges) ChangesByCategory(category ChangeCategory) []MatchChangeDetail {
	var result []MatchChangeDetail
	for _, change := range c.Changes {
		if change.Category == category {
			result = append(result, change)
		}
	}
	return result
}

// ChangesByPriority 返回指定优先级的全部变更
func (c *CategorizedChanges) ChangesByPriority(priority ChangePriority) []MatchChangeDetail {
	var result []MatchChangeDetail
	for _, change := range c.Changes {
		if change.Priority == priority {
			result = append(result, change)
		}
	}
	return result
}
