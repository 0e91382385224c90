package services

import "match-list-service/models"

// AssessPriority 评估单条变更的优先级
//
// 规则按顺序求值，先命中先生效：
//  1. CANCELLATION 无条件 CRITICAL
//  2. 比赛日期等于本次运行的 today（当日升级）→ CRITICAL
//  3. 裁判/时间/日期类变更 → HIGH，全新指派同样 HIGH
//  4. 场地/队伍/延期/中断/状态类变更 → MEDIUM
//  5. 赛事归属变更 → LOW
//
// match 为当前快照中的比赛，比赛已消失（取消信号）时传 nil。
func AssessPriority(category models.ChangeCategory, match *models.Match, today string) models.ChangePriority {
	if category == models.CategoryCancellation {
		return models.PriorityCritical
	}

	if match != nil && match.Date != "" && match.Date == today {
		return models.PriorityCritical
	}

	switch category {
	case models.CategoryNewAssignment, models.CategoryRefereeChange,
		models.CategoryTimeChange, models.CategoryDateChange:
		return models.PriorityHigh
	case models.CategoryVenueChange, models.CategoryTeamChange,
		models.CategoryPostponement, models.CategoryInterruption,
		models.CategoryStatusChange:
		return models.PriorityMedium
	case models.CategoryCompetitionChange:
		return models.PriorityLow
	}

	return models.PriorityLow
}
