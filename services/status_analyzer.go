package services

import "match-list-service/models"

// StatusAnalyzer 比赛状态分析器
//
// 新状态为 postponed/interrupted/cancelled 时映射到对应的专用类别，
// 其余状态迁移统一归为 STATUS_CHANGE。
type StatusAnalyzer struct{}

func (a *StatusAnalyzer) Name() string {
	return "status"
}

func (a *StatusAnalyzer) Analyze(prev, curr *models.Match) []Observation {
	if prev.Status == curr.Status {
		return nil
	}

	category := models.CategoryStatusChange
	switch curr.Status {
	case models.StatusPostponed:
		category = models.CategoryPostponement
	case models.StatusInterrupted:
		category = models.CategoryInterruption
	case models.StatusCancelled:
		category = models.CategoryCancellation
	}

	return []Observation{{
		Category:  category,
		FieldName: "status",
		Previous:  prev.Status,
		Current:   curr.Status,
	}}
}
