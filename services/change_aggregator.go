package services

import (
	"time"

	"github.com/google/uuid"

	"match-list-service/models"
)

// AggregateChanges 把一次运行的全部变更明细聚合为结果对象
//
// 按类别、优先级、干系人分别计数。干系人为 {ALL} 的明细只计入
// all 桶，不摊到其余三类。明细列表为空时同样返回结果，全部计数为零。
// 不修改输入。
func AggregateChanges(details []models.MatchChangeDetail, warnings []string, runTime time.Time) *models.CategorizedChanges {
	result := &models.CategorizedChanges{
		RunID:         uuid.NewString(),
		RunTimestamp:  runTime,
		Changes:       make([]models.MatchChangeDetail, len(details)),
		TotalChanges:  len(details),
		ByCategory:    make(map[models.ChangeCategory]int),
		ByPriority:    make(map[models.ChangePriority]int),
		ByStakeholder: make(map[models.StakeholderType]int),
		Warnings:      warnings,
	}
	copy(result.Changes, details)

	for _, detail := range result.Changes {
		result.ByCategory[detail.Category]++
		result.ByPriority[detail.Priority]++
		for _, stakeholder := range detail.Stakeholders {
			result.ByStakeholder[stakeholder]++
		}
	}

	return result
}
