package services

import "match-list-service/models"

// ResolveStakeholders 解析变更类别影响的干系人集合
//
// 返回 {ALL} 时不展开为其余三类，调用方把 ALL 当作独立路由键。
// 返回值永远非空。
func ResolveStakeholders(category models.ChangeCategory) []models.StakeholderType {
	switch category {
	case models.CategoryNewAssignment, models.CategoryRefereeChange:
		return []models.StakeholderType{models.StakeholderReferees, models.StakeholderCoordinators}
	case models.CategoryCompetitionChange:
		return []models.StakeholderType{models.StakeholderCoordinators}
	case models.CategoryTimeChange, models.CategoryDateChange,
		models.CategoryCancellation, models.CategoryPostponement,
		models.CategoryInterruption, models.CategoryVenueChange,
		models.CategoryTeamChange, models.CategoryStatusChange:
		return []models.StakeholderType{models.StakeholderAll}
	}
	return []models.StakeholderType{models.StakeholderAll}
}
