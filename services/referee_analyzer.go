package services

import "match-list-service/models"

// RefereeAnalyzer 裁判指派分析器
//
// 按 (姓名, 角色) 对构建集合做对称差比较，与列表顺序无关。
// 旧列表为空、新列表非空时按 NEW_ASSIGNMENT 处理（字段级的新指派，
// 区别于整场比赛新出现的快照级 NEW_ASSIGNMENT）。
type RefereeAnalyzer struct{}

func (a *RefereeAnalyzer) Name() string {
	return "referees"
}

func (a *RefereeAnalyzer) Analyze(prev, curr *models.Match) []Observation {
	prevSet := refereeSet(prev.Referees)
	currSet := refereeSet(curr.Referees)

	if len(prevSet) == 0 && len(currSet) > 0 {
		return []Observation{{
			Category:  models.CategoryNewAssignment,
			FieldName: "referees",
			Previous:  nil,
			Current:   cloneReferees(curr.Referees),
		}}
	}

	if refereeSetsEqual(prevSet, currSet) {
		return nil
	}

	// 字段值携带完整的前后指派列表而不是差集，
	// 让下游消费者可以渲染完整画面。
	return []Observation{{
		Category:  models.CategoryRefereeChange,
		FieldName: "referees",
		Previous:  cloneReferees(prev.Referees),
		Current:   cloneReferees(curr.Referees),
	}}
}

type refereeKey struct {
	Name string
	Role string
}

func refereeSet(assignments []models.RefereeAssignment) map[refereeKey]bool {
	set := make(map[refereeKey]bool, len(assignments))
	for _, assignment := range assignments {
		set[refereeKey{Name: assignment.Name, Role: assignment.Role}] = true
	}
	return set
}

func refereeSetsEqual(a, b map[refereeKey]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for key := range a {
		if !b[key] {
			return false
		}
	}
	return true
}

func cloneReferees(assignments []models.RefereeAssignment) []models.RefereeAssignment {
	if assignments == nil {
		return nil
	}
	cloned := make([]models.RefereeAssignment, len(assignments))
	copy(cloned, assignments)
	return cloned
}
