package services

import "match-list-service/models"

// TeamsValue 两队身份的组合值
type TeamsValue struct {
	Home models.Team `json:"home"`
	Away models.Team `json:"away"`
}

// TeamAnalyzer 队伍身份分析器，任一队的名称或ID变化都算队伍变更
type TeamAnalyzer struct{}

func (a *TeamAnalyzer) Name() string {
	return "teams"
}

func (a *TeamAnalyzer) Analyze(prev, curr *models.Match) []Observation {
	if prev.HomeTeam == curr.HomeTeam && prev.AwayTeam == curr.AwayTeam {
		return nil
	}
	return []Observation{{
		Category:  models.CategoryTeamChange,
		FieldName: "teams",
		Previous:  TeamsValue{Home: prev.HomeTeam, Away: prev.AwayTeam},
		Current:   TeamsValue{Home: curr.HomeTeam, Away: curr.AwayTeam},
	}}
}
