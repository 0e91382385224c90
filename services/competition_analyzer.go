package services

import "match-list-service/models"

// CompetitionValue 赛事字段组的组合值
type CompetitionValue struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

func (v CompetitionValue) String() string {
	if v.Level == "" {
		return v.Name
	}
	return v.Name + " / " + v.Level
}

// CompetitionAnalyzer 赛事归属分析器
type CompetitionAnalyzer struct{}

func (a *CompetitionAnalyzer) Name() string {
	return "competition"
}

func (a *CompetitionAnalyzer) Analyze(prev, curr *models.Match) []Observation {
	if prev.CompetitionName == curr.CompetitionName && prev.CompetitionLevel == curr.CompetitionLevel {
		return nil
	}
	return []Observation{{
		Category:  models.CategoryCompetitionChange,
		FieldName: "competition",
		Previous:  CompetitionValue{Name: prev.CompetitionName, Level: prev.CompetitionLevel},
		Current:   CompetitionValue{Name: curr.CompetitionName, Level: curr.CompetitionLevel},
	}}
}
