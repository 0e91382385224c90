package services

import "match-list-service/models"

// DateAnalyzer 比赛日期分析器
type DateAnalyzer struct{}

func (a *DateAnalyzer) Name() string {
	return "date"
}

func (a *DateAnalyzer) Analyze(prev, curr *models.Match) []Observation {
	if prev.Date == curr.Date {
		return nil
	}
	return []Observation{{
		Category:  models.CategoryDateChange,
		FieldName: "date",
		Previous:  prev.Date,
		Current:   curr.Date,
	}}
}

// TimeAnalyzer 开球时间分析器
type TimeAnalyzer struct{}

func (a *TimeAnalyzer) Name() string {
	return "kickoff_time"
}

func (a *TimeAnalyzer) Analyze(prev, curr *models.Match) []Observation {
	if prev.KickoffTime == curr.KickoffTime {
		return nil
	}
	return []Observation{{
		Category:  models.CategoryTimeChange,
		FieldName: "kickoff_time",
		Previous:  prev.KickoffTime,
		Current:   curr.KickoffTime,
	}}
}
