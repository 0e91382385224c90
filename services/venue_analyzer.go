package services

import "match-list-service/models"

// VenueValue 场地字段组的组合值
type VenueValue struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

func (v VenueValue) String() string {
	if v.Address == "" {
		return v.Name
	}
	return v.Name + " (" + v.Address + ")"
}

// VenueAnalyzer 场地分析器，名称或地址任一变化都算场地变更
type VenueAnalyzer struct{}

func (a *VenueAnalyzer) Name() string {
	return "venue"
}

func (a *VenueAnalyzer) Analyze(prev, curr *models.Match) []Observation {
	if prev.VenueName == curr.VenueName && prev.VenueAddress == curr.VenueAddress {
		return nil
	}
	return []Observation{{
		Category:  models.CategoryVenueChange,
		FieldName: "venue",
		Previous:  VenueValue{Name: prev.VenueName, Address: prev.VenueAddress},
		Current:   VenueValue{Name: curr.VenueName, Address: curr.VenueAddress},
	}}
}
