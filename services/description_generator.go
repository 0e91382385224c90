package services

import (
	"fmt"
	"strings"

	"match-list-service/models"
)

// describeObservation 按类别模板生成人类可读的变更描述，嵌入前后值
func describeObservation(obs Observation, prev, curr *models.Match) string {
	switch obs.Category {
	case models.CategoryNewAssignment:
		if obs.FieldName == "match" && curr != nil {
			return fmt.Sprintf("New match assigned: %s on %s %s", curr.Label(), curr.Date, curr.KickoffTime)
		}
		if assignments, ok := obs.Current.([]models.RefereeAssignment); ok {
			return fmt.Sprintf("Referees assigned: %s", joinRefereeNames(assignments))
		}
		return "New referee assignment"

	case models.CategoryRefereeChange:
		prevNames := "none"
		currNames := "none"
		if assignments, ok := obs.Previous.([]models.RefereeAssignment); ok && len(assignments) > 0 {
			prevNames = joinRefereeNames(assignments)
		}
		if assignments, ok := obs.Current.([]models.RefereeAssignment); ok && len(assignments) > 0 {
			currNames = joinRefereeNames(assignments)
		}
		return fmt.Sprintf("Referees changed from %s to %s", prevNames, currNames)

	case models.CategoryTimeChange:
		return fmt.Sprintf("Kickoff time changed from %v to %v", orNone(obs.Previous), orNone(obs.Current))

	case models.CategoryDateChange:
		return fmt.Sprintf("Match date changed from %v to %v", orNone(obs.Previous), orNone(obs.Current))

	case models.CategoryVenueChange:
		return fmt.Sprintf("Venue changed from %v to %v", orNone(obs.Previous), orNone(obs.Current))

	case models.CategoryTeamChange:
		prevLabel := "unknown"
		currLabel := "unknown"
		if teams, ok := obs.Previous.(TeamsValue); ok {
			prevLabel = teams.Home.Name + " vs " + teams.Away.Name
		}
		if teams, ok := obs.Current.(TeamsValue); ok {
			currLabel = teams.Home.Name + " vs " + teams.Away.Name
		}
		return fmt.Sprintf("Teams changed from %s to %s", prevLabel, currLabel)

	case models.CategoryCompetitionChange:
		return fmt.Sprintf("Competition changed from %v to %v", orNone(obs.Previous), orNone(obs.Current))

	case models.CategoryCancellation:
		if obs.FieldName == "match" && prev != nil {
			return fmt.Sprintf("Match no longer listed, treated as cancelled: %s on %s", prev.Label(), prev.Date)
		}
		return "Match cancelled"

	case models.CategoryPostponement:
		return "Match postponed"

	case models.CategoryInterruption:
		return "Match interrupted"

	case models.CategoryStatusChange:
		return fmt.Sprintf("Status changed from %v to %v", orNone(obs.Previous), orNone(obs.Current))
	}

	return fmt.Sprintf("%s: %v -> %v", obs.Category, orNone(obs.Previous), orNone(obs.Current))
}

func joinRefereeNames(assignments []models.RefereeAssignment) string {
	names := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		name := assignment.Name
		if name == "" {
			name = "Unknown"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

func orNone(value interface{}) interface{} {
	if value == nil {
		return "none"
	}
	if s, ok := value.(string); ok && s == "" {
		return "none"
	}
	if s, ok := value.(fmt.Stringer); ok && s.String() == "" {
		return "none"
	}
	return value
}

// GenerateGroupDescription 生成裁判组沟通群的极简描述文本
func GenerateGroupDescription(match *models.Match) string {
	competition := match.CompetitionName
	if competition == "" {
		competition = "Competition N/A"
	}
	venue := match.VenueName
	if venue == "" {
		venue = "Venue N/A"
	}

	return fmt.Sprintf(
		"*%s*\n_%s_\n%s\n\nMatch Facts: https://www.svenskfotboll.se/matchfakta/match?matchId=%s\n\n---\n"+
			"This group is for communication among the referee team. "+
			"Please keep messages relevant to your referee duties for this match.",
		match.Label(), competition, venue, match.ID,
	)
}
