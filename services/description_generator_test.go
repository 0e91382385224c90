package services

import (
	"strings"
	"testing"

	"match-list-service/models"
)

func TestDescribeRefereeChange(t *testing.T) {
	obs := Observation{
		Category:  models.CategoryRefereeChange,
		FieldName: "referees",
		Previous:  []models.RefereeAssignment{{Name: "Anna Svensson", Role: "Referee"}},
		Current:   []models.RefereeAssignment{{Name: "Erik Lund", Role: "Referee"}},
	}

	got := describeObservation(obs, testMatch("1001"), testMatch("1001"))
	expected := "Referees changed from Anna Svensson to Erik Lund"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestDescribeTimeChange(t *testing.T) {
	obs := Observation{
		Category:  models.CategoryTimeChange,
		FieldName: "kickoff_time",
		Previous:  "15:00",
		Current:   "19:00",
	}

	got := describeObservation(obs, testMatch("1001"), testMatch("1001"))
	expected := "Kickoff time changed from 15:00 to 19:00"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestDescribeRemovedMatch(t *testing.T) {
	prev := testMatch("1001")
	obs := Observation{
		Category:  models.CategoryCancellation,
		FieldName: "match",
		Previous:  prev,
	}

	got := describeObservation(obs, prev, nil)
	if !strings.Contains(got, "no longer listed") {
		t.Errorf("Expected removal description, got %q", got)
	}
	if !strings.Contains(got, "Lions FC vs Eagles IF") {
		t.Errorf("Expected match label in description, got %q", got)
	}
}

func TestDescribeEmptyValuesRenderAsNone(t *testing.T) {
	obs := Observation{
		Category:  models.CategoryVenueChange,
		FieldName: "venue",
		Previous:  VenueValue{},
		Current:   VenueValue{Name: "Central Arena"},
	}

	got := describeObservation(obs, testMatch("1001"), testMatch("1001"))
	expected := "Venue changed from none to Central Arena"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestGenerateGroupDescription(t *testing.T) {
	match := testMatch("6169913")

	got := GenerateGroupDescription(match)

	if !strings.Contains(got, "*Lions FC vs Eagles IF*") {
		t.Errorf("Expected match label, got %q", got)
	}
	if !strings.Contains(got, "https://www.svenskfotboll.se/matchfakta/match?matchId=6169913") {
		t.Errorf("Expected match facts link, got %q", got)
	}
	if !strings.Contains(got, "referee team") {
		t.Errorf("Expected referee group note, got %q", got)
	}
}

func TestGenerateGroupDescriptionMissingFields(t *testing.T) {
	match := &models.Match{
		ID:       "1001",
		HomeTeam: models.Team{Name: "Lions FC"},
		AwayTeam: models.Team{Name: "Eagles IF"},
	}

	got := GenerateGroupDescription(match)
	if !strings.Contains(got, "Competition N/A") || !strings.Contains(got, "Venue N/A") {
		t.Errorf("Expected placeholders for missing fields, got %q", got)
	}
}
