package services

import (
	"testing"
	"time"

	"match-list-service/models"
)

func TestAggregateChangesEmpty(t *testing.T) {
	runTime := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	result := AggregateChanges(nil, nil, runTime)

	if result.RunID == "" {
		t.Error("Expected non-empty run ID")
	}
	if result.HasChanges() {
		t.Errorf("Expected no changes, got %d", result.TotalChanges)
	}
	if len(result.ByCategory) != 0 || len(result.ByPriority) != 0 || len(result.ByStakeholder) != 0 {
		t.Errorf("Expected empty count maps, got %v / %v / %v",
			result.ByCategory, result.ByPriority, result.ByStakeholder)
	}
}

func TestAggregateChangesCounts(t *testing.T) {
	runTime := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	details := []models.MatchChangeDetail{
		{
			MatchID:      "1001",
			Category:     models.CategoryRefereeChange,
			Priority:     models.PriorityHigh,
			Stakeholders: []models.StakeholderType{models.StakeholderReferees, models.StakeholderCoordinators},
		},
		{
			MatchID:      "1002",
			Category:     models.CategoryCancellation,
			Priority:     models.PriorityCritical,
			Stakeholders: []models.StakeholderType{models.StakeholderAll},
		},
		{
			MatchID:      "1002",
			Category:     models.CategoryRefereeChange,
			Priority:     models.PriorityHigh,
			Stakeholders: []models.StakeholderType{models.StakeholderReferees, models.StakeholderCoordinators},
		},
	}

	result := AggregateChanges(details, []string{"one warning"}, runTime)

	if result.TotalChanges != 3 {
		t.Fatalf("Expected 3 changes, got %d", result.TotalChanges)
	}
	if result.ByCategory[models.CategoryRefereeChange] != 2 {
		t.Errorf("Expected 2 referee changes, got %d", result.ByCategory[models.CategoryRefereeChange])
	}
	if result.ByPriority[models.PriorityCritical] != 1 {
		t.Errorf("Expected 1 critical change, got %d", result.ByPriority[models.PriorityCritical])
	}
	if !result.HasCriticalChanges() {
		t.Error("Expected HasCriticalChanges to be true")
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Expected 1 warning, got %d", len(result.Warnings))
	}
}

func TestAggregateChangesAllIsNotExpanded(t *testing.T) {
	runTime := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	details := []models.MatchChangeDetail{
		{
			MatchID:      "1001",
			Category:     models.CategoryVenueChange,
			Priority:     models.PriorityMedium,
			Stakeholders: []models.StakeholderType{models.StakeholderAll},
		},
	}

	result := AggregateChanges(details, nil, runTime)

	if result.ByStakeholder[models.StakeholderAll] != 1 {
		t.Errorf("Expected all bucket to count 1, got %d", result.ByStakeholder[models.StakeholderAll])
	}
	for _, st := range []models.StakeholderType{
		models.StakeholderReferees, models.StakeholderCoordinators, models.StakeholderTeams,
	} {
		if result.ByStakeholder[st] != 0 {
			t.Errorf("Expected %s bucket to stay 0, got %d", st, result.ByStakeholder[st])
		}
	}
}

func TestAggregateChangesCopiesDetails(t *testing.T) {
	runTime := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	details := []models.MatchChangeDetail{
		{MatchID: "1001", Category: models.CategoryTimeChange, Priority: models.PriorityHigh},
	}

	result := AggregateChanges(details, nil, runTime)
	details[0].MatchID = "mutated"

	if result.Changes[0].MatchID != "1001" {
		t.Errorf("Expected aggregated changes to be independent of input slice, got %s",
			result.Changes[0].MatchID)
	}
}
