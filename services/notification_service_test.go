package services

import (
	"errors"
	"testing"
	"time"

	"match-list-service/models"
)

type stubChannel struct {
	name      string
	sent      []models.MatchChangeDetail
	summaries int
	fail      bool
}

func (c *stubChannel) Name() string { return c.name }

func (c *stubChannel) SendChange(detail models.MatchChangeDetail, _ *models.Match) error {
	if c.fail {
		return errors.New("delivery failed")
	}
	c.sent = append(c.sent, detail)
	return nil
}

func (c *stubChannel) SendRunSummary(_ *models.CategorizedChanges) error {
	c.summaries++
	return nil
}

func resultWithChanges(details ...models.MatchChangeDetail) *models.CategorizedChanges {
	return AggregateChanges(details, nil, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))
}

func TestNotificationServiceDispatchesToAllChannels(t *testing.T) {
	service := NewNotificationService()
	first := &stubChannel{name: "first"}
	second := &stubChannel{name: "second"}
	service.AddChannel(first)
	service.AddChannel(second)

	result := resultWithChanges(
		models.MatchChangeDetail{MatchID: "1001", Category: models.CategoryTimeChange},
		models.MatchChangeDetail{MatchID: "1002", Category: models.CategoryCancellation},
	)

	sent := service.ProcessChanges(result, snapshotOf(testMatch("1001")))

	if sent != 4 {
		t.Errorf("Expected 4 deliveries, got %d", sent)
	}
	if len(first.sent) != 2 || len(second.sent) != 2 {
		t.Errorf("Expected both channels to receive 2 details, got %d and %d",
			len(first.sent), len(second.sent))
	}
	if first.summaries != 1 || second.summaries != 1 {
		t.Errorf("Expected run summaries on both channels, got %d and %d",
			first.summaries, second.summaries)
	}
}

func TestNotificationServiceFailureDoesNotBlockOthers(t *testing.T) {
	service := NewNotificationService()
	failing := &stubChannel{name: "failing", fail: true}
	healthy := &stubChannel{name: "healthy"}
	service.AddChannel(failing)
	service.AddChannel(healthy)

	result := resultWithChanges(
		models.MatchChangeDetail{MatchID: "1001", Category: models.CategoryVenueChange},
	)

	sent := service.ProcessChanges(result, snapshotOf(testMatch("1001")))

	if sent != 1 {
		t.Errorf("Expected 1 successful delivery, got %d", sent)
	}
	if len(healthy.sent) != 1 {
		t.Errorf("Expected healthy channel to receive the detail, got %d", len(healthy.sent))
	}
}

func TestNotificationServiceChannelNames(t *testing.T) {
	service := NewNotificationService()
	service.AddChannel(&stubChannel{name: "webhook"})
	service.AddChannel(&stubChannel{name: "telegram"})

	names := service.ChannelNames()
	if len(names) != 2 || names[0] != "webhook" || names[1] != "telegram" {
		t.Errorf("Expected [webhook telegram], got %v", names)
	}
}
