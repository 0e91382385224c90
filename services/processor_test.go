package services

import (
	"errors"
	"testing"
	"time"

	"match-list-service/models"
)

type stubFetcher struct {
	matches []*models.Match
	err     error
}

func (f *stubFetcher) FetchMatches() ([]*models.Match, error) {
	return f.matches, f.err
}

type memoryStore struct {
	snapshot models.Snapshot
	saves    int
}

func (s *memoryStore) Load() (models.Snapshot, error) {
	if s.snapshot == nil {
		return models.Snapshot{}, nil
	}
	return s.snapshot, nil
}

func (s *memoryStore) Save(snapshot models.Snapshot) error {
	s.snapshot = snapshot
	s.saves++
	return nil
}

type recordingSink struct {
	runs []*models.CategorizedChanges
}

func (s *recordingSink) RecordRun(result *models.CategorizedChanges) {
	s.runs = append(s.runs, result)
}

func newTestProcessor(fetcher MatchFetcher, store SnapshotStore) *MatchListProcessor {
	detector := NewChangeDetector()
	detector.SetClock(fixedClock("2026-08-25 10:00"))
	return NewMatchListProcessor(fetcher, store, detector, time.Hour)
}

func TestRunCycleFirstRunEstablishesBaseline(t *testing.T) {
	store := &memoryStore{}
	fetcher := &stubFetcher{matches: []*models.Match{testMatch("1001"), testMatch("1002")}}
	p := newTestProcessor(fetcher, store)

	result, err := p.RunCycle()
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	if result.HasChanges() {
		t.Errorf("Expected first run to report no changes, got %d", result.TotalChanges)
	}
	if store.saves != 1 {
		t.Errorf("Expected baseline saved once, got %d", store.saves)
	}
	if len(store.snapshot) != 2 {
		t.Errorf("Expected baseline of 2 matches, got %d", len(store.snapshot))
	}
}

func TestRunCycleDetectsChangesAgainstBaseline(t *testing.T) {
	store := &memoryStore{snapshot: snapshotOf(testMatch("1001"))}

	changed := testMatch("1001")
	changed.KickoffTime = "19:00"
	fetcher := &stubFetcher{matches: []*models.Match{changed}}
	p := newTestProcessor(fetcher, store)

	sink := &recordingSink{}
	p.AddSink(sink)

	result, err := p.RunCycle()
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	if result.TotalChanges != 1 {
		t.Fatalf("Expected 1 change, got %d", result.TotalChanges)
	}
	if result.Changes[0].Category != models.CategoryTimeChange {
		t.Errorf("Expected %s, got %s", models.CategoryTimeChange, result.Changes[0].Category)
	}
	if len(sink.runs) != 1 {
		t.Errorf("Expected sink to record 1 run, got %d", len(sink.runs))
	}
	if store.snapshot["1001"].KickoffTime != "19:00" {
		t.Errorf("Expected baseline updated to new kickoff time, got %s",
			store.snapshot["1001"].KickoffTime)
	}
}

func TestRunCycleFetchFailureKeepsBaseline(t *testing.T) {
	store := &memoryStore{snapshot: snapshotOf(testMatch("1001"))}
	fetcher := &stubFetcher{err: errors.New("upstream down")}
	p := newTestProcessor(fetcher, store)

	if _, err := p.RunCycle(); err == nil {
		t.Fatal("Expected error when fetch fails")
	}
	if store.saves != 0 {
		t.Errorf("Expected baseline untouched on fetch failure, got %d saves", store.saves)
	}
	if len(store.snapshot) != 1 {
		t.Errorf("Expected baseline preserved, got %d matches", len(store.snapshot))
	}
}

func TestRunCycleDispatchesNotifications(t *testing.T) {
	store := &memoryStore{snapshot: snapshotOf(testMatch("1001"), testMatch("1002"))}
	fetcher := &stubFetcher{matches: []*models.Match{testMatch("1001")}}
	p := newTestProcessor(fetcher, store)

	notifier := NewNotificationService()
	channel := &stubChannel{name: "stub"}
	notifier.AddChannel(channel)
	p.SetNotifier(notifier)

	if _, err := p.RunCycle(); err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	if len(channel.sent) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(channel.sent))
	}
	if channel.sent[0].Category != models.CategoryCancellation {
		t.Errorf("Expected %s notification, got %s",
			models.CategoryCancellation, channel.sent[0].Category)
	}
}

func TestRunCycleNoChangesSkipsNotifications(t *testing.T) {
	store := &memoryStore{snapshot: snapshotOf(testMatch("1001"))}
	fetcher := &stubFetcher{matches: []*models.Match{testMatch("1001")}}
	p := newTestProcessor(fetcher, store)

	notifier := NewNotificationService()
	channel := &stubChannel{name: "stub"}
	notifier.AddChannel(channel)
	p.SetNotifier(notifier)

	if _, err := p.RunCycle(); err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	if len(channel.sent) != 0 || channel.summaries != 0 {
		t.Errorf("Expected no notifications on quiet run, got %d details and %d summaries",
			len(channel.sent), channel.summaries)
	}
}
