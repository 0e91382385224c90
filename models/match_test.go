package models

import (
	"strings"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected MatchStatus
	}{
		{"scheduled", StatusScheduled},
		{"postponed", StatusPostponed},
		{"interrupted", StatusInterrupted},
		{"cancelled", StatusCancelled},
		{"Cancelled", StatusCancelled},
		{"  postponed  ", StatusPostponed},
		{"", StatusScheduled},
		{"something-else", StatusUnknown},
	}

	for _, tt := range tests {
		if got := ParseStatus(tt.input); got != tt.expected {
			t.Errorf("ParseStatus(%q): expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestMatchLabel(t *testing.T) {
	m := &Match{
		HomeTeam: Team{Name: "Lions FC"},
		AwayTeam: Team{Name: "Eagles IF"},
	}
	if got := m.Label(); got != "Lions FC vs Eagles IF" {
		t.Errorf("Expected 'Lions FC vs Eagles IF', got %q", got)
	}

	empty := &Match{}
	if got := empty.Label(); got != "Home vs Away" {
		t.Errorf("Expected placeholder label, got %q", got)
	}
}

func TestSnapshotFromList(t *testing.T) {
	matches := []*Match{
		{ID: "1001"},
		nil,
		{ID: ""},
		{ID: "1002"},
	}

	snapshot, warnings := SnapshotFromList(matches)

	if len(snapshot) != 2 {
		t.Errorf("Expected 2 matches in snapshot, got %d", len(snapshot))
	}
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "nil match record") {
		t.Errorf("Expected nil record warning, got %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "without id") {
		t.Errorf("Expected missing id warning, got %q", warnings[1])
	}
}

func TestSnapshotSortedIDs(t *testing.T) {
	snapshot := Snapshot{
		"2002": {ID: "2002"},
		"1001": {ID: "1001"},
		"1500": {ID: "1500"},
	}

	ids := snapshot.SortedIDs()
	expected := []string{"1001", "1500", "2002"}
	for i, id := range expected {
		if ids[i] != id {
			t.Errorf("Expected ids[%d]=%s, got %s", i, id, ids[i])
		}
	}
}

func TestSnapshotToList(t *testing.T) {
	snapshot := Snapshot{
		"2002": {ID: "2002"},
		"1001": {ID: "1001"},
	}

	list := snapshot.ToList()
	if len(list) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(list))
	}
	if list[0].ID != "1001" || list[1].ID != "2002" {
		t.Errorf("Expected list sorted by ID, got %s then %s", list[0].ID, list[1].ID)
	}
}
