package models

import (
	"fmt"
	"sort"
	"strings"
)

// MatchStatus 比赛状态
type MatchStatus string

const (
	StatusScheduled   MatchStatus = "scheduled"
	StatusPostponed   MatchStatus = "postponed"
	StatusInterrupted MatchStatus = "interrupted"
	StatusCancelled   MatchStatus = "cancelled"
	StatusUnknown     MatchStatus = "unknown"
)

// ParseStatus 解析上游状态字符串，无法识别时返回 StatusUnknown
func ParseStatus(s string) MatchStatus {
	switch MatchStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusScheduled:
		return StatusScheduled
	case StatusPostponed:
		return StatusPostponed
	case StatusInterrupted:
		return StatusInterrupted
	case StatusCancelled:
		return StatusCancelled
	case "":
		return StatusScheduled
	}
	return StatusUnknown
}

// Team 参赛队伍
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RefereeAssignment 裁判指派
type RefereeAssignment struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Match 一场已排期的比赛
//
// Date 使用 YYYY-MM-DD，KickoffTime 使用 HH:MM。可选字段缺失时为零值，
// 分析器把零值当作"无值"处理，不等于任何哨兵值。
type Match struct {
	ID               string              `json:"match_id"`
	MatchNr          string              `json:"match_nr,omitempty"`
	Date             string              `json:"date"`
	KickoffTime      string              `json:"kickoff_time"`
	VenueName        string              `json:"venue_name,omitempty"`
	VenueAddress     string              `json:"venue_address,omitempty"`
	HomeTeam         Team                `json:"home_team"`
	AwayTeam         Team                `json:"away_team"`
	CompetitionName  string              `json:"competition_name,omitempty"`
	CompetitionLevel string              `json:"competition_level,omitempty"`
	Status           MatchStatus         `json:"status"`
	Referees         []RefereeAssignment `json:"referees,omitempty"`
}

// Label 返回 "主队 vs 客队" 形式的展示名
func (m *Match) Label() string {
	home := m.HomeTeam.Name
	away := m.AwayTeam.Name
	if home == "" {
		home = "Home"
	}
	if away == "" {
		away = "Away"
	}
	return home + " vs " + away
}

// Snapshot 按比赛ID索引的比赛集合
type Snapshot map[string]*Match

// SnapshotFromList 把比赛列表转换为按ID索引的快照
//
// 缺少ID的记录会被跳过，并以诊断信息的形式返回，调用方负责记录日志。
func SnapshotFromList(matches []*Match) (Snapshot, []string) {
	snapshot := make(Snapshot, len(matches))
	var warnings []string

	for i, match := range matches {
		if match == nil {
			warnings = append(warnings, warnNilRecord(i))
			continue
		}
		if match.ID == "" {
			warnings = append(warnings, warnMissingID(i, match))
			continue
		}
		snapshot[match.ID] = match
	}

	return snapshot, warnings
}

// SortedIDs 返回按字典序排序的比赛ID列表
func (s Snapshot) SortedIDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ToList 返回按ID排序的比赛列表，用于持久化
func (s Snapshot) ToList() []*Match {
	list := make([]*Match, 0, len(s))
	for _, id := range s.SortedIDs() {
		list = append(list, s[id])
	}
	return list
}

func warnNilRecord(index int) string {
	return fmt.Sprintf("skipped nil match record at index %d", index)
}

func warnMissingID(index int, match *Match) string {
	return fmt.Sprintf("skipped match record without id at index %d (%s)", index, match.Label())
}
