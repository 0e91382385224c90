package services

import (
	"fmt"
	"sort"
	"time"

	"match-list-service/models"
)

// ChangeDetector 粒度化变更检测引擎
//
// 对前后两份快照做逐字段比较，把每个差异归入固定的变更类别，
// 评估优先级并解析受影响的干系人。纯函数式：不做 I/O，不修改
// 输入快照，同样的输入（含注入的时钟）产生逐字节相同的明细列表。
type ChangeDetector struct {
	analyzers []FieldAnalyzer
	now       func() time.Time
}

// NewChangeDetector 创建变更检测器
func NewChangeDetector() *ChangeDetector {
	return &ChangeDetector{
		analyzers: defaultAnalyzers(),
		now:       time.Now,
	}
}

// SetClock 注入时钟，当日升级规则以注入时钟的日期为准（测试用）
func (d *ChangeDetector) SetClock(now func() time.Time) {
	d.now = now
}

// Detect 比较两份快照并返回归类后的变更集合
//
// 对格式不完整的输入只跳过单条记录并记录诊断，永远返回尽力而为的
// 结果，不返回错误。
func (d *ChangeDetector) Detect(previous, current models.Snapshot) *models.CategorizedChanges {
	runTime := d.now().UTC()
	today := runTime.Format("2006-01-02")

	prev, warnings := sanitizeSnapshot(previous, "previous")
	curr, currWarnings := sanitizeSnapshot(current, "current")
	warnings = append(warnings, currWarnings...)

	var details []models.MatchChangeDetail

	// 没有基线时不为任何比赛发 NEW_ASSIGNMENT：没有可比较的对象，
	// 对整个既有比赛列表制造"新增"事件只会淹没下游消费者。
	if len(prev) > 0 {
		for _, id := range curr.SortedIDs() {
			if _, ok := prev[id]; ok {
				continue
			}
			match := curr[id]
			obs := Observation{
				Category:  models.CategoryNewAssignment,
				FieldName: "match",
				Previous:  nil,
				Current:   match,
			}
			details = append(details, d.materialize(obs, nil, match, today, runTime))
		}
	}

	// 从当前快照消失的比赛按取消处理：上游源会停止列出已取消的比赛
	for _, id := range prev.SortedIDs() {
		if _, ok := curr[id]; ok {
			continue
		}
		match := prev[id]
		obs := Observation{
			Category:  models.CategoryCancellation,
			FieldName: "match",
			Previous:  match,
			Current:   nil,
		}
		details = append(details, d.materialize(obs, match, nil, today, runTime))
	}

	// 两份快照中都存在的比赛逐分析器比较
	for _, id := range curr.SortedIDs() {
		prevMatch, ok := prev[id]
		if !ok {
			continue
		}
		currMatch := curr[id]

		var observations []Observation
		for _, analyzer := range d.analyzers {
			observations = append(observations, analyzer.Analyze(prevMatch, currMatch)...)
		}

		// 状态迁移到 cancelled 时抑制该比赛本轮的其余观察：
		// 已取消比赛的时间/场地/裁判差异都是噪音，只保留 CANCELLATION。
		// 延期和中断不抑制，延期的比赛仍可能有值得上报的裁判改派。
		if cancellation := findCancellation(observations); cancellation != nil {
			observations = []Observation{*cancellation}
		}

		for _, obs := range observations {
			details = append(details, d.materialize(obs, prevMatch, currMatch, today, runTime))
		}
	}

	sortDetails(details)

	return AggregateChanges(details, warnings, runTime)
}

// materialize 把原始观察物化为完整的变更明细
func (d *ChangeDetector) materialize(obs Observation, prevMatch, currMatch *models.Match, today string, runTime time.Time) models.MatchChangeDetail {
	context := currMatch
	if context == nil {
		context = prevMatch
	}

	return models.MatchChangeDetail{
		MatchID:       context.ID,
		MatchNr:       context.MatchNr,
		Category:      obs.Category,
		Priority:      AssessPriority(obs.Category, currMatch, today),
		Stakeholders:  ResolveStakeholders(obs.Category),
		FieldName:     obs.FieldName,
		PreviousValue: obs.Previous,
		CurrentValue:  obs.Current,
		Description:   describeObservation(obs, prevMatch, currMatch),
		DetectedAt:    runTime,
	}
}

// sanitizeSnapshot 过滤快照中的畸形条目，返回诊断信息
func sanitizeSnapshot(snapshot models.Snapshot, label string) (models.Snapshot, []string) {
	var warnings []string
	malformed := false
	for id, match := range snapshot {
		if id == "" || match == nil {
			malformed = true
			break
		}
	}
	if !malformed {
		return snapshot, nil
	}

	clean := make(models.Snapshot, len(snapshot))
	ids := make([]string, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		match := snapshot[id]
		if id == "" || match == nil {
			warnings = append(warnings, fmt.Sprintf("skipped malformed record in %s snapshot (id=%q)", label, id))
			continue
		}
		clean[id] = match
	}

	return clean, warnings
}

// findCancellation 返回状态分析产生的 CANCELLATION 观察（若存在）
func findCancellation(observations []Observation) *Observation {
	for i := range observations {
		if observations[i].Category == models.CategoryCancellation {
			return &observations[i]
		}
	}
	return nil
}

// sortDetails 按比赛ID升序、类别声明顺序排序，保证输出确定性
func sortDetails(details []models.MatchChangeDetail) {
	sort.SliceStable(details, func(i, j int) bool {
		if details[i].MatchID != details[j].MatchID {
			return details[i].MatchID < details[j].MatchID
		}
		return details[i].Category.Rank() < details[j].Category.Rank()
	})
}
