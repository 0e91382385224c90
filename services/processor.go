package services

import (
	"fmt"
	"time"

	"match-list-service/logger"
	"match-list-service/models"
)

// RunSink 消费一次运行结果的下游收点（最新结果缓存、数据库审计等）
type RunSink interface {
	RecordRun(result *models.CategorizedChanges)
}

// MatchListProcessor 统一处理循环
//
// 每个周期：读基线 → 拉取当前列表 → 变更检测 → 通知分发 →
// 保存新基线。基线写入只在检测成功后进行，拉取失败时保留旧基线，
// 避免下一轮产生虚假的 NEW_ASSIGNMENT/CANCELLATION 风暴。
type MatchListProcessor struct {
	fetcher  MatchFetcher
	store    SnapshotStore
	detector *ChangeDetector
	notifier *NotificationService
	sinks    []RunSink
	interval time.Duration
	done     chan bool
}

// NewMatchListProcessor 创建处理器
func NewMatchListProcessor(fetcher MatchFetcher, store SnapshotStore, detector *ChangeDetector, interval time.Duration) *MatchListProcessor {
	return &MatchListProcessor{
		fetcher:  fetcher,
		store:    store,
		detector: detector,
		interval: interval,
		done:     make(chan bool),
	}
}

// SetNotifier 设置通知服务
func (p *MatchListProcessor) SetNotifier(notifier *NotificationService) {
	p.notifier = notifier
}

// AddSink 注册运行结果收点
func (p *MatchListProcessor) AddSink(sink RunSink) {
	p.sinks = append(p.sinks, sink)
}

// RunCycle 执行一个完整的处理周期
func (p *MatchListProcessor) RunCycle() (*models.CategorizedChanges, error) {
	start := time.Now()
	logger.Println("[Processor] Starting processing cycle...")

	previous, err := p.store.Load()
	if err != nil {
		// 基线读不出来按首次运行处理，无基线规则会抑制事件风暴
		logger.Errorf("[Processor] Failed to load baseline: %v (starting fresh)", err)
		previous = models.Snapshot{}
	}

	matches, err := p.fetcher.FetchMatches()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current matches: %w", err)
	}

	current, warnings := models.SnapshotFromList(matches)
	for _, warning := range warnings {
		logger.Warnf("[Processor] %s", warning)
	}

	result := p.detector.Detect(previous, current)

	if result.HasChanges() {
		logger.Printf("[Processor] Detected %d changes (%d critical, %d high)",
			result.TotalChanges,
			result.ByPriority[models.PriorityCritical],
			result.ByPriority[models.PriorityHigh],
		)

		if p.notifier != nil {
			sent := p.notifier.ProcessChanges(result, current)
			logger.Printf("[Processor] Dispatched %d notifications", sent)
		}
	} else {
		logger.Println("[Processor] No changes detected")
	}

	for _, sink := range p.sinks {
		sink.RecordRun(result)
	}

	// 保存新基线：同一轮内 Load 先于 Save，写入本身由存储实现保证原子
	if err := p.store.Save(current); err != nil {
		return result, fmt.Errorf("failed to save baseline: %w", err)
	}

	logger.Printf("[Processor] Cycle completed in %s", time.Since(start).Round(time.Millisecond))
	return result, nil
}

// Start 启动周期处理循环
func (p *MatchListProcessor) Start() {
	go p.loop()
}

func (p *MatchListProcessor) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// 立即执行一次
	if _, err := p.RunCycle(); err != nil {
		logger.Errorf("[Processor] ❌ Cycle failed: %v", err)
	}

	for {
		select {
		case <-ticker.C:
			if _, err := p.RunCycle(); err != nil {
				logger.Errorf("[Processor] ❌ Cycle failed: %v", err)
			}
		case <-p.done:
			return
		}
	}
}

// Stop 停止处理循环
func (p *MatchListProcessor) Stop() {
	close(p.done)
}
