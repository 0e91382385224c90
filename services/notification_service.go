package services

import (
	"log"

	"match-list-service/models"
)

// NotificationChannel 变更通知通道
//
// match 为当前快照中的比赛，比赛已从列表消失（取消信号）时为 nil。
type NotificationChannel interface {
	Name() string
	SendChange(detail models.MatchChangeDetail, match *models.Match) error
}

// runSummarySender 可选能力：通道额外接收整轮运行摘要
type runSummarySender interface {
	SendRunSummary(result *models.CategorizedChanges) error
}

// NotificationService 把归类后的变更分发到各通知通道
//
// 只负责单次分发，不做重试，投递保障由各通道自身的基础设施承担。
type NotificationService struct {
	channels []NotificationChannel
}

// NewNotificationService 创建通知服务
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// AddChannel 注册通知通道
func (s *NotificationService) AddChannel(channel NotificationChannel) {
	s.channels = append(s.channels, channel)
	log.Printf("[Notifications] Channel registered: %s", channel.Name())
}

// ChannelNames 返回已注册通道名称
func (s *NotificationService) ChannelNames() []string {
	names := make([]string, 0, len(s.channels))
	for _, channel := range s.channels {
		names = append(names, channel.Name())
	}
	return names
}

// ProcessChanges 把一轮运行的全部变更明细分发给所有通道，返回成功投递数
func (s *NotificationService) ProcessChanges(result *models.CategorizedChanges, current models.Snapshot) int {
	sent := 0

	for _, detail := range result.Changes {
		match := current[detail.MatchID]

		for _, channel := range s.channels {
			if err := channel.SendChange(detail, match); err != nil {
				log.Printf("[Notifications] ❌ %s delivery failed for match %s: %v",
					channel.Name(), detail.MatchID, err)
				continue
			}
			sent++
		}
	}

	for _, channel := range s.channels {
		sender, ok := channel.(runSummarySender)
		if !ok {
			continue
		}
		if err := sender.SendRunSummary(result); err != nil {
			log.Printf("[Notifications] ❌ %s run summary failed: %v", channel.Name(), err)
		}
	}

	return sent
}
