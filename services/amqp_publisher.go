package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"match-list-service/logger"
	"match-list-service/models"
)

// AMQPPublisher 把变更事件发布到 AMQP topic 交换机
//
// 路由键格式 changes.<priority>.<category>，下游消费者按优先级
// 或类别绑定自己关心的子集。
type AMQPPublisher struct {
	url      string
	exchange string
	conn     *amqp.Connection
	channel  *amqp.Channel
}

// NewAMQPPublisher 创建 AMQP 发布器
func NewAMQPPublisher(url, exchange string) *AMQPPublisher {
	return &AMQPPublisher{
		url:      url,
		exchange: exchange,
	}
}

// Start 建立连接并声明交换机
func (p *AMQPPublisher) Start() error {
	logger.Printf("[AMQPPublisher] Connecting to AMQP...")

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 60 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return fmt.Errorf("failed to connect to AMQP: %w", err)
	}
	p.conn = conn

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}
	p.channel = channel

	if err := channel.ExchangeDeclare(
		p.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Printf("[AMQPPublisher] Connected, exchange declared: %s", p.exchange)
	return nil
}

// Stop 关闭连接
func (p *AMQPPublisher) Stop() {
	logger.Println("[AMQPPublisher] Stopping...")
	if p.conn != nil {
		p.conn.Close()
	}
}

func (p *AMQPPublisher) Name() string {
	return "amqp"
}

// SendChange 发布单条变更明细
func (p *AMQPPublisher) SendChange(detail models.MatchChangeDetail, _ *models.Match) error {
	if p.channel == nil {
		return fmt.Errorf("amqp publisher not started")
	}

	body, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to marshal change detail: %w", err)
	}

	routingKey := fmt.Sprintf("changes.%s.%s", detail.Priority, detail.Category)

	if err := p.channel.Publish(
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   detail.DetectedAt,
			Body:        body,
		},
	); err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}

	return nil
}

// SendRunSummary 发布整轮运行摘要
func (p *AMQPPublisher) SendRunSummary(result *models.CategorizedChanges) error {
	if p.channel == nil {
		return fmt.Errorf("amqp publisher not started")
	}

	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	if err := p.channel.Publish(
		p.exchange,
		"runs.summary",
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   result.RunTimestamp,
			Body:        body,
		},
	); err != nil {
		return fmt.Errorf("failed to publish run summary: %w", err)
	}

	return nil
}
