package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"match-list-service/models"
)

const (
	// MQTT QoS 级别
	mqttQoSAtMostOnce  = 0
	mqttQoSAtLeastOnce = 1
)

// MQTTPublisher 把变更事件发布到 MQTT broker
//
// 每条明细按干系人各发布一次，主题 <prefix>/changes/<stakeholder>，
// 订阅端用自己的角色订阅对应主题即可。
type MQTTPublisher struct {
	broker      string
	username    string
	password    string
	topicPrefix string
	client      mqtt.Client
}

// NewMQTTPublisher 创建 MQTT 发布器
func NewMQTTPublisher(broker, username, password, topicPrefix string) *MQTTPublisher {
	return &MQTTPublisher{
		broker:      broker,
		username:    username,
		password:    password,
		topicPrefix: topicPrefix,
	}
}

// Connect 连接到 MQTT broker
func (p *MQTTPublisher) Connect() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(p.broker)
	opts.SetUsername(p.username)
	opts.SetPassword(p.password)
	opts.SetClientID(fmt.Sprintf("match_list_service_%d", time.Now().Unix()))

	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		log.Println("[MQTTPublisher] Connected to MQTT broker")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("[MQTTPublisher] Connection lost: %v", err)
	})

	// 自动重连
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(10 * time.Second)

	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetCleanSession(true)

	p.client = mqtt.NewClient(opts)

	token := p.client.Connect()
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect: %w", token.Error())
	}

	return nil
}

// Disconnect 断开连接
func (p *MQTTPublisher) Disconnect() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

// IsConnected 是否已连接
func (p *MQTTPublisher) IsConnected() bool {
	return p.client != nil && p.client.IsConnected()
}

func (p *MQTTPublisher) Name() string {
	return "mqtt"
}

// SendChange 按干系人主题发布单条变更明细
func (p *MQTTPublisher) SendChange(detail models.MatchChangeDetail, _ *models.Match) error {
	if !p.IsConnected() {
		return fmt.Errorf("not connected")
	}

	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to marshal change detail: %w", err)
	}

	for _, stakeholder := range detail.Stakeholders {
		topic := fmt.Sprintf("%s/changes/%s", p.topicPrefix, stakeholder)

		token := p.client.Publish(topic, mqttQoSAtLeastOnce, false, payload)
		if token.Wait() && token.Error() != nil {
			return fmt.Errorf("failed to publish to %s: %w", topic, token.Error())
		}
	}

	return nil
}
