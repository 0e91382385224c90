package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"match-list-service/models"
)

// WebhookNotifier 飞书机器人通知器
type WebhookNotifier struct {
	webhookURL string
	client     *http.Client
	enabled    bool
}

// NewWebhookNotifier 创建飞书通知器，webhook 为空时禁用
func NewWebhookNotifier(webhookURL string) *WebhookNotifier {
	enabled := webhookURL != ""
	if enabled {
		log.Printf("[WebhookNotifier] Initialized with webhook")
	} else {
		log.Printf("[WebhookNotifier] Disabled (no webhook URL)")
	}

	return &WebhookNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		enabled:    enabled,
	}
}

// WebhookMessage 飞书消息结构
type WebhookMessage struct {
	MsgType string      `json:"msg_type"`
	Content interface{} `json:"content"`
}

// WebhookTextContent 文本消息内容
type WebhookTextContent struct {
	Text string `json:"text"`
}

// WebhookPostContent 富文本消息内容
type WebhookPostContent struct {
	Post WebhookPost `json:"post"`
}

type WebhookPost struct {
	ZhCn WebhookPostLang `json:"zh_cn"`
}

type WebhookPostLang struct {
	Title   string             `json:"title"`
	Content [][]WebhookElement `json:"content"`
}

type WebhookElement struct {
	Tag  string `json:"tag"`
	Text string `json:"text,omitempty"`
	Href string `json:"href,omitempty"`
}

func (n *WebhookNotifier) Name() string {
	return "webhook"
}

// SendText 发送文本消息
func (n *WebhookNotifier) SendText(text string) error {
	if !n.enabled {
		return nil
	}

	message := WebhookMessage{
		MsgType: "text",
		Content: WebhookTextContent{
			Text: text,
		},
	}

	return n.send(message)
}

// SendRichText 发送富文本消息
func (n *WebhookNotifier) SendRichText(title string, content [][]WebhookElement) error {
	if !n.enabled {
		return nil
	}

	message := WebhookMessage{
		MsgType: "post",
		Content: WebhookPostContent{
			Post: WebhookPost{
				ZhCn: WebhookPostLang{
					Title:   title,
					Content: content,
				},
			},
		},
	}

	return n.send(message)
}

// send 发送消息
func (n *WebhookNotifier) send(message WebhookMessage) error {
	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

// SendChange 推送单条变更明细
func (n *WebhookNotifier) SendChange(detail models.MatchChangeDetail, match *models.Match) error {
	label := detail.MatchID
	if match != nil {
		label = match.Label()
	}

	content := [][]WebhookElement{
		{
			{Tag: "text", Text: fmt.Sprintf("%s %s\n", priorityEmoji(detail.Priority), detail.Category)},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("比赛: %s (ID: %s)\n", label, detail.MatchID)},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("优先级: %s\n", detail.Priority)},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("干系人: %v\n", detail.Stakeholders)},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("详情: %s\n", detail.Description)},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("时间: %s", detail.DetectedAt.Format("2006-01-02 15:04:05"))},
		},
	}

	return n.SendRichText("Match Change Alert", content)
}

// SendRunSummary 推送整轮运行摘要
func (n *WebhookNotifier) SendRunSummary(result *models.CategorizedChanges) error {
	content := [][]WebhookElement{
		{
			{Tag: "text", Text: "📊 变更检测摘要\n"},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("总变更数: %d\n", result.TotalChanges)},
		},
	}

	// 按优先级降序列出非零计数
	for _, priority := range models.AllPriorities {
		if count := result.ByPriority[priority]; count > 0 {
			content = append(content, []WebhookElement{
				{Tag: "text", Text: fmt.Sprintf("  %s: %d\n", priority, count)},
			})
		}
	}

	for _, category := range models.AllCategories {
		if count := result.ByCategory[category]; count > 0 {
			content = append(content, []WebhookElement{
				{Tag: "text", Text: fmt.Sprintf("  %s: %d\n", category, count)},
			})
		}
	}

	if len(result.Warnings) > 0 {
		content = append(content, []WebhookElement{
			{Tag: "text", Text: fmt.Sprintf("⚠️ 诊断: %d 条记录被跳过\n", len(result.Warnings))},
		})
	}

	content = append(content, []WebhookElement{
		{Tag: "text", Text: fmt.Sprintf("时间: %s", result.RunTimestamp.Format("2006-01-02 15:04:05"))},
	})

	return n.SendRichText("Match List Change Summary", content)
}

// NotifyServiceStart 通知服务启动
func (n *WebhookNotifier) NotifyServiceStart(apiBaseURL string, interval time.Duration) error {
	content := [][]WebhookElement{
		{
			{Tag: "text", Text: "🚀 服务启动\n"},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("上游: %s\n", apiBaseURL)},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("处理间隔: %s\n", interval)},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("时间: %s", time.Now().Format("2006-01-02 15:04:05"))},
		},
	}

	return n.SendRichText("Match List Service Started", content)
}

// NotifyError 通知错误
func (n *WebhookNotifier) NotifyError(component, message string) error {
	content := [][]WebhookElement{
		{
			{Tag: "text", Text: "❌ 错误\n"},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("组件: %s\n", component)},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("消息: %s\n", message)},
		},
		{
			{Tag: "text", Text: fmt.Sprintf("时间: %s", time.Now().Format("2006-01-02 15:04:05"))},
		},
	}

	return n.SendRichText("Error Alert", content)
}

func priorityEmoji(priority models.ChangePriority) string {
	switch priority {
	case models.PriorityCritical:
		return "🚨"
	case models.PriorityHigh:
		return "⚠️"
	case models.PriorityMedium:
		return "ℹ️"
	default:
		return "📝"
	}
}
