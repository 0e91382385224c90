package services

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"match-list-service/models"
)

// TelegramNotifier Telegram 群通知器
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier 创建 Telegram 通知器
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = false

	// 验证凭证
	if _, err := bot.GetMe(); err != nil {
		return nil, fmt.Errorf("failed to get bot info: %w", err)
	}

	log.Printf("[TelegramNotifier] Initialized (chat %d)", chatID)

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (n *TelegramNotifier) Name() string {
	return "telegram"
}

// SendChange 推送单条变更明细
func (n *TelegramNotifier) SendChange(detail models.MatchChangeDetail, match *models.Match) error {
	msg := tgbotapi.NewMessage(n.chatID, n.formatChange(detail, match))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// formatChange 格式化变更消息
func (n *TelegramNotifier) formatChange(detail models.MatchChangeDetail, match *models.Match) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s *%s*\n\n", priorityEmoji(detail.Priority), detail.Category))

	if match != nil {
		builder.WriteString(fmt.Sprintf("*%s*\n", escapeTelegramMarkdown(match.Label())))
		if match.Date != "" {
			builder.WriteString(fmt.Sprintf("🕐 %s %s\n", match.Date, match.KickoffTime))
		}
		if match.VenueName != "" {
			builder.WriteString(fmt.Sprintf("📍 %s\n", escapeTelegramMarkdown(match.VenueName)))
		}
	} else {
		builder.WriteString(fmt.Sprintf("Match ID: %s\n", detail.MatchID))
	}

	builder.WriteString(fmt.Sprintf("\n%s\n", escapeTelegramMarkdown(detail.Description)))
	builder.WriteString(fmt.Sprintf("\n_Priority: %s_\n", detail.Priority))

	// 整场比赛的新指派附上裁判组沟通群描述
	if detail.Category == models.CategoryNewAssignment && detail.FieldName == "match" && match != nil {
		builder.WriteString("\n")
		builder.WriteString(escapeTelegramMarkdown(GenerateGroupDescription(match)))
	}

	return builder.String()
}

func escapeTelegramMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
