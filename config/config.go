package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// 上游比赛列表 API 配置
	APIBaseURL string `yaml:"api_base_url"`

	// 本地快照配置
	DataFolder          string `yaml:"data_folder"`
	PreviousMatchesFile string `yaml:"previous_matches_file"`

	// 数据库配置（为空时使用文件快照存储）
	DatabaseURL string `yaml:"database_url"`

	// 服务器配置
	Port string `yaml:"port"`

	// 处理周期（分钟）
	ProcessingIntervalMinutes int `yaml:"processing_interval_minutes"`

	// 通知通道配置
	WebhookURL       string `yaml:"webhook_url"`
	TelegramBotToken string `yaml:"telegram_bot_token"`
	TelegramChatID   int64  `yaml:"telegram_chat_id"`

	// AMQP 配置
	AMQPURL      string `yaml:"amqp_url"`
	AMQPExchange string `yaml:"amqp_exchange"`

	// MQTT 配置
	MQTTBroker      string `yaml:"mqtt_broker"`
	MQTTUsername    string `yaml:"mqtt_username"`
	MQTTPassword    string `yaml:"mqtt_password"`
	MQTTTopicPrefix string `yaml:"mqtt_topic_prefix"`

	// 其他配置
	Environment string `yaml:"environment"`
}

// Load 加载配置
//
// 先读 CONFIG_FILE 指定的 YAML 文件（可选），再用环境变量覆盖。
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:                "http://localhost:8000",
		DataFolder:                "data",
		PreviousMatchesFile:       "previous_matches.json",
		Port:                      "8080",
		ProcessingIntervalMinutes: 60,
		AMQPExchange:              "match_changes",
		MQTTTopicPrefix:           "match_list",
		Environment:               "development",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.APIBaseURL = getEnv("MATCH_API_URL", cfg.APIBaseURL)
	cfg.DataFolder = getEnv("DATA_FOLDER", cfg.DataFolder)
	cfg.PreviousMatchesFile = getEnv("PREVIOUS_MATCHES_FILE", cfg.PreviousMatchesFile)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.ProcessingIntervalMinutes = getEnvInt("PROCESSING_INTERVAL_MINUTES", cfg.ProcessingIntervalMinutes)
	cfg.WebhookURL = getEnv("NOTIFICATION_WEBHOOK_URL", cfg.WebhookURL)
	cfg.TelegramBotToken = getEnv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	cfg.TelegramChatID = getEnvInt64("TELEGRAM_CHAT_ID", cfg.TelegramChatID)
	cfg.AMQPURL = getEnv("AMQP_URL", cfg.AMQPURL)
	cfg.AMQPExchange = getEnv("AMQP_EXCHANGE", cfg.AMQPExchange)
	cfg.MQTTBroker = getEnv("MQTT_BROKER", cfg.MQTTBroker)
	cfg.MQTTUsername = getEnv("MQTT_USERNAME", cfg.MQTTUsername)
	cfg.MQTTPassword = getEnv("MQTT_PASSWORD", cfg.MQTTPassword)
	cfg.MQTTTopicPrefix = getEnv("MQTT_TOPIC_PREFIX", cfg.MQTTTopicPrefix)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)

	if cfg.ProcessingIntervalMinutes <= 0 {
		return nil, fmt.Errorf("processing interval must be positive, got %d", cfg.ProcessingIntervalMinutes)
	}

	return cfg, nil
}

// ProcessingInterval 处理周期
func (c *Config) ProcessingInterval() time.Duration {
	return time.Duration(c.ProcessingIntervalMinutes) * time.Minute
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var result int
	fmt.Sscanf(value, "%d", &result)
	if result == 0 {
		return defaultValue
	}
	return result
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var result int64
	fmt.Sscanf(value, "%d", &result)
	if result == 0 {
		return defaultValue
	}
	return result
}
