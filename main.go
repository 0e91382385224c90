package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"match-list-service/config"
	"match-list-service/database"
	"match-list-service/services"
	"match-list-service/web"
)

func main() {
	log.Println("Starting Match List Service...")

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 快照存储：配置了数据库用 Postgres，否则用本地文件
	var snapshotStore services.SnapshotStore
	var dbStore *database.Store

	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("Database connected and migrated")

		dbStore = database.NewStore(db)
		snapshotStore = dbStore
	} else {
		snapshotStore = services.NewFileSnapshotStore(cfg.DataFolder, cfg.PreviousMatchesFile)
		log.Printf("Using file snapshot store: %s/%s", cfg.DataFolder, cfg.PreviousMatchesFile)
	}

	// 创建WebSocket Hub
	wsHub := web.NewHub()
	go wsHub.Run()

	// 通知通道
	notifier := services.NewNotificationService()

	webhookNotifier := services.NewWebhookNotifier(cfg.WebhookURL)
	if cfg.WebhookURL != "" {
		notifier.AddChannel(webhookNotifier)
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		telegramNotifier, err := services.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("❌ Telegram notifier disabled: %v", err)
		} else {
			notifier.AddChannel(telegramNotifier)
		}
	}

	var amqpPublisher *services.AMQPPublisher
	if cfg.AMQPURL != "" {
		amqpPublisher = services.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err := amqpPublisher.Start(); err != nil {
			log.Fatalf("Failed to start AMQP publisher: %v", err)
		}
		notifier.AddChannel(amqpPublisher)
	}

	var mqttPublisher *services.MQTTPublisher
	if cfg.MQTTBroker != "" {
		mqttPublisher = services.NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTUsername, cfg.MQTTPassword, cfg.MQTTTopicPrefix)
		if err := mqttPublisher.Connect(); err != nil {
			log.Printf("❌ MQTT publisher disabled: %v", err)
		} else {
			notifier.AddChannel(mqttPublisher)
		}
	}

	log.Printf("Notification channels: %v", notifier.ChannelNames())

	// 变更检测流水线
	fetcher := services.NewMatchAPIClient(cfg.APIBaseURL)
	detector := services.NewChangeDetector()
	processor := services.NewMatchListProcessor(fetcher, snapshotStore, detector, cfg.ProcessingInterval())
	processor.SetNotifier(notifier)

	// Web服务器同时作为检测结果的落点（最近一轮 + WebSocket 广播）
	server := web.NewServer(cfg, dbStore, wsHub)
	processor.AddSink(server)
	if dbStore != nil {
		processor.AddSink(dbStore)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Web server error: %v", err)
		}
	}()
	log.Printf("Web server started on port %s", cfg.Port)

	// 启动周期处理
	processor.Start()
	log.Printf("Processor started (interval: %s)", cfg.ProcessingInterval())

	if err := webhookNotifier.NotifyServiceStart(cfg.APIBaseURL, cfg.ProcessingInterval()); err != nil {
		log.Printf("Failed to send startup notification: %v", err)
	}

	log.Println("Service is running. Press Ctrl+C to stop.")

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down service...")

	// 清理资源
	processor.Stop()
	if amqpPublisher != nil {
		amqpPublisher.Stop()
	}
	if mqttPublisher != nil {
		mqttPublisher.Disconnect()
	}
	server.Stop()

	log.Println("Service stopped")
}
