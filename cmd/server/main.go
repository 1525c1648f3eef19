package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/robfig/cron/v3"

	"alerts-backend/internal/api"
	"alerts-backend/internal/config"
	"alerts-backend/internal/detectors"
	"alerts-backend/internal/dispatch"
	"alerts-backend/internal/engine"
	"alerts-backend/internal/kafka"
	"alerts-backend/internal/logging"
	"alerts-backend/internal/stats"
	"alerts-backend/internal/store"
	"alerts-backend/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config load failed:", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatal("Logger init failed:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Errorf("Store connect failed: %v", err)
		log.Fatal("Store connect failed:", err)
	}
	defer st.Close()

	senders := []dispatch.ChannelSender{
		dispatch.NewEmailSender(cfg),
		dispatch.NewWhatsAppSender(cfg),
		dispatch.NewTelegramSender(cfg, logger),
	}
	resolver := dispatch.StaticResolver{
		DefaultPhone:  cfg.WhatsApp.DefaultPhone,
		DefaultChatID: chatID(cfg),
	}
	dispatcher := dispatch.New(st, resolver, senders, cfg.Dispatch.Timeout, logger)

	admission := engine.NewAdmissionFilter(st, cfg.Dedup.Windows)
	eng := engine.New(st, admission, dispatcher, detectors.All(), cfg.Dispatch.Channels, logger)

	hub := ws.NewHub(logger)
	eng.SetBroadcaster(hub)

	// Scheduled check cycles
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Checker.CronSpec, func() {
		if _, err := eng.RunCheckCycle(ctx); err != nil {
			logger.Errorf("Scheduled check cycle failed: %v", err)
		}
	}); err != nil {
		log.Fatal("Invalid CHECK_CRON:", err)
	}
	scheduler.Start()
	logger.Infof("Check cycles scheduled: %s", cfg.Checker.CronSpec)

	// Kafka ingest (optional)
	var consumer *kafka.Consumer
	if cfg.Kafka.Broker != "" {
		consumer = kafka.NewConsumer([]string{cfg.Kafka.Broker}, cfg.Kafka.Topic, cfg.Kafka.GroupID, eng, logger)
		go consumer.Start(ctx)
	}

	agg := stats.New(st, cfg.Stats.SampleSize)
	handler := api.NewHandler(st, logger, eng, agg, hub)
	router := api.NewRouter(handler, logger, cfg)

	go func() {
		logger.Infof("API started on %s", cfg.API.Port)
		if err := router.Run(cfg.API.Port); err != nil {
			logger.Errorf("API run failed: %v", err)
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Infof("Shutting down...")
	cancel()
	scheduler.Stop()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Errorf("Kafka close failed: %v", err)
		}
	}
	logger.Infof("Service stopped")
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.DB.Driver == "postgres" {
		return store.NewPostgres(ctx, cfg.DB.DSN)
	}
	return store.NewMemory(), nil
}

func chatID(cfg config.Config) string {
	if cfg.Telegram.ChatID == 0 {
		return ""
	}
	return strconv.FormatInt(cfg.Telegram.ChatID, 10)
}
