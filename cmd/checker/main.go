// Command checker runs a single check cycle and exits. Intended for
// external schedulers (cron, systemd timers) as an alternative to the
// in-process scheduler of the server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"alerts-backend/internal/config"
	"alerts-backend/internal/detectors"
	"alerts-backend/internal/dispatch"
	"alerts-backend/internal/engine"
	"alerts-backend/internal/logging"
	"alerts-backend/internal/store"
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

	ctx := context.Background()

	var st store.Store
	if cfg.DB.Driver == "postgres" {
		st, err = store.NewPostgres(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Errorf("Store connect failed: %v", err)
			log.Fatal("Store connect failed:", err)
		}
	} else {
		st = store.NewMemory()
	}
	defer st.Close()

	senders := []dispatch.ChannelSender{
		dispatch.NewEmailSender(cfg),
		dispatch.NewWhatsAppSender(cfg),
		dispatch.NewTelegramSender(cfg, logger),
	}
	resolver := dispatch.StaticResolver{DefaultPhone: cfg.WhatsApp.DefaultPhone}
	if cfg.Telegram.ChatID != 0 {
		resolver.DefaultChatID = strconv.FormatInt(cfg.Telegram.ChatID, 10)
	}
	dispatcher := dispatch.New(st, resolver, senders, cfg.Dispatch.Timeout, logger)

	admission := engine.NewAdmissionFilter(st, cfg.Dedup.Windows)
	eng := engine.New(st, admission, dispatcher, detectors.All(), cfg.Dispatch.Channels, logger)

	summary, err := eng.RunCheckCycle(ctx)
	if err != nil {
		logger.Errorf("Check cycle failed: %v", err)
		fmt.Fprintln(os.Stderr, "check cycle failed:", err)
		os.Exit(1)
	}

	fmt.Printf("detected=%d created=%d suppressed=%d detector_errors=%d\n",
		summary.Detected, summary.Created, summary.Suppressed, len(summary.DetectorErrors))
	for name, msg := range summary.DetectorErrors {
		fmt.Printf("  detector %s: %s\n", name, msg)
	}
	if len(summary.Errors) > 0 {
		for _, msg := range summary.Errors {
			fmt.Fprintln(os.Stderr, "  error:", msg)
		}
		os.Exit(1)
	}
}
