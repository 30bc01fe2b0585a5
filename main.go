package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"telegram-prayer-tracker/internal/config"
	"telegram-prayer-tracker/internal/handlers"
	"telegram-prayer-tracker/internal/logger"
	"telegram-prayer-tracker/internal/prayertimes"
	"telegram-prayer-tracker/internal/scheduler"
	"telegram-prayer-tracker/internal/selection"
	"telegram-prayer-tracker/internal/storage"
)

func main() {
	_ = godotenv.Load() // TELEGRAM_BOT_TOKEN etc.

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal("bad timezone", zap.String("tz", cfg.Timezone), zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal("bot init failed", zap.Error(err))
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatal("storage init failed", zap.Error(err))
	}

	sched, err := scheduler.New(loc, log)
	if err != nil {
		log.Fatal("scheduler init failed", zap.Error(err))
	}

	times := prayertimes.New(cfg.CalcMethod, log)
	flow := selection.NewManager()
	h := handlers.New(bot, store, times, sched, flow, log, cfg, loc)

	// Timers are not persisted, only the intent is: re-register every
	// stored reading reminder before accepting traffic.
	records, err := store.Load()
	if err != nil {
		log.Fatal("load records failed", zap.Error(err))
	}
	for chatID, rec := range records {
		at := rec.Reading.ReminderAt
		if at == "" {
			continue
		}
		if err := sched.ScheduleReadingReminder(chatID, at, h.SendReadingReminder); err != nil {
			log.Warn("recover reading reminder failed",
				zap.Int64("chat_id", chatID), zap.String("at", at), zap.Error(err))
		}
	}
	sched.Start()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := bot.GetUpdatesChan(updateConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("prayer tracker started", zap.String("city", cfg.City), zap.String("tz", cfg.Timezone))

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			if err := sched.Shutdown(); err != nil {
				log.Warn("scheduler shutdown error", zap.Error(err))
			}
			_ = store.Close()
			return
		case upd := <-updates:
			h.HandleUpdate(ctx, upd)
		}
	}
}
