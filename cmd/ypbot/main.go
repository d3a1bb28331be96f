package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/EgorLis/ypbot/internal/bot"
	"github.com/EgorLis/ypbot/internal/config"
	"github.com/EgorLis/ypbot/internal/dsclient"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ypbot",
	})

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal("config", "err", err)
	}
	logger.SetLevel(cfg.LogLevel)

	client, err := dsclient.New(cfg.Token, logger)
	if err != nil {
		logger.Fatal("discord client", "err", err)
	}

	b := bot.New(bot.Options{Prefix: cfg.Prefix, Trigger: cfg.Trigger}, logger)
	b.UseClient(client)

	if err := b.Start(); err != nil {
		logger.Fatal("start", "err", err)
	}
	defer b.Stop()

	// опционально: прогресс в личку
	if cfg.BroadcastEvery > 0 {
		b.SetBroadcast(cfg.UserID)
		if err := b.StartBroadcast(cfg.BroadcastEvery); err != nil {
			logger.Error("broadcast", "err", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("running… press Ctrl+C to stop", "command", cfg.Prefix+cfg.Trigger)

	<-ctx.Done()
}
