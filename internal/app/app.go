// Package app assembles the bot: configuration, logging, storage, the
// profanity filter, and the Telegram transport.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"

	"github.com/oleglomako/chatwarden/internal/adapter/postgres"
	"github.com/oleglomako/chatwarden/internal/adapter/postgres/action"
	"github.com/oleglomako/chatwarden/internal/config"
	"github.com/oleglomako/chatwarden/internal/filter"
	"github.com/oleglomako/chatwarden/internal/service/moderation"
	"github.com/oleglomako/chatwarden/internal/transport/telegram"
)

// Run is the application entry point. Every returned error is fatal: the bot
// refuses to start without valid configuration, a reachable database, and a
// created schema, because it cannot guarantee auditability otherwise. Run
// blocks polling for updates until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting chatwarden",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	actions := action.New(pool)
	if err := actions.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("action log schema ensured")

	profanity, err := filter.New(filter.DefaultStems)
	if err != nil {
		return fmt.Errorf("build profanity filter: %w", err)
	}

	svc := moderation.NewService(profanity, actions, logger)
	handler := telegram.New(svc, logger)

	b, err := bot.New(cfg.Bot.Token, handler.Options()...)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	handler.Register(b)

	logger.Info("bot started, polling for updates")
	b.Start(ctx)
	logger.Info("bot stopped")

	return nil
}
