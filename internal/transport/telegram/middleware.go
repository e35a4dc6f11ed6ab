package telegram

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover returns middleware that recovers from handler panics and logs the
// error with a stack trace. One bad update must never take the polling loop
// down.
func Recover(logger *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					logger.ErrorContext(ctx, "panic recovered",
						slog.Any("error", r),
						slog.String("stack", string(debug.Stack())),
						slog.Int64("update_id", update.ID),
					)
				}
			}()
			next(ctx, b, update)
		}
	}
}

// LogUpdates returns middleware that logs each processed update with its
// kind and handling duration.
func LogUpdates(logger *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()
			next(ctx, b, update)
			logger.DebugContext(ctx, "update handled",
				slog.Int64("update_id", update.ID),
				slog.String("kind", updateKind(update)),
				slog.Duration("duration", time.Since(start)),
			)
		}
	}
}

func updateKind(update *models.Update) string {
	switch {
	case update.Message != nil:
		return "message"
	case update.EditedMessage != nil:
		return "edited_message"
	case update.CallbackQuery != nil:
		return "callback_query"
	case update.MyChatMember != nil:
		return "my_chat_member"
	default:
		return "other"
	}
}
