// Package telegram wires the moderation service into the Telegram Bot API:
// command handlers, the profanity pipeline, callback routing, and membership
// events. It is the only package that talks to the bot framework.
package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/oleglomako/chatwarden/internal/domain"
	"github.com/oleglomako/chatwarden/internal/service/moderation"
)

// Handler holds the per-update handlers and their dependencies.
type Handler struct {
	svc *moderation.Service
	log *slog.Logger
}

// New creates the transport handler set.
func New(svc *moderation.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Options returns the bot options: the default (unmatched-update) handler,
// middleware, and the update types the bot subscribes to.
func (h *Handler) Options() []bot.Option {
	return []bot.Option{
		bot.WithDefaultHandler(h.onUpdate),
		bot.WithMiddlewares(Recover(h.log), LogUpdates(h.log)),
		bot.WithAllowedUpdates([]string{
			"message", "edited_message", "callback_query", "my_chat_member", "chat_member",
		}),
	}
}

// Register attaches the command and callback handlers to the bot.
func (h *Handler) Register(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.onStartHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.onStartHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/rules", bot.MatchTypePrefix, h.onRules)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, h.onStats)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, callbackShowRules, bot.MatchTypeExact, h.onShowRules)
}

// onUpdate dispatches updates no specific handler claimed: plain and edited
// messages go through moderation, unknown callbacks are acknowledged, and
// membership changes of the bot itself trigger the greeting.
func (h *Handler) onUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.Message != nil:
		h.moderateMessage(ctx, b, update.Message)
	case update.EditedMessage != nil:
		h.moderateMessage(ctx, b, update.EditedMessage)
	case update.CallbackQuery != nil:
		h.onUnknownCallback(ctx, b, update.CallbackQuery)
	case update.MyChatMember != nil:
		h.onBotMembershipChange(ctx, b, update.MyChatMember)
	}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (h *Handler) onStartHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            helloText,
		ReplyMarkup:     rulesKeyboard(),
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	})
	if err != nil {
		h.log.ErrorContext(ctx, "send greeting",
			slog.String("error", err.Error()), slog.Int64("chat_id", msg.Chat.ID))
	}

	h.svc.LogAction(ctx, messageRecord(msg, domain.ActionCommand, "вызов команды /start или /help"))
	h.log.InfoContext(ctx, "help requested",
		slog.Int64("user_id", msg.From.ID), slog.Int64("chat_id", msg.Chat.ID))
}

func (h *Handler) onRules(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            rulesText,
		ParseMode:       models.ParseModeHTML,
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	})
	if err != nil {
		h.log.ErrorContext(ctx, "send rules",
			slog.String("error", err.Error()), slog.Int64("chat_id", msg.Chat.ID))
	}

	h.svc.LogAction(ctx, messageRecord(msg, domain.ActionCommand, "запрос правил чата"))
}

func (h *Handler) onStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	member, err := b.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: msg.Chat.ID,
		UserID: msg.From.ID,
	})
	if err != nil {
		h.log.ErrorContext(ctx, "get chat member",
			slog.String("error", err.Error()), slog.Int64("chat_id", msg.Chat.ID))
		h.reply(ctx, b, msg, statsErrorText, "")
		return
	}

	if !isAdmin(member) {
		// A normal branch, not a failure: deny politely, still audit it.
		h.reply(ctx, b, msg, deniedText, "")
		h.svc.LogAction(ctx, messageRecord(msg, domain.ActionCommand, "попытка запроса статистики без прав админа"))
		h.log.InfoContext(ctx, "stats denied",
			slog.Int64("user_id", msg.From.ID), slog.Int64("chat_id", msg.Chat.ID))
		return
	}

	stats, err := h.svc.ChatStats(ctx, msg.Chat.ID)
	if err != nil {
		h.log.ErrorContext(ctx, "fetch chat stats",
			slog.String("error", err.Error()), slog.Int64("chat_id", msg.Chat.ID))
		h.reply(ctx, b, msg, statsErrorText, "")
		return
	}

	h.reply(ctx, b, msg, statsText(stats), models.ParseModeHTML)
	h.svc.LogAction(ctx, messageRecord(msg, domain.ActionCommand, "запрос статистики (админ)"))
}

// ---------------------------------------------------------------------------
// Moderation
// ---------------------------------------------------------------------------

// moderateMessage deletes a message containing prohibited content, posts a
// public warning, and appends an audit record. The record is written after
// the deletion; if the write fails the deletion stands (partial failure is
// accepted, the audit entry is just missing).
func (h *Handler) moderateMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}
	if !h.svc.ContainsProhibited(msg.Text) {
		return
	}

	if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	}); err != nil {
		h.log.ErrorContext(ctx, "delete message",
			slog.String("error", err.Error()),
			slog.Int64("chat_id", msg.Chat.ID),
			slog.Int("message_id", msg.ID),
		)
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      warningText(displayName(msg.From)),
		ParseMode: models.ParseModeHTML,
	}); err != nil {
		h.log.ErrorContext(ctx, "send warning",
			slog.String("error", err.Error()), slog.Int64("chat_id", msg.Chat.ID))
	}

	h.svc.LogAction(ctx, messageRecord(msg, domain.ActionProfanityFilter, "удаление сообщения с нецензурной лексикой"))
	h.log.InfoContext(ctx, "message deleted by profanity filter",
		slog.Int64("user_id", msg.From.ID), slog.Int64("chat_id", msg.Chat.ID))
}

// ---------------------------------------------------------------------------
// Callbacks
// ---------------------------------------------------------------------------

func (h *Handler) onShowRules(ctx context.Context, b *bot.Bot, update *models.Update) {
	q := update.CallbackQuery
	if q == nil || q.Message.Message == nil {
		return
	}
	chatID := q.Message.Message.Chat.ID

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      rulesText,
		ParseMode: models.ParseModeHTML,
	}); err != nil {
		h.log.ErrorContext(ctx, "send rules for callback",
			slog.String("error", err.Error()), slog.Int64("chat_id", chatID))
	}

	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: q.ID,
	}); err != nil {
		h.log.ErrorContext(ctx, "answer callback", slog.String("error", err.Error()))
	}

	// Button callbacks carry no message text.
	h.svc.LogAction(ctx, domain.ActionRecord{
		UserID:      q.From.ID,
		ChatID:      chatID,
		Type:        domain.ActionCallback,
		Description: ptr("запрос правил через кнопку"),
	})
}

// onUnknownCallback acknowledges a button press the bot does not recognize.
// Logged as a warning, not audited.
func (h *Handler) onUnknownCallback(ctx context.Context, b *bot.Bot, q *models.CallbackQuery) {
	h.log.WarnContext(ctx, "unhandled callback query", slog.String("data", q.Data))

	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: q.ID,
		Text:            unknownButtonText,
	}); err != nil {
		h.log.ErrorContext(ctx, "answer callback", slog.String("error", err.Error()))
	}
}

// ---------------------------------------------------------------------------
// Membership
// ---------------------------------------------------------------------------

// onBotMembershipChange greets the chat when the bot itself is added.
func (h *Handler) onBotMembershipChange(ctx context.Context, b *bot.Bot, ev *models.ChatMemberUpdated) {
	wasOut := ev.OldChatMember.Type == models.ChatMemberTypeLeft
	isIn := ev.NewChatMember.Type == models.ChatMemberTypeMember ||
		ev.NewChatMember.Type == models.ChatMemberTypeAdministrator
	if !wasOut || !isIn {
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      ev.Chat.ID,
		Text:        helloText,
		ReplyMarkup: rulesKeyboard(),
	}); err != nil {
		h.log.ErrorContext(ctx, "send greeting on join",
			slog.String("error", err.Error()), slog.Int64("chat_id", ev.Chat.ID))
		return
	}

	h.svc.LogAction(ctx, domain.ActionRecord{
		UserID:      ev.From.ID,
		ChatID:      ev.Chat.ID,
		Type:        domain.ActionBotAdded,
		Description: ptr("бот добавлен в чат"),
	})
	h.log.InfoContext(ctx, "bot added to chat", slog.Int64("chat_id", ev.Chat.ID))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h *Handler) reply(ctx context.Context, b *bot.Bot, msg *models.Message, text string, parseMode models.ParseMode) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            text,
		ParseMode:       parseMode,
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	})
	if err != nil {
		h.log.ErrorContext(ctx, "send reply",
			slog.String("error", err.Error()), slog.Int64("chat_id", msg.Chat.ID))
	}
}

// messageRecord builds an audit record for a message-triggered action.
func messageRecord(msg *models.Message, t domain.ActionType, description string) domain.ActionRecord {
	rec := domain.ActionRecord{
		UserID:      msg.From.ID,
		ChatID:      msg.Chat.ID,
		Type:        t,
		Description: ptr(description),
	}
	if msg.Text != "" {
		rec.MessageText = ptr(msg.Text)
	}
	return rec
}

func isAdmin(member *models.ChatMember) bool {
	if member == nil {
		return false
	}
	return member.Type == models.ChatMemberTypeOwner ||
		member.Type == models.ChatMemberTypeAdministrator
}

// displayName prefers the @username, falling back to the first name.
func displayName(user *models.User) string {
	if user.Username != "" {
		return "@" + user.Username
	}
	return user.FirstName
}

func ptr(s string) *string { return &s }
