// Package moderation contains the chat moderation service: content
// classification, best-effort audit logging, and chat statistics.
package moderation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oleglomako/chatwarden/internal/domain"
)

// Classifier decides whether a text contains prohibited content. The regex
// filter implements it today; the matching strategy can be swapped (trie,
// external classifier) without touching any caller.
type Classifier interface {
	ContainsProhibited(text string) bool
}

// ActionStore is the persistence the service needs from the action log.
type ActionStore interface {
	Record(ctx context.Context, rec domain.ActionRecord) error
	ChatStats(ctx context.Context, chatID int64) (domain.ChatStats, error)
}

// Service wires the classifier and the action store for the transport layer.
type Service struct {
	classifier Classifier
	store      ActionStore
	log        *slog.Logger
}

// NewService creates the moderation service. All dependencies are injected;
// the service holds no global state.
func NewService(classifier Classifier, store ActionStore, log *slog.Logger) *Service {
	return &Service{classifier: classifier, store: store, log: log}
}

// ContainsProhibited reports whether the text must be moderated.
// Absent text is never prohibited.
func (s *Service) ContainsProhibited(text string) bool {
	if text == "" {
		return false
	}
	return s.classifier.ContainsProhibited(text)
}

// LogAction appends rec to the audit log, best-effort. A storage failure is
// logged and swallowed: losing one audit entry is tolerable, crashing the
// update loop is not. The moderation side effect the record describes has
// already happened and is never rolled back.
func (s *Service) LogAction(ctx context.Context, rec domain.ActionRecord) {
	if err := s.store.Record(ctx, rec); err != nil {
		s.log.WarnContext(ctx, "audit record dropped",
			slog.String("error", err.Error()),
			slog.String("action_type", rec.Type.String()),
			slog.Int64("chat_id", rec.ChatID),
			slog.Int64("user_id", rec.UserID),
		)
	}
}

// ChatStats returns the aggregate statistics for one chat. Errors are
// returned to the caller, which degrades its own user-facing response.
func (s *Service) ChatStats(ctx context.Context, chatID int64) (domain.ChatStats, error) {
	stats, err := s.store.ChatStats(ctx, chatID)
	if err != nil {
		return domain.ChatStats{}, fmt.Errorf("chat %d stats: %w", chatID, err)
	}
	return stats, nil
}
