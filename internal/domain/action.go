package domain

import "time"

// ActionType identifies the kind of bot action stored in the audit log.
type ActionType string

const (
	ActionCommand         ActionType = "command"
	ActionCallback        ActionType = "callback"
	ActionProfanityFilter ActionType = "profanity_filter"
	ActionBotAdded        ActionType = "bot_added"
)

func (t ActionType) String() string { return string(t) }

func (t ActionType) IsValid() bool {
	switch t {
	case ActionCommand, ActionCallback, ActionProfanityFilter, ActionBotAdded:
		return true
	}
	return false
}

// ActionRecord is one durable audit log entry describing a bot-initiated or
// user-triggered action. Records are append-only: once written they are never
// updated or deleted. ID, Timestamp, and CreatedAt are assigned by storage.
type ActionRecord struct {
	ID          int64      `db:"id"`
	UserID      int64      `db:"user_id"`
	ChatID      int64      `db:"chat_id"`
	Type        ActionType `db:"action_type"`
	Description *string    `db:"action_description"`
	MessageText *string    `db:"message_text"`
	Timestamp   time.Time  `db:"timestamp"`
	CreatedAt   time.Time  `db:"created_at"`
}

// Validate checks the fields the caller is responsible for.
// Storage-assigned fields (ID, timestamps) are not checked.
func (r ActionRecord) Validate() error {
	if r.UserID == 0 {
		return NewValidationError("user_id", "is required")
	}
	if r.ChatID == 0 {
		return NewValidationError("chat_id", "is required")
	}
	if !r.Type.IsValid() {
		return NewValidationError("action_type", "unknown action type "+string(r.Type))
	}
	return nil
}

// ChatStats is a point-in-time aggregate over ActionRecords for one chat.
// It is recomputed on each request and never persisted.
type ChatStats struct {
	TotalActions    int64 `db:"total_actions"`
	DeletedMessages int64 `db:"deleted_messages"`
	UniqueUsers     int64 `db:"unique_users"`
}
