// Package action implements the append-only action log repository
// backed by PostgreSQL.
package action

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/oleglomako/chatwarden/internal/adapter/postgres"
	"github.com/oleglomako/chatwarden/internal/domain"
)

const table = "bot_actions"

// builder produces statements with PostgreSQL dollar placeholders.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// schemaStatements create the action log table and its indexes. Every
// statement is idempotent, so EnsureSchema is safe to run on each startup.
// The timestamp columns default to the insertion time on the server, which
// keeps record times monotonic under client clock skew.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS bot_actions (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		chat_id BIGINT NOT NULL,
		action_type VARCHAR(50) NOT NULL,
		action_description TEXT,
		message_text TEXT,
		timestamp TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bot_actions_user_id ON bot_actions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bot_actions_chat_id ON bot_actions(chat_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bot_actions_action_type ON bot_actions(action_type)`,
}

// Repo provides action log persistence. It is append-only: records are
// inserted and aggregated, never updated or deleted.
type Repo struct {
	q postgres.Querier
}

// New creates a new action log repository on top of the given querier.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// EnsureSchema creates the bot_actions table and its indexes if absent.
// It is idempotent. A failure here means auditability cannot be guaranteed,
// so callers treat it as fatal to startup.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return postgres.MapError(err, "action: ensure schema")
		}
	}
	return nil
}

// Record inserts one action log row. The timestamp and created_at columns
// are left to their server-side defaults; the record passed in is validated
// but otherwise stored as-is.
func (r *Repo) Record(ctx context.Context, rec domain.ActionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	sql, args, err := builder.
		Insert(table).
		Columns("user_id", "chat_id", "action_type", "action_description", "message_text").
		Values(rec.UserID, rec.ChatID, string(rec.Type), rec.Description, rec.MessageText).
		ToSql()
	if err != nil {
		return fmt.Errorf("action: build insert: %w", err)
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "action: insert")
	}
	return nil
}

// ChatStats returns the aggregate statistics for one chat. All three
// aggregates are computed by a single statement, so they reflect one
// snapshot of the table.
func (r *Repo) ChatStats(ctx context.Context, chatID int64) (domain.ChatStats, error) {
	sql, args, err := builder.
		Select("COUNT(*) AS total_actions").
		Column(squirrel.Expr(
			"COUNT(*) FILTER (WHERE action_type = ?) AS deleted_messages",
			string(domain.ActionProfanityFilter),
		)).
		Column("COUNT(DISTINCT user_id) AS unique_users").
		From(table).
		Where(squirrel.Eq{"chat_id": chatID}).
		ToSql()
	if err != nil {
		return domain.ChatStats{}, fmt.Errorf("action: build stats query: %w", err)
	}

	var stats domain.ChatStats
	if err := pgxscan.Get(ctx, r.q, &stats, sql, args...); err != nil {
		return domain.ChatStats{}, postgres.MapError(err, "action: chat stats")
	}
	return stats, nil
}
