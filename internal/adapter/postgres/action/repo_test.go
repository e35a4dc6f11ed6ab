package action_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleglomako/chatwarden/internal/adapter/postgres/action"
	"github.com/oleglomako/chatwarden/internal/domain"
)

func newRepo(t *testing.T) (*action.Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return action.New(mock), mock
}

func expectSchema(mock pgxmock.PgxPoolIface) {
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS bot_actions`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_bot_actions_user_id`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_bot_actions_chat_id`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_bot_actions_action_type`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
}

func ptr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// EnsureSchema
// ---------------------------------------------------------------------------

func TestRepo_EnsureSchema(t *testing.T) {
	repo, mock := newRepo(t)
	expectSchema(mock)

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_EnsureSchema_Idempotent(t *testing.T) {
	repo, mock := newRepo(t)
	expectSchema(mock)
	expectSchema(mock)

	// IF NOT EXISTS makes a second run a no-op; both calls must succeed.
	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_EnsureSchema_Failure(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS bot_actions`).
		WillReturnError(&pgconn.PgError{Code: "08006", Message: "connection lost"})

	err := repo.EnsureSchema(context.Background())
	require.ErrorIs(t, err, domain.ErrUnavailable)
}

// ---------------------------------------------------------------------------
// Record
// ---------------------------------------------------------------------------

func TestRepo_Record(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`INSERT INTO bot_actions`).
		WithArgs(int64(1), int64(100), "profanity_filter", ptr("удаление сообщения"), ptr("ты мудак")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec := domain.ActionRecord{
		UserID:      1,
		ChatID:      100,
		Type:        domain.ActionProfanityFilter,
		Description: ptr("удаление сообщения"),
		MessageText: ptr("ты мудак"),
	}
	require.NoError(t, repo.Record(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Record_NilOptionalColumns(t *testing.T) {
	repo, mock := newRepo(t)

	// Callbacks carry no message text; both nullable columns stay NULL.
	mock.ExpectExec(`INSERT INTO bot_actions`).
		WithArgs(int64(7), int64(-100200), "callback", (*string)(nil), (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec := domain.ActionRecord{UserID: 7, ChatID: -100200, Type: domain.ActionCallback}
	require.NoError(t, repo.Record(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Record_InvalidRecord(t *testing.T) {
	repo, mock := newRepo(t)

	tests := []struct {
		name string
		rec  domain.ActionRecord
	}{
		{"zero user", domain.ActionRecord{ChatID: 1, Type: domain.ActionCommand}},
		{"zero chat", domain.ActionRecord{UserID: 1, Type: domain.ActionCommand}},
		{"bad type", domain.ActionRecord{UserID: 1, ChatID: 1, Type: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Record(context.Background(), tt.rec)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	// Validation happens before the database is touched.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Record_StorageError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`INSERT INTO bot_actions`).
		WithArgs(int64(1), int64(100), "command", (*string)(nil), (*string)(nil)).
		WillReturnError(&pgconn.PgError{Code: "08006", Message: "server closed the connection"})

	rec := domain.ActionRecord{UserID: 1, ChatID: 100, Type: domain.ActionCommand}
	err := repo.Record(context.Background(), rec)
	require.ErrorIs(t, err, domain.ErrUnavailable)
}

// ---------------------------------------------------------------------------
// ChatStats
// ---------------------------------------------------------------------------

func TestRepo_ChatStats(t *testing.T) {
	repo, mock := newRepo(t)

	rows := pgxmock.NewRows([]string{"total_actions", "deleted_messages", "unique_users"}).
		AddRow(int64(3), int64(1), int64(2))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("profanity_filter", int64(100)).
		WillReturnRows(rows)

	stats, err := repo.ChatStats(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalActions)
	assert.Equal(t, int64(1), stats.DeletedMessages)
	assert.Equal(t, int64(2), stats.UniqueUsers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ChatStats_EmptyChat(t *testing.T) {
	repo, mock := newRepo(t)

	// Aggregates over zero rows still produce one row of zeros.
	rows := pgxmock.NewRows([]string{"total_actions", "deleted_messages", "unique_users"}).
		AddRow(int64(0), int64(0), int64(0))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("profanity_filter", int64(42)).
		WillReturnRows(rows)

	stats, err := repo.ChatStats(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.ChatStats{}, stats)
}

func TestRepo_ChatStats_StorageError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("profanity_filter", int64(100)).
		WillReturnError(&pgconn.PgError{Code: "08003", Message: "connection does not exist"})

	_, err := repo.ChatStats(context.Background(), 100)
	require.ErrorIs(t, err, domain.ErrUnavailable)
}
