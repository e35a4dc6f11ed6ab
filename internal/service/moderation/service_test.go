package moderation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/oleglomako/chatwarden/internal/domain"
)

type fakeClassifier struct {
	called bool
	result bool
}

func (f *fakeClassifier) ContainsProhibited(string) bool {
	f.called = true
	return f.result
}

type fakeStore struct {
	recorded  []domain.ActionRecord
	recordErr error
	stats     domain.ChatStats
	statsErr  error
}

func (f *fakeStore) Record(_ context.Context, rec domain.ActionRecord) error {
	f.recorded = append(f.recorded, rec)
	return f.recordErr
}

func (f *fakeStore) ChatStats(context.Context, int64) (domain.ChatStats, error) {
	return f.stats, f.statsErr
}

func newService(classifier *fakeClassifier, store *fakeStore) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(classifier, store, log)
}

func TestService_ContainsProhibited_EmptySkipsClassifier(t *testing.T) {
	classifier := &fakeClassifier{result: true}
	svc := newService(classifier, &fakeStore{})

	if svc.ContainsProhibited("") {
		t.Error("empty text must never be prohibited")
	}
	if classifier.called {
		t.Error("classifier should not be consulted for empty text")
	}
}

func TestService_ContainsProhibited_Delegates(t *testing.T) {
	classifier := &fakeClassifier{result: true}
	svc := newService(classifier, &fakeStore{})

	if !svc.ContainsProhibited("ты мудак") {
		t.Error("expected classifier result to pass through")
	}
	if !classifier.called {
		t.Error("classifier should have been consulted")
	}
}

func TestService_LogAction_SwallowsStorageError(t *testing.T) {
	store := &fakeStore{recordErr: domain.ErrUnavailable}
	svc := newService(&fakeClassifier{}, store)

	rec := domain.ActionRecord{UserID: 1, ChatID: 100, Type: domain.ActionCommand}
	// Must not panic or propagate: the update loop keeps running even when
	// an audit write is lost.
	svc.LogAction(context.Background(), rec)

	if len(store.recorded) != 1 {
		t.Fatalf("store should have been called once, got %d", len(store.recorded))
	}
}

func TestService_LogAction_PassesRecordThrough(t *testing.T) {
	store := &fakeStore{}
	svc := newService(&fakeClassifier{}, store)

	text := "hi"
	rec := domain.ActionRecord{
		UserID:      5,
		ChatID:      -100,
		Type:        domain.ActionProfanityFilter,
		MessageText: &text,
	}
	svc.LogAction(context.Background(), rec)

	if len(store.recorded) != 1 {
		t.Fatalf("expected 1 record, got %d", len(store.recorded))
	}
	got := store.recorded[0]
	if got.UserID != 5 || got.ChatID != -100 || got.Type != domain.ActionProfanityFilter {
		t.Errorf("record mangled: %+v", got)
	}
	if got.MessageText == nil || *got.MessageText != "hi" {
		t.Errorf("message text mangled: %v", got.MessageText)
	}
}

func TestService_ChatStats(t *testing.T) {
	store := &fakeStore{stats: domain.ChatStats{TotalActions: 3, DeletedMessages: 1, UniqueUsers: 2}}
	svc := newService(&fakeClassifier{}, store)

	stats, err := svc.ChatStats(context.Background(), 100)
	if err != nil {
		t.Fatalf("ChatStats: %v", err)
	}
	if stats.TotalActions != 3 || stats.DeletedMessages != 1 || stats.UniqueUsers != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestService_ChatStats_PropagatesError(t *testing.T) {
	store := &fakeStore{statsErr: domain.ErrUnavailable}
	svc := newService(&fakeClassifier{}, store)

	_, err := svc.ChatStats(context.Background(), 100)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got: %v", err)
	}
}
