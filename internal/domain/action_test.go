package domain

import (
	"errors"
	"testing"
)

func TestActionType_IsValid(t *testing.T) {
	tests := []struct {
		actionType ActionType
		want       bool
	}{
		{ActionCommand, true},
		{ActionCallback, true},
		{ActionProfanityFilter, true},
		{ActionBotAdded, true},
		{ActionType(""), false},
		{ActionType("COMMAND"), false}, // stored lowercase, case matters
		{ActionType("spam_filter"), false},
	}

	for _, tt := range tests {
		if got := tt.actionType.IsValid(); got != tt.want {
			t.Errorf("ActionType(%q).IsValid() = %v, want %v", tt.actionType, got, tt.want)
		}
	}
}

func TestActionRecord_Validate(t *testing.T) {
	desc := "test"

	valid := ActionRecord{
		UserID:      42,
		ChatID:      -100123,
		Type:        ActionCommand,
		Description: &desc,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record: unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *ActionRecord)
	}{
		{"zero user_id", func(r *ActionRecord) { r.UserID = 0 }},
		{"zero chat_id", func(r *ActionRecord) { r.ChatID = 0 }},
		{"empty action_type", func(r *ActionRecord) { r.Type = "" }},
		{"unknown action_type", func(r *ActionRecord) { r.Type = "banhammer" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)

			err := rec.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error should wrap ErrValidation, got: %v", err)
			}
		})
	}
}

func TestActionRecord_Validate_NilOptionalFields(t *testing.T) {
	// Description and MessageText are nullable (callbacks carry no text).
	rec := ActionRecord{UserID: 1, ChatID: 2, Type: ActionCallback}
	if err := rec.Validate(); err != nil {
		t.Fatalf("record with nil optional fields should be valid, got: %v", err)
	}
}
