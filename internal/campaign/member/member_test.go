package member

import (
	"errors"
	"testing"
	"time"
)

func TestJoinNormalizesInput(t *testing.T) {
	fixedTime := time.Date(2026, 4, 2, 18, 30, 0, 0, time.UTC)
	m, err := Join(JoinInput{
		CampaignID: " camp-1 ",
		UserID:     " user-2 ",
		IsDM:       true,
	}, func() time.Time { return fixedTime })
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	if m.CampaignID != "camp-1" {
		t.Fatalf("expected trimmed campaign id, got %q", m.CampaignID)
	}
	if m.UserID != "user-2" {
		t.Fatalf("expected trimmed user id, got %q", m.UserID)
	}
	if !m.IsDM {
		t.Fatal("expected DM flag to be kept")
	}
	if !m.JoinedAt.Equal(fixedTime) {
		t.Fatal("expected joined timestamp to match fixed time")
	}
}

func TestNormalizeJoinInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		input JoinInput
		err   error
	}{
		{
			name:  "empty campaign id",
			input: JoinInput{CampaignID: "  ", UserID: "user-2"},
			err:   ErrEmptyCampaignID,
		},
		{
			name:  "empty user id",
			input: JoinInput{CampaignID: "camp-1", UserID: "  "},
			err:   ErrEmptyUserID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeJoinInput(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}
		})
	}
}
