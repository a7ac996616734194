package service

import (
	"context"
	"errors"
	"testing"

	"github.com/arathel/wardtable/internal/campaign/character"
	"github.com/arathel/wardtable/internal/campaign/policy"
	apperrors "github.com/arathel/wardtable/internal/errors"
	"github.com/arathel/wardtable/internal/event"
)

func TestCreateCharacter(t *testing.T) {
	svc, _, sink := newTestService(t)
	c := seedCampaign(t, svc, "owner-1", "member-1")
	ctx := context.Background()

	ch, err := svc.CreateCharacter(ctx, "member-1", c.ID, CreateCharacterInput{Name: "Vex", Hp: 12, Xp: 3})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if ch.UserID != "member-1" {
		t.Errorf("expected owning user member-1, got %q", ch.UserID)
	}
	if ch.CampaignID != c.ID {
		t.Errorf("expected campaign %s, got %s", c.ID, ch.CampaignID)
	}

	// Owners hold membership by ownership, no row required.
	if _, err := svc.CreateCharacter(ctx, "owner-1", c.ID, CreateCharacterInput{Name: "Keyleth", Hp: 10}); err != nil {
		t.Errorf("expected owner create to succeed, got %v", err)
	}
	if _, err := svc.CreateCharacter(ctx, "stranger", c.ID, CreateCharacterInput{Name: "Grog", Hp: 10}); !errors.Is(err, policy.ErrNotFound) {
		t.Errorf("expected stranger create to be hidden, got %v", err)
	}

	if events := sink.byType(event.TypeCharacterChanged); len(events) != 2 {
		t.Errorf("expected 2 character events, got %d", len(events))
	}
}

func TestCreateCharacterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	c := seedCampaign(t, svc, "owner-1", "member-1")
	ctx := context.Background()

	if _, err := svc.CreateCharacter(ctx, "member-1", c.ID, CreateCharacterInput{Name: "  "}); !errors.Is(err, character.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
	if _, err := svc.CreateCharacter(ctx, "member-1", c.ID, CreateCharacterInput{Name: "Vex", Hp: -1}); !apperrors.IsCode(err, apperrors.CodeCharacterInvalidHp) {
		t.Errorf("expected invalid hp error, got %v", err)
	}
	if _, err := svc.CreateCharacter(ctx, "member-1", c.ID, CreateCharacterInput{Name: "Vex", Xp: -5}); !apperrors.IsCode(err, apperrors.CodeCharacterInvalidXp) {
		t.Errorf("expected invalid xp error, got %v", err)
	}
}

func TestGetAndListCharacters(t *testing.T) {
	svc, _, _ := newTestService(t)
	c := seedCampaign(t, svc, "owner-1", "member-1", "member-2")
	ctx := context.Background()

	ch, err := svc.CreateCharacter(ctx, "member-1", c.ID, CreateCharacterInput{Name: "Vex", Hp: 12})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	// Any member reads any character in the campaign.
	got, err := svc.GetCharacter(ctx, "member-2", c.ID, ch.ID)
	if err != nil {
		t.Fatalf("expected member read to succeed, got %v", err)
	}
	if got.ID != ch.ID {
		t.Errorf("expected character %s, got %s", ch.ID, got.ID)
	}

	if _, err := svc.GetCharacter(ctx, "stranger", c.ID, ch.ID); !errors.Is(err, policy.ErrNotFound) {
		t.Errorf("expected stranger read to be hidden, got %v", err)
	}
	if _, err := svc.GetCharacter(ctx, "member-2", c.ID, "missing"); !errors.Is(err, policy.ErrNotFound) {
		t.Errorf("expected unknown character to report not found, got %v", err)
	}

	list, err := svc.ListCharacters(ctx, "owner-1", c.ID)
	if err != nil {
		t.Fatalf("expected owner list to succeed, got %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 character, got %d", len(list))
	}
}

func TestPatchCharacterState(t *testing.T) {
	svc, _, _ := newTestService(t)
	c := seedCampaign(t, svc, "owner-1", "member-1", "member-2")
	ctx := context.Background()

	ch, err := svc.CreateCharacter(ctx, "member-1", c.ID, CreateCharacterInput{Name: "Vex", Hp: 12})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	hp := 7
	position := "C4"
	updated, err := svc.PatchCharacterState(ctx, "member-1", c.ID, ch.ID, character.StatePatch{Hp: &hp, Position: &position})
	if err != nil {
		t.Fatalf("expected owning user patch to succeed, got %v", err)
	}
	if updated.Hp != 7 || updated.Position != "C4" {
		t.Errorf("unexpected patched state hp=%d position=%q", updated.Hp, updated.Position)
	}
	if updated.UserID != "member-1" {
		t.Errorf("expected owning user unchanged, got %q", updated.UserID)
	}

	// Fellow members see the character but may not write it.
	if _, err := svc.PatchCharacterState(ctx, "member-2", c.ID, ch.ID, character.StatePatch{Hp: &hp}); !errors.Is(err, policy.ErrForbidden) {
		t.Errorf("expected fellow member patch to be forbidden, got %v", err)
	}
	if _, err := svc.PatchCharacterState(ctx, "stranger", c.ID, ch.ID, character.StatePatch{Hp: &hp}); !errors.Is(err, policy.ErrNotFound) {
		t.Errorf("expected stranger patch to be hidden, got %v", err)
	}

	negative := -3
	if _, err := svc.PatchCharacterState(ctx, "member-1", c.ID, ch.ID, character.StatePatch{Hp: &negative}); !apperrors.IsCode(err, apperrors.CodeCharacterInvalidHp) {
		t.Errorf("expected invalid hp error, got %v", err)
	}
}

func TestDeleteCharacter(t *testing.T) {
	svc, _, _ := newTestService(t)
	c := seedCampaign(t, svc, "owner-1", "member-1", "member-2")
	ctx := context.Background()

	ch, err := svc.CreateCharacter(ctx, "member-1", c.ID, CreateCharacterInput{Name: "Vex", Hp: 12})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	if err := svc.DeleteCharacter(ctx, "member-2", c.ID, ch.ID); !errors.Is(err, policy.ErrForbidden) {
		t.Errorf("expected fellow member delete to be forbidden, got %v", err)
	}
	// Campaign ownership does not bypass character ownership.
	if err := svc.DeleteCharacter(ctx, "owner-1", c.ID, ch.ID); !errors.Is(err, policy.ErrForbidden) {
		t.Errorf("expected owner delete to be forbidden, got %v", err)
	}

	if err := svc.DeleteCharacter(ctx, "member-1", c.ID, ch.ID); err != nil {
		t.Fatalf("expected owning user delete to succeed, got %v", err)
	}
	if _, err := svc.GetCharacter(ctx, "member-1", c.ID, ch.ID); !errors.Is(err, policy.ErrNotFound) {
		t.Errorf("expected character gone, got %v", err)
	}
}
