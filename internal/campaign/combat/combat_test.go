package combat

import (
	"errors"
	"testing"
	"time"
)

func TestStartResetsCounters(t *testing.T) {
	fixedTime := time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC)
	state := State{
		CampaignID:      "camp-1",
		IsActive:        true,
		Round:           4,
		TurnIndex:       2,
		InitiativeOrder: []string{"old-a", "old-b"},
		Enemies:         []Enemy{{ID: "en-1", Name: "Wight", Hp: 20}},
	}

	started, err := Start(state, []string{" A ", "B", "", "C"}, func() time.Time { return fixedTime })
	if err != nil {
		t.Fatalf("start combat: %v", err)
	}

	if !started.IsActive {
		t.Fatal("expected combat to be active")
	}
	if started.Round != 1 || started.TurnIndex != 0 {
		t.Fatalf("expected round=1 turn=0, got round=%d turn=%d", started.Round, started.TurnIndex)
	}
	if len(started.InitiativeOrder) != 3 || started.InitiativeOrder[0] != "A" || started.InitiativeOrder[2] != "C" {
		t.Fatalf("expected replaced initiative order, got %v", started.InitiativeOrder)
	}
	if started.Enemies != nil {
		t.Fatal("expected enemy roster cleared on restart")
	}
}

func TestStartRequiresInitiative(t *testing.T) {
	_, err := Start(Idle("camp-1"), []string{"  ", ""}, nil)
	if !errors.Is(err, ErrEmptyInitiative) {
		t.Fatalf("expected ErrEmptyInitiative, got %v", err)
	}
}

func TestAdvanceTurnWrapsAndIncrementsRound(t *testing.T) {
	state := State{
		CampaignID:      "camp-1",
		IsActive:        true,
		Round:           1,
		TurnIndex:       2,
		InitiativeOrder: []string{"A", "B", "C"},
	}

	advanced, err := AdvanceTurn(state, nil)
	if err != nil {
		t.Fatalf("advance turn: %v", err)
	}
	if advanced.TurnIndex != 0 {
		t.Fatalf("expected turn index 0, got %d", advanced.TurnIndex)
	}
	if advanced.Round != 2 {
		t.Fatalf("expected round 2, got %d", advanced.Round)
	}
}

func TestAdvanceTurnWithinRound(t *testing.T) {
	state := State{
		CampaignID:      "camp-1",
		IsActive:        true,
		Round:           1,
		TurnIndex:       0,
		InitiativeOrder: []string{"A", "B", "C"},
	}

	advanced, err := AdvanceTurn(state, nil)
	if err != nil {
		t.Fatalf("advance turn: %v", err)
	}
	if advanced.TurnIndex != 1 || advanced.Round != 1 {
		t.Fatalf("expected turn=1 round=1, got turn=%d round=%d", advanced.TurnIndex, advanced.Round)
	}
}

func TestTransitionsIllegalWhileIdle(t *testing.T) {
	idle := Idle("camp-1")

	if _, err := AdvanceTurn(idle, nil); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive from advance, got %v", err)
	}
	if _, err := End(idle, nil); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive from end, got %v", err)
	}
	if _, err := SetEnemies(idle, []Enemy{{ID: "en-1"}}, nil); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive from set enemies, got %v", err)
	}
}

func TestEndKeepsCountersAsHistory(t *testing.T) {
	state := State{
		CampaignID:      "camp-1",
		IsActive:        true,
		Round:           3,
		TurnIndex:       1,
		InitiativeOrder: []string{"A", "B"},
	}

	ended, err := End(state, nil)
	if err != nil {
		t.Fatalf("end combat: %v", err)
	}
	if ended.IsActive {
		t.Fatal("expected combat to be idle")
	}
	if ended.Round != 3 || ended.TurnIndex != 1 {
		t.Fatalf("expected counters preserved, got round=%d turn=%d", ended.Round, ended.TurnIndex)
	}
}

func TestSetEnemiesCopiesRoster(t *testing.T) {
	state := State{
		CampaignID:      "camp-1",
		IsActive:        true,
		Round:           1,
		InitiativeOrder: []string{"A"},
	}

	roster := []Enemy{{ID: "en-1", Name: "Wight", Hp: 20}}
	updated, err := SetEnemies(state, roster, nil)
	if err != nil {
		t.Fatalf("set enemies: %v", err)
	}

	roster[0].Hp = 5
	if updated.Enemies[0].Hp != 20 {
		t.Fatal("expected roster to be copied, not aliased")
	}
}
