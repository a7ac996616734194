package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/arathel/wardtable/internal/campaign"
	"github.com/arathel/wardtable/internal/campaign/character"
	"github.com/arathel/wardtable/internal/campaign/combat"
	"github.com/arathel/wardtable/internal/campaign/member"
	"github.com/arathel/wardtable/internal/event"
	"github.com/arathel/wardtable/internal/storage"
)

// fakeStores is an in-memory implementation of every store interface,
// mirroring the uniqueness and cascade behavior of the SQLite store.
type fakeStores struct {
	mu          sync.Mutex
	campaigns   map[string]campaign.Campaign
	memberships map[string]member.Membership
	characters  map[string]character.Character
	combats     map[string]combat.State
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		campaigns:   make(map[string]campaign.Campaign),
		memberships: make(map[string]member.Membership),
		characters:  make(map[string]character.Character),
		combats:     make(map[string]combat.State),
	}
}

func scopedKey(campaignID, id string) string {
	return campaignID + "/" + id
}

func (f *fakeStores) PutCampaign(_ context.Context, c campaign.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeStores) GetCampaign(_ context.Context, id string) (campaign.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return campaign.Campaign{}, storage.ErrNotFound
	}
	return c, nil
}

func (f *fakeStores) GetCampaignByInviteCode(_ context.Context, code string) (campaign.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.campaigns {
		if c.InviteCode == code && c.IsActive {
			return c, nil
		}
	}
	return campaign.Campaign{}, storage.ErrNotFound
}

func (f *fakeStores) ListCampaignsForUser(_ context.Context, userID string) ([]campaign.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []campaign.Campaign
	for _, c := range f.campaigns {
		if c.OwnerID == userID {
			out = append(out, c)
			continue
		}
		if _, ok := f.memberships[scopedKey(c.ID, userID)]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStores) DeleteCampaign(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.campaigns[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.campaigns, id)
	for key, m := range f.memberships {
		if m.CampaignID == id {
			delete(f.memberships, key)
		}
	}
	for key, ch := range f.characters {
		if ch.CampaignID == id {
			delete(f.characters, key)
		}
	}
	delete(f.combats, id)
	return nil
}

func (f *fakeStores) PutMembership(_ context.Context, m member.Membership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := scopedKey(m.CampaignID, m.UserID)
	if _, ok := f.memberships[key]; ok {
		return storage.ErrAlreadyExists
	}
	f.memberships[key] = m
	return nil
}

func (f *fakeStores) GetMembership(_ context.Context, campaignID, userID string) (member.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.memberships[scopedKey(campaignID, userID)]
	if !ok {
		return member.Membership{}, storage.ErrNotFound
	}
	return m, nil
}

func (f *fakeStores) ListMemberships(_ context.Context, campaignID string) ([]member.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []member.Membership
	for _, m := range f.memberships {
		if m.CampaignID == campaignID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStores) DeleteMembership(_ context.Context, campaignID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := scopedKey(campaignID, userID)
	if _, ok := f.memberships[key]; !ok {
		return storage.ErrNotFound
	}
	delete(f.memberships, key)
	return nil
}

func (f *fakeStores) PutCharacter(_ context.Context, ch character.Character) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.characters[scopedKey(ch.CampaignID, ch.ID)] = ch
	return nil
}

func (f *fakeStores) GetCharacter(_ context.Context, campaignID, characterID string) (character.Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.characters[scopedKey(campaignID, characterID)]
	if !ok {
		return character.Character{}, storage.ErrNotFound
	}
	return ch, nil
}

func (f *fakeStores) ListCharacters(_ context.Context, campaignID string) ([]character.Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []character.Character
	for _, ch := range f.characters {
		if ch.CampaignID == campaignID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakeStores) DeleteCharacter(_ context.Context, campaignID, characterID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := scopedKey(campaignID, characterID)
	if _, ok := f.characters[key]; !ok {
		return storage.ErrNotFound
	}
	delete(f.characters, key)
	return nil
}

func (f *fakeStores) GetCombatState(_ context.Context, campaignID string) (combat.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state, ok := f.combats[campaignID]
	if !ok {
		return combat.State{}, storage.ErrNotFound
	}
	return state, nil
}

func (f *fakeStores) SwapCombatState(_ context.Context, prior, next combat.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.combats[next.CampaignID]
	if !ok {
		stored = combat.Idle(next.CampaignID)
	}
	if stored.IsActive != prior.IsActive || stored.Round != prior.Round || stored.TurnIndex != prior.TurnIndex {
		return storage.ErrStaleState
	}
	f.combats[next.CampaignID] = next
	return nil
}

// recordSink captures emitted events for assertions.
type recordSink struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recordSink) Emit(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recordSink) byType(eventType event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, evt := range r.events {
		if evt.Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
}

func sequenceIDs() func() (string, error) {
	var n int
	var mu sync.Mutex
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n), nil
	}
}

func newTestService(t *testing.T, opts ...Option) (*Service, *fakeStores, *recordSink) {
	t.Helper()
	stores := newFakeStores()
	sink := &recordSink{}
	svc := New(Stores{
		Campaign:   stores,
		Membership: stores,
		Character:  stores,
		Combat:     stores,
	}, event.NewEmitter(sink), opts...)
	svc.clock = fixedClock
	svc.idGenerator = sequenceIDs()
	return svc, stores, sink
}

// seedCampaign creates a campaign and optionally joins extra members.
func seedCampaign(t *testing.T, svc *Service, ownerID string, memberIDs ...string) campaign.Campaign {
	t.Helper()
	ctx := context.Background()

	c, err := svc.CreateCampaign(ctx, ownerID, "The Sunken Keep")
	if err != nil {
		t.Fatalf("expected campaign creation to succeed, got %v", err)
	}
	for _, userID := range memberIDs {
		if _, err := svc.JoinCampaign(ctx, userID, JoinCampaignInput{InviteCode: c.InviteCode}); err != nil {
			t.Fatalf("expected %s to join, got %v", userID, err)
		}
	}
	return c
}

// grantDM sets the DM flag on an existing membership row.
func grantDM(t *testing.T, stores *fakeStores, campaignID, userID string) {
	t.Helper()
	stores.mu.Lock()
	defer stores.mu.Unlock()
	key := scopedKey(campaignID, userID)
	m, ok := stores.memberships[key]
	if !ok {
		t.Fatalf("expected membership for %s", userID)
	}
	m.IsDM = true
	stores.memberships[key] = m
}
