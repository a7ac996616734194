package service

import (
	"context"
	"strings"

	"github.com/arathel/wardtable/internal/campaign/policy"
	"github.com/arathel/wardtable/internal/event"
)

// RegisterUserHook runs after the identity provider registers a user.
// Campaign state needs nothing at signup time, so today the hook only
// announces the registration; later provisioning belongs here rather
// than in the identity provider.
func (s *Service) RegisterUserHook(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return policy.ErrUnauthenticated
	}

	s.emit(ctx, func(ctx context.Context) (event.Event, error) {
		return s.emitter.EmitUserRegistered(ctx, userID)
	})
	return nil
}
