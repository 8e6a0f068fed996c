package statestore

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/creator-hub/internal/domain/authflow"
	"github.com/riskibarqy/creator-hub/internal/domain/onboarding"
)

const (
	wizardPrefix   = "wizard:"
	authFlowPrefix = "authflow:"
)

type backend interface {
	get(ctx context.Context, key string) ([]byte, bool, error)
	set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	del(ctx context.Context, key string) error
}

// Store keeps wizard drafts and sign-in attempts as JSON documents with a
// sliding TTL. It satisfies onboarding.DraftStore and authflow.Store.
type Store struct {
	backend backend
	ttl     time.Duration
}

func (s *Store) GetWizard(ctx context.Context, userID string) (onboarding.Wizard, bool, error) {
	var out onboarding.Wizard
	ok, err := s.load(ctx, wizardPrefix+userID, &out)
	if err != nil || !ok {
		return onboarding.Wizard{}, ok, err
	}
	return out, true, nil
}

func (s *Store) PutWizard(ctx context.Context, wizard onboarding.Wizard) error {
	return s.save(ctx, wizardPrefix+wizard.UserID, wizard)
}

func (s *Store) DeleteWizard(ctx context.Context, userID string) error {
	if err := s.backend.del(ctx, wizardPrefix+userID); err != nil {
		return crerr.Wrapf(err, "delete wizard %s", userID)
	}
	return nil
}

func (s *Store) GetFlow(ctx context.Context, attemptID string) (authflow.Flow, bool, error) {
	var out authflow.Flow
	ok, err := s.load(ctx, authFlowPrefix+attemptID, &out)
	if err != nil || !ok {
		return authflow.Flow{}, ok, err
	}
	return out, true, nil
}

func (s *Store) PutFlow(ctx context.Context, flow authflow.Flow) error {
	return s.save(ctx, authFlowPrefix+flow.AttemptID, flow)
}

func (s *Store) DeleteFlow(ctx context.Context, attemptID string) error {
	if err := s.backend.del(ctx, authFlowPrefix+attemptID); err != nil {
		return crerr.Wrapf(err, "delete auth flow %s", attemptID)
	}
	return nil
}

func (s *Store) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.backend.get(ctx, key)
	if err != nil {
		return false, crerr.Wrapf(err, "get state %s", key)
	}
	if !ok {
		return false, nil
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return false, crerr.Wrapf(err, "decode state %s", key)
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, value any) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return crerr.Wrapf(err, "encode state %s", key)
	}
	if err := s.backend.set(ctx, key, raw, s.ttl); err != nil {
		return crerr.Wrapf(err, "put state %s", key)
	}
	return nil
}
