package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/creator-hub/internal/domain/onboarding"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
	"github.com/riskibarqy/creator-hub/internal/platform/debounce"
	"github.com/riskibarqy/creator-hub/internal/platform/logging"
)

const (
	autoSaveTimeout        = 15 * time.Second
	messageSessionRequired = "Sign in again to keep saving your progress."
)

type UpdateDraftInput struct {
	UserID      string
	AccessToken string
	Patch       onboarding.Patch
}

type OnboardingService struct {
	drafts   onboarding.DraftStore
	profiles profile.Repository
	tiers    profile.TierCalculator
	identity IdentityProvider
	autosave *debounce.Debouncer
	logger   *logging.Logger
	metrics  Metrics
	now      func() time.Time

	locks sync.Map
	// saves serializes profile writes per user so they land in revision order.
	saves sync.Map
}

func NewOnboardingService(
	drafts onboarding.DraftStore,
	profiles profile.Repository,
	tiers profile.TierCalculator,
	identity IdentityProvider,
	autosave *debounce.Debouncer,
	logger *logging.Logger,
	metrics Metrics,
) *OnboardingService {
	if logger == nil {
		logger = logging.Default()
	}
	if autosave == nil {
		autosave = debounce.New(time.Second, nil)
	}
	return &OnboardingService{
		drafts:   drafts,
		profiles: profiles,
		tiers:    tiers,
		identity: identity,
		autosave: autosave,
		logger:   logger,
		metrics:  metricsOrNoop(metrics),
		now:      time.Now,
	}
}

// GetWizard returns the stored wizard, or one seeded from the saved profile.
func (s *OnboardingService) GetWizard(ctx context.Context, userID string) (onboarding.Wizard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.GetWizard")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return onboarding.Wizard{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	return s.loadWizard(ctx, userID)
}

// UpdateDraft merges the patch and schedules an auto-save for the result.
func (s *OnboardingService) UpdateDraft(ctx context.Context, input UpdateDraftInput) (onboarding.Wizard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.UpdateDraft")
	defer span.End()

	return s.mutateDraft(ctx, input.UserID, input.AccessToken, func(d onboarding.Draft) (onboarding.Draft, error) {
		if input.Patch.IsZero() {
			return d, errNoChange
		}
		return d.Apply(input.Patch), nil
	})
}

func (s *OnboardingService) AddAccount(ctx context.Context, userID, accessToken string) (onboarding.Wizard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.AddAccount")
	defer span.End()

	return s.mutateDraft(ctx, userID, accessToken, func(d onboarding.Draft) (onboarding.Draft, error) {
		return d.AddTikTokAccount(), nil
	})
}

// RemoveAccount drops an additional account entry. The first entry stays.
func (s *OnboardingService) RemoveAccount(ctx context.Context, userID, accessToken string, index int) (onboarding.Wizard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.RemoveAccount")
	defer span.End()

	return s.mutateDraft(ctx, userID, accessToken, func(d onboarding.Draft) (onboarding.Draft, error) {
		out, ok := d.RemoveTikTokAccount(index)
		if !ok {
			return d, fmt.Errorf("%w: account index %d cannot be removed", ErrInvalidInput, index)
		}
		return out, nil
	})
}

// Next validates the current step and advances, stopping at the last step.
func (s *OnboardingService) Next(ctx context.Context, userID string) (onboarding.Wizard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.Next")
	defer span.End()

	return s.moveStep(ctx, userID, func(w onboarding.Wizard) (onboarding.Step, error) {
		if err := onboarding.ValidateStep(w.Draft, w.Step, s.now()); err != nil {
			return w.Step, fmt.Errorf("validate step %s: %w", w.Step, err)
		}
		return w.Step.Next(), nil
	})
}

func (s *OnboardingService) Back(ctx context.Context, userID string) (onboarding.Wizard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.Back")
	defer span.End()

	return s.moveStep(ctx, userID, func(w onboarding.Wizard) (onboarding.Step, error) {
		return w.Step.Prev(), nil
	})
}

// Complete validates every step and persists synchronously with the profile
// marked complete. A pending auto-save is cancelled first.
func (s *OnboardingService) Complete(ctx context.Context, userID, accessToken string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.Complete")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	unlock := s.lock(userID)
	defer unlock()

	wizard, err := s.loadWizard(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}
	if err := onboarding.ValidateAll(wizard.Draft, s.now()); err != nil {
		return profile.Profile{}, fmt.Errorf("validate wizard: %w", err)
	}

	s.autosave.Cancel(userID)
	if err := s.requireSession(ctx, userID, accessToken); err != nil {
		return profile.Profile{}, err
	}

	unlockSave := lockKey(&s.saves, userID)
	defer unlockSave()

	stored, err := s.persist(ctx, userID, wizard.Draft, true)
	if err != nil {
		now := s.now().UTC()
		wizard.Save = onboarding.SaveStatus{State: onboarding.SaveStateFailed, Error: err.Error(), Generation: wizard.Revision}
		wizard.UpdatedAt = now
		if putErr := s.drafts.PutWizard(ctx, wizard); putErr != nil {
			s.logger.WarnContext(ctx, "store wizard after failed completion failed", "user_id", userID, "error", putErr)
		}
		return profile.Profile{}, err
	}

	if err := s.drafts.DeleteWizard(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "clear completed wizard failed", "user_id", userID, "error", err)
	}
	return stored, nil
}

// FlushAutoSave runs the waiting auto-save for the user immediately.
func (s *OnboardingService) FlushAutoSave(userID string) bool {
	return s.autosave.Flush(strings.TrimSpace(userID))
}

// Close stops scheduling auto-saves and drops the waiting ones.
func (s *OnboardingService) Close() {
	s.autosave.Stop()
}

var errNoChange = errors.New("no draft change")

func (s *OnboardingService) mutateDraft(
	ctx context.Context,
	userID, accessToken string,
	mutate func(onboarding.Draft) (onboarding.Draft, error),
) (onboarding.Wizard, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return onboarding.Wizard{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	unlock := s.lock(userID)
	defer unlock()

	wizard, err := s.loadWizard(ctx, userID)
	if err != nil {
		return onboarding.Wizard{}, err
	}

	draft, err := mutate(wizard.Draft)
	if errors.Is(err, errNoChange) {
		return wizard, nil
	}
	if err != nil {
		return onboarding.Wizard{}, err
	}

	wizard.Draft = draft
	wizard.Revision++
	wizard.Save = onboarding.SaveStatus{State: onboarding.SaveStatePending, Generation: wizard.Revision}
	wizard.UpdatedAt = s.now().UTC()
	if err := s.drafts.PutWizard(ctx, wizard); err != nil {
		return onboarding.Wizard{}, fmt.Errorf("store wizard: %w", err)
	}

	revision := wizard.Revision
	token := strings.TrimSpace(accessToken)
	s.autosave.Schedule(userID, func() {
		s.autoSave(userID, token, revision)
	})
	return wizard, nil
}

func (s *OnboardingService) moveStep(ctx context.Context, userID string, move func(onboarding.Wizard) (onboarding.Step, error)) (onboarding.Wizard, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return onboarding.Wizard{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	unlock := s.lock(userID)
	defer unlock()

	wizard, err := s.loadWizard(ctx, userID)
	if err != nil {
		return onboarding.Wizard{}, err
	}
	step, err := move(wizard)
	if err != nil {
		return wizard, err
	}
	if step == wizard.Step {
		return wizard, nil
	}

	wizard.Step = step
	wizard.UpdatedAt = s.now().UTC()
	if err := s.drafts.PutWizard(ctx, wizard); err != nil {
		return onboarding.Wizard{}, fmt.Errorf("store wizard: %w", err)
	}
	return wizard, nil
}

// autoSave runs on the worker pool once the quiet period for revision ends.
func (s *OnboardingService) autoSave(userID, accessToken string, revision uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), autoSaveTimeout)
	defer cancel()

	wizard, exists, err := s.drafts.GetWizard(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "load wizard for auto-save failed", "user_id", userID, "error", err)
		s.metrics.ObserveAutoSave(AutoSaveOutcomeFailed)
		return
	}
	if !exists || wizard.Revision != revision {
		s.metrics.ObserveAutoSave(AutoSaveOutcomeSuperseded)
		return
	}

	if wizard.Draft.IsEmpty() {
		s.metrics.ObserveAutoSave(AutoSaveOutcomeSkipped)
		s.recordSave(ctx, userID, revision, onboarding.SaveStatus{State: onboarding.SaveStateSkipped})
		return
	}

	if err := s.requireSession(ctx, userID, accessToken); err != nil {
		s.logger.InfoContext(ctx, "auto-save aborted without session", "user_id", userID, "error", err)
		s.metrics.ObserveAutoSave(AutoSaveOutcomeUnauthenticated)
		s.recordSave(ctx, userID, revision, onboarding.SaveStatus{State: onboarding.SaveStateFailed, Error: messageSessionRequired})
		return
	}

	unlockSave := lockKey(&s.saves, userID)
	current, exists, err := s.drafts.GetWizard(ctx, userID)
	if err != nil {
		unlockSave()
		s.logger.WarnContext(ctx, "reload wizard for auto-save failed", "user_id", userID, "error", err)
		s.metrics.ObserveAutoSave(AutoSaveOutcomeFailed)
		return
	}
	if !exists || current.Revision != revision {
		unlockSave()
		s.metrics.ObserveAutoSave(AutoSaveOutcomeSuperseded)
		return
	}
	_, err = s.persist(ctx, userID, current.Draft, false)
	unlockSave()
	if err != nil {
		s.logger.WarnContext(ctx, "auto-save failed", "user_id", userID, "revision", revision, "error", err)
		s.metrics.ObserveAutoSave(AutoSaveOutcomeFailed)
		s.recordSave(ctx, userID, revision, onboarding.SaveStatus{State: onboarding.SaveStateFailed, Error: err.Error()})
		return
	}

	savedAt := s.now().UTC()
	s.metrics.ObserveAutoSave(AutoSaveOutcomeSaved)
	s.recordSave(ctx, userID, revision, onboarding.SaveStatus{State: onboarding.SaveStateSaved, SavedAt: &savedAt})
}

// recordSave stores the outcome unless a newer edit superseded revision.
func (s *OnboardingService) recordSave(ctx context.Context, userID string, revision uint64, status onboarding.SaveStatus) {
	unlock := s.lock(userID)
	defer unlock()

	wizard, exists, err := s.drafts.GetWizard(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "load wizard for save status failed", "user_id", userID, "error", err)
		return
	}
	if !exists || wizard.Revision != revision {
		return
	}

	status.Generation = revision
	wizard.Save = status
	if err := s.drafts.PutWizard(ctx, wizard); err != nil {
		s.logger.WarnContext(ctx, "store save status failed", "user_id", userID, "error", err)
	}
}

// persist upserts the profile fields, then replaces the account list keyed by
// the stored profile ID.
func (s *OnboardingService) persist(ctx context.Context, userID string, draft onboarding.Draft, completed bool) (profile.Profile, error) {
	item := profile.Profile{
		UserID:            userID,
		FirstName:         strings.TrimSpace(draft.Basic.FirstName),
		LastName:          strings.TrimSpace(draft.Basic.LastName),
		DateOfBirth:       strings.TrimSpace(draft.Basic.DateOfBirth),
		About:             strings.TrimSpace(draft.Media.About),
		ProfilePictureURL: draft.Media.ProfilePicture,
		InstagramURL:      draft.Social.Instagram,
		GMVProofURL:       draft.Social.GMVProofURL,
		Completed:         completed,
	}

	if strings.TrimSpace(draft.Social.GMV) != "" {
		gmv, err := onboarding.ParseGMV(draft.Social.GMV)
		if err != nil {
			return profile.Profile{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		tier, err := s.tiers.CalculateTier(ctx, gmv)
		if err != nil {
			return profile.Profile{}, fmt.Errorf("calculate tier: %w", err)
		}
		item.GMV = &gmv
		item.Tier = tier
	}

	stored, err := s.profiles.Upsert(ctx, item)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}

	filled := draft.FilledTikTokAccounts()
	if len(filled) == 0 {
		return stored, nil
	}

	accounts := make([]profile.TikTokAccount, 0, len(filled))
	for _, account := range filled {
		accounts = append(accounts, profile.TikTokAccount{
			ProfileID: stored.ID,
			URL:       account.URL,
			Niche:     account.Niche,
		})
	}
	if err := s.profiles.ReplaceTikTokAccounts(ctx, stored.ID, accounts); err != nil {
		return profile.Profile{}, fmt.Errorf("replace tiktok accounts: %w", err)
	}
	stored.TikTokAccounts = accounts
	return stored, nil
}

// requireSession re-verifies the token captured with the edit.
func (s *OnboardingService) requireSession(ctx context.Context, userID, accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return fmt.Errorf("%w: missing access token", ErrUnauthorized)
	}
	principal, err := s.identity.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		return fmt.Errorf("verify session: %w", err)
	}
	if principal.UserID != userID {
		return fmt.Errorf("%w: session belongs to another user", ErrUnauthorized)
	}
	return nil
}

func (s *OnboardingService) loadWizard(ctx context.Context, userID string) (onboarding.Wizard, error) {
	wizard, exists, err := s.drafts.GetWizard(ctx, userID)
	if err != nil {
		return onboarding.Wizard{}, fmt.Errorf("get wizard: %w", err)
	}
	if exists {
		if !wizard.Step.Valid() {
			wizard.Step = onboarding.FirstStep
		}
		return wizard, nil
	}

	wizard = onboarding.NewWizard(userID, s.now().UTC())
	stored, found, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return onboarding.Wizard{}, fmt.Errorf("get profile: %w", err)
	}
	if found {
		wizard.Draft = draftFromProfile(stored)
	}
	return wizard, nil
}

func (s *OnboardingService) lock(userID string) func() {
	return lockKey(&s.locks, userID)
}

func lockKey(locks *sync.Map, userID string) func() {
	v, _ := locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func draftFromProfile(item profile.Profile) onboarding.Draft {
	draft := onboarding.NewDraft()
	draft.Basic = onboarding.BasicInfo{
		FirstName:   item.FirstName,
		LastName:    item.LastName,
		DateOfBirth: item.DateOfBirth,
	}
	if len(item.TikTokAccounts) > 0 {
		accounts := make([]onboarding.TikTokAccount, 0, len(item.TikTokAccounts))
		for _, account := range item.TikTokAccounts {
			accounts = append(accounts, onboarding.TikTokAccount{URL: account.URL, Niche: account.Niche})
		}
		draft.Social.TikTokAccounts = accounts
	}
	if item.GMV != nil {
		draft.Social.GMV = onboarding.FormatGMV(fmt.Sprintf("%.2f", *item.GMV))
	}
	draft.Social.GMVProofURL = item.GMVProofURL
	draft.Social.Instagram = item.InstagramURL
	draft.Media = onboarding.ProfileMedia{
		ProfilePicture: item.ProfilePictureURL,
		About:          item.About,
	}
	return draft
}
