package onboarding

import "context"

// DraftStore keeps in-progress wizard sessions between requests.
type DraftStore interface {
	GetWizard(ctx context.Context, userID string) (Wizard, bool, error)
	PutWizard(ctx context.Context, wizard Wizard) error
	DeleteWizard(ctx context.Context, userID string) error
}
