package authflow

import "context"

// Store keeps sign-in attempts between the request and verify calls.
type Store interface {
	GetFlow(ctx context.Context, attemptID string) (Flow, bool, error)
	PutFlow(ctx context.Context, flow Flow) error
	DeleteFlow(ctx context.Context, attemptID string) error
}
