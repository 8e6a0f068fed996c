package profile

import "context"

// Repository describes profile persistence needs from use cases.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
	// Upsert writes profile-level fields keyed by user ID and returns the
	// stored row including its ID.
	Upsert(ctx context.Context, item Profile) (Profile, error)
	// ReplaceTikTokAccounts swaps the full child account list of a profile.
	ReplaceTikTokAccounts(ctx context.Context, profileID string, accounts []TikTokAccount) error
}
