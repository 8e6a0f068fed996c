package campaign

import "context"

// ListFilter narrows the open-campaign catalog. An empty Category disables
// the category filter.
type ListFilter struct {
	Search   string
	Category string
}

// Repository describes campaign persistence needs from use cases.
type Repository interface {
	ListOpen(ctx context.Context, filter ListFilter) ([]Campaign, error)
	GetByID(ctx context.Context, campaignID string) (Campaign, bool, error)
	ListByProfile(ctx context.Context, profileID string) ([]Campaign, error)
	ListDeliverablesByProfile(ctx context.Context, profileID string) ([]Deliverable, error)
}

// ApplicationRepository persists campaign applications.
type ApplicationRepository interface {
	// Create inserts the application or returns the existing one for the same
	// campaign and profile.
	Create(ctx context.Context, item Application) (Application, error)
	ListByProfile(ctx context.Context, profileID string) ([]Application, error)
}
