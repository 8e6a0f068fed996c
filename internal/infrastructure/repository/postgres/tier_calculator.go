package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
)

// TierCalculator delegates tier classification to the calculate_tier
// database function.
type TierCalculator struct {
	db *sqlx.DB
}

func NewTierCalculator(db *sqlx.DB) *TierCalculator {
	return &TierCalculator{db: db}
}

func (c *TierCalculator) CalculateTier(ctx context.Context, gmv float64) (profile.Tier, error) {
	var raw string
	if err := c.db.GetContext(ctx, &raw, `SELECT calculate_tier($1)::text`, gmv); err != nil {
		return "", fmt.Errorf("calculate tier: %w", err)
	}
	return profile.ParseTier(raw)
}
