package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/creator-hub/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo campaign catalog into an empty campaigns table.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM campaigns`); err != nil {
		return fmt.Errorf("count campaigns for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range memory.SeedCampaigns() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO campaigns (id, name, brand_name, product_name, category, platform, campaign_type, amount,
    base_commission, commission_boost, retainer_min, retainer_max, gmv_target, videos_per_day,
    campaign_duration_days, free_samples, prizes, status, created_at, updated_at)
VALUES (:id, :name, :brand_name, :product_name, :category, :platform, :campaign_type, :amount,
    :base_commission, :commission_boost, :retainer_min, :retainer_max, :gmv_target, :videos_per_day,
    :campaign_duration_days, :free_samples, :prizes, :status, :created_at, :updated_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":                     c.ID,
			"name":                   c.Name,
			"brand_name":             c.BrandName,
			"product_name":           c.ProductName,
			"category":               c.Category,
			"platform":               c.Platform,
			"campaign_type":          c.CampaignType,
			"amount":                 c.Amount,
			"base_commission":        c.BaseCommission,
			"commission_boost":       c.CommissionBoost,
			"retainer_min":           c.RetainerMin,
			"retainer_max":           c.RetainerMax,
			"gmv_target":             pq.Float64Array(c.GMVTarget),
			"videos_per_day":         c.VideosPerDay,
			"campaign_duration_days": c.CampaignDurationDays,
			"free_samples":           c.FreeSamples,
			"prizes":                 c.Prizes,
			"status":                 c.Status,
			"created_at":             c.CreatedAt,
			"updated_at":             c.UpdatedAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed campaign %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed campaign %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
