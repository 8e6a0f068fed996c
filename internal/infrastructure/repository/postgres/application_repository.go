package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
	qb "github.com/riskibarqy/creator-hub/internal/platform/querybuilder"
)

type ApplicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create is idempotent per campaign and profile: a repeat returns the first
// application unchanged.
func (r *ApplicationRepository) Create(ctx context.Context, item campaign.Application) (campaign.Application, error) {
	status := strings.TrimSpace(item.Status)
	if status == "" {
		status = campaign.ApplicationStatusSubmitted
	}
	insertModel := applicationInsertModel{
		CampaignID: item.CampaignID,
		ProfileID:  item.ProfileID,
		Pitch:      optionalString(item.Pitch),
		Status:     status,
	}

	query, args, err := qb.InsertModel("campaign_applications", insertModel, `ON CONFLICT (campaign_id, profile_id)
DO UPDATE SET campaign_id = EXCLUDED.campaign_id
RETURNING `+applicationColumns)
	if err != nil {
		return campaign.Application{}, fmt.Errorf("build create application query: %w", err)
	}

	var row applicationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return r.getByCampaignAndProfile(ctx, item.CampaignID, item.ProfileID)
		}
		return campaign.Application{}, fmt.Errorf("create application: %w", err)
	}
	return applicationFromRow(row), nil
}

func (r *ApplicationRepository) ListByProfile(ctx context.Context, profileID string) ([]campaign.Application, error) {
	query, args, err := qb.Select(applicationColumns).
		From("campaign_applications").
		Where(qb.Eq("profile_id", profileID)).
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list applications query: %w", err)
	}

	var rows []applicationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	out := make([]campaign.Application, 0, len(rows))
	for _, row := range rows {
		out = append(out, applicationFromRow(row))
	}
	return out, nil
}

func (r *ApplicationRepository) getByCampaignAndProfile(ctx context.Context, campaignID, profileID string) (campaign.Application, error) {
	query, args, err := qb.Select(applicationColumns).
		From("campaign_applications").
		Where(qb.Eq("campaign_id", campaignID), qb.Eq("profile_id", profileID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return campaign.Application{}, fmt.Errorf("build get application query: %w", err)
	}

	var row applicationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return campaign.Application{}, fmt.Errorf("get application: %w", err)
	}
	return applicationFromRow(row), nil
}
