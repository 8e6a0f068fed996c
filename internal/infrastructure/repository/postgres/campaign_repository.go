package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
	"github.com/riskibarqy/creator-hub/internal/platform/id"
	qb "github.com/riskibarqy/creator-hub/internal/platform/querybuilder"
)

type CampaignRepository struct {
	db *sqlx.DB
}

func NewCampaignRepository(db *sqlx.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) ListOpen(ctx context.Context, filter campaign.ListFilter) ([]campaign.Campaign, error) {
	conditions := []qb.Condition{qb.Eq("status", campaign.StatusOpen)}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, qb.Or(
			qb.ILike("brand_name", search),
			qb.ILike("product_name", search),
		))
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		conditions = append(conditions, qb.Eq("category", category))
	}

	query, args, err := qb.Select(campaignColumns).
		From("campaigns").
		Where(conditions...).
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list open campaigns query: %w", err)
	}

	var rows []campaignTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list open campaigns: %w", err)
	}

	items := make([]campaign.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, campaignFromRow(row))
	}
	if err := r.attachDeliverables(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, campaignID string) (campaign.Campaign, bool, error) {
	// ids are uuid columns; anything else can never match.
	if !id.Valid(campaignID) {
		return campaign.Campaign{}, false, nil
	}

	query, args, err := qb.Select(campaignColumns).
		From("campaigns").
		Where(qb.Eq("id", campaignID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return campaign.Campaign{}, false, fmt.Errorf("build get campaign query: %w", err)
	}

	var row campaignTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return campaign.Campaign{}, false, nil
		}
		return campaign.Campaign{}, false, fmt.Errorf("get campaign by id: %w", err)
	}

	items := []campaign.Campaign{campaignFromRow(row)}
	if err := r.attachDeliverables(ctx, items); err != nil {
		return campaign.Campaign{}, false, err
	}
	return items[0], true, nil
}

// ListByProfile returns campaigns the profile owns, applied to, or holds
// deliverables for.
func (r *CampaignRepository) ListByProfile(ctx context.Context, profileID string) ([]campaign.Campaign, error) {
	query, args, err := qb.Select(campaignColumns).
		From("campaigns").
		Where(qb.Or(
			qb.Eq("profile_id", profileID),
			qb.Expr("id IN (SELECT campaign_id FROM campaign_applications WHERE profile_id = ?)", profileID),
			qb.Expr("id IN (SELECT campaign_id FROM deliverables WHERE profile_id = ?)", profileID),
		)).
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list campaigns by profile query: %w", err)
	}

	var rows []campaignTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list campaigns by profile: %w", err)
	}

	items := make([]campaign.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, campaignFromRow(row))
	}
	return items, nil
}

func (r *CampaignRepository) ListDeliverablesByProfile(ctx context.Context, profileID string) ([]campaign.Deliverable, error) {
	query, args, err := qb.Select(deliverableColumns).
		From("deliverables").
		Where(qb.Eq("profile_id", profileID)).
		OrderBy("due_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list deliverables by profile query: %w", err)
	}

	var rows []deliverableTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list deliverables by profile: %w", err)
	}

	out := make([]campaign.Deliverable, 0, len(rows))
	for _, row := range rows {
		out = append(out, deliverableFromRow(row))
	}
	return out, nil
}

func (r *CampaignRepository) attachDeliverables(ctx context.Context, items []campaign.Campaign) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(items))
	index := make(map[string]int, len(items))
	for i, item := range items {
		ids = append(ids, item.ID)
		index[item.ID] = i
		items[i].Deliverables = make([]campaign.Deliverable, 0)
	}

	query, args, err := qb.Select(deliverableColumns).
		From("deliverables").
		Where(qb.InStrings("campaign_id", ids)).
		OrderBy("due_date", "id").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build list campaign deliverables query: %w", err)
	}

	var rows []deliverableTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return fmt.Errorf("list campaign deliverables: %w", err)
	}

	for _, row := range rows {
		i, ok := index[row.CampaignID]
		if !ok {
			continue
		}
		items[i].Deliverables = append(items[i].Deliverables, deliverableFromRow(row))
	}
	return nil
}
