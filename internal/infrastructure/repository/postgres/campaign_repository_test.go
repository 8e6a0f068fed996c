package postgres

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
)

const (
	testCampaignA = "7b0c3c1e-3f0a-4d7e-9a4e-2f1d5c6b8a01"
	testCampaignB = "1f6a2d8e-5b4c-4e3a-8f7d-9c0b1a2e3d02"
)

func TestCampaignRepository_ListOpen_SearchAndCategory(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM campaigns WHERE status = $1 AND (brand_name ILIKE $2 OR product_name ILIKE $3) AND category = $4 ORDER BY created_at DESC")).
		WithArgs("open", "%acme%", "%acme%", "Beauty").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "brand_name", "category", "campaign_type", "amount", "status", "created_at", "updated_at"}).
			AddRow(testCampaignA, "Glow", "Acme Corp", "Beauty", "retainer", 1500.0, "open", now, now).
			AddRow(testCampaignB, "Lamp", "Acme Lighting", "Beauty", "commission", nil, "open", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM deliverables WHERE campaign_id IN ($1, $2) ORDER BY due_date, id")).
		WithArgs(testCampaignA, testCampaignB).
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_id", "title", "due_date", "status", "created_at", "updated_at"}).
			AddRow("d1", testCampaignA, "First video", now.Add(48*time.Hour), "pending", now, now))

	items, err := repo.ListOpen(t.Context(), campaign.ListFilter{Search: " acme ", Category: "Beauty"})
	if err != nil {
		t.Fatalf("ListOpen error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 campaigns, got %d", len(items))
	}
	if len(items[0].Deliverables) != 1 || items[0].Deliverables[0].Title != "First video" {
		t.Fatalf("expected nested deliverable, got %+v", items[0].Deliverables)
	}
	if items[1].Deliverables == nil || len(items[1].Deliverables) != 0 {
		t.Fatalf("expected empty deliverables slice, got %+v", items[1].Deliverables)
	}
	if !items[0].IsRetainer() || items[0].Amount != 1500 {
		t.Fatalf("unexpected campaign: %+v", items[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCampaignRepository_ListOpen_NoFiltersSkipsEmptyDeliverableLookup(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM campaigns WHERE status = $1 ORDER BY created_at DESC")).
		WithArgs("open").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	items, err := repo.ListOpen(t.Context(), campaign.ListFilter{Search: "   "})
	if err != nil {
		t.Fatalf("ListOpen error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no campaigns, got %d", len(items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCampaignRepository_GetByID_InvalidIDSkipsQuery(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db)

	_, ok, err := repo.GetByID(t.Context(), "not-a-uuid")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if ok {
		t.Fatalf("expected not found")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestCampaignRepository_ListByProfile(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (profile_id = $1 OR id IN (SELECT campaign_id FROM campaign_applications WHERE profile_id = $2) OR id IN (SELECT campaign_id FROM deliverables WHERE profile_id = $3))")).
		WithArgs("p1", "p1", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "created_at", "updated_at"}).
			AddRow(testCampaignA, "Glow", "active", now, now))

	items, err := repo.ListByProfile(t.Context(), "p1")
	if err != nil {
		t.Fatalf("ListByProfile error: %v", err)
	}
	if len(items) != 1 || !items[0].IsActiveLike() {
		t.Fatalf("unexpected campaigns: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplicationRepository_Create(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO campaign_applications (campaign_id, profile_id, pitch, status) VALUES ($1, $2, $3, $4) ON CONFLICT (campaign_id, profile_id)")).
		WithArgs(testCampaignA, "p1", "I love serums", "submitted").
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_id", "profile_id", "pitch", "status", "created_at"}).
			AddRow("app-1", testCampaignA, "p1", "I love serums", "submitted", now))

	got, err := repo.Create(t.Context(), campaign.Application{CampaignID: testCampaignA, ProfileID: "p1", Pitch: "I love serums"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "app-1" || got.Status != campaign.ApplicationStatusSubmitted {
		t.Fatalf("unexpected application: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTierCalculator(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	calc := NewTierCalculator(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT calculate_tier($1)::text")).
		WithArgs(30000.0).
		WillReturnRows(sqlmock.NewRows([]string{"calculate_tier"}).AddRow("gold"))

	tier, err := calc.CalculateTier(t.Context(), 30000)
	if err != nil {
		t.Fatalf("CalculateTier error: %v", err)
	}
	if tier != "gold" {
		t.Fatalf("unexpected tier: %s", tier)
	}
}
