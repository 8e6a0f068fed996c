package dashboard

import (
	"testing"
	"time"

	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	campaigns := []campaign.Campaign{
		{ID: "c1", Name: "Glow Serum", CampaignType: "retainer", Amount: 500, Status: campaign.StatusActive},
		{ID: "c2", Name: "Desk Lamp", CampaignType: "retainer", Amount: 250.5, Status: campaign.StatusClosed},
		{ID: "c3", Name: "Snack Box", CampaignType: "commission", Amount: 999, Status: campaign.StatusOpen},
	}
	deliverables := []campaign.Deliverable{
		{ID: "d1", CampaignID: "c1", DueDate: now.Add(-3 * 24 * time.Hour), Status: campaign.DeliverableStatusPending},
		{ID: "d2", CampaignID: "c3", DueDate: now.Add(5 * 24 * time.Hour), Status: campaign.DeliverableStatusPending},
		{ID: "d3", CampaignID: "c1", DueDate: now.Add(-10 * 24 * time.Hour), Status: campaign.DeliverableStatusOverdue},
		{ID: "d4", CampaignID: "c1", DueDate: now.Add(-1 * time.Hour), Status: campaign.DeliverableStatusCompleted},
	}

	got := Summarize(campaigns, deliverables, now)

	if got.RetainerTotal != 750.5 {
		t.Fatalf("unexpected retainer total: %v", got.RetainerTotal)
	}
	if got.ActiveCampaigns != 2 {
		t.Fatalf("unexpected active campaigns: %d", got.ActiveCampaigns)
	}
	if got.TotalCampaigns != 3 {
		t.Fatalf("unexpected total campaigns: %d", got.TotalCampaigns)
	}
	if len(got.Overdue) != 2 || len(got.Upcoming) != 1 {
		t.Fatalf("unexpected partition sizes: overdue=%d upcoming=%d", len(got.Overdue), len(got.Upcoming))
	}
	if got.Overdue[0].Deliverable.ID != "d3" {
		t.Fatalf("expected most overdue first, got %s", got.Overdue[0].Deliverable.ID)
	}
	if got.Overdue[1].RelativeLabel != "3 days ago" {
		t.Fatalf("unexpected overdue label: %q", got.Overdue[1].RelativeLabel)
	}
	if got.Upcoming[0].RelativeLabel != "5 days from now" {
		t.Fatalf("unexpected upcoming label: %q", got.Upcoming[0].RelativeLabel)
	}
	if got.Upcoming[0].CampaignName != "Snack Box" {
		t.Fatalf("unexpected campaign name: %q", got.Upcoming[0].CampaignName)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	got := Summarize(nil, nil, time.Now())
	if got.RetainerTotal != 0 || got.ActiveCampaigns != 0 {
		t.Fatalf("expected zero summary, got %+v", got)
	}
	if got.Overdue == nil || got.Upcoming == nil {
		t.Fatalf("expected non-nil partitions")
	}
}
