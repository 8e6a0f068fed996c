package dashboard

import (
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
)

// DeliverableItem is a deliverable with its relative due label.
type DeliverableItem struct {
	Deliverable   campaign.Deliverable
	CampaignName  string
	RelativeLabel string
}

// Summary is derived on every fetch and never persisted.
type Summary struct {
	RetainerTotal   float64
	ActiveCampaigns int
	TotalCampaigns  int
	Overdue         []DeliverableItem
	Upcoming        []DeliverableItem
	GeneratedAt     time.Time
}

// Summarize aggregates already-fetched campaigns and deliverables.
// Finished deliverables are left out of both partitions.
func Summarize(campaigns []campaign.Campaign, deliverables []campaign.Deliverable, now time.Time) Summary {
	out := Summary{
		TotalCampaigns: len(campaigns),
		Overdue:        make([]DeliverableItem, 0),
		Upcoming:       make([]DeliverableItem, 0),
		GeneratedAt:    now,
	}

	nameByID := make(map[string]string, len(campaigns))
	for _, item := range campaigns {
		nameByID[item.ID] = item.Name
		if item.IsRetainer() {
			out.RetainerTotal += item.Amount
		}
		if item.IsActiveLike() {
			out.ActiveCampaigns++
		}
	}

	for _, item := range deliverables {
		if item.IsDone() {
			continue
		}
		entry := DeliverableItem{
			Deliverable:   item,
			CampaignName:  nameByID[item.CampaignID],
			RelativeLabel: RelativeLabel(item.DueDate, now),
		}
		if item.DueDate.Before(now) {
			out.Overdue = append(out.Overdue, entry)
			continue
		}
		out.Upcoming = append(out.Upcoming, entry)
	}

	sort.SliceStable(out.Overdue, func(i, j int) bool {
		return out.Overdue[i].Deliverable.DueDate.Before(out.Overdue[j].Deliverable.DueDate)
	})
	sort.SliceStable(out.Upcoming, func(i, j int) bool {
		return out.Upcoming[i].Deliverable.DueDate.Before(out.Upcoming[j].Deliverable.DueDate)
	})

	return out
}

// RelativeLabel renders due relative to now, e.g. "3 days ago".
func RelativeLabel(due, now time.Time) string {
	return humanize.RelTime(due, now, "ago", "from now")
}
