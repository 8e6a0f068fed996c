package memory

import (
	"time"

	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
)

const (
	CampaignIDGlowSerum  = "7b0c3c1e-3f0a-4d7e-9a4e-2f1d5c6b8a01"
	CampaignIDDeskLamp   = "1f6a2d8e-5b4c-4e3a-8f7d-9c0b1a2e3d02"
	CampaignIDSnackBox   = "c4e5f6a7-b8c9-4d0e-a1f2-a3b4c5d6e703"
	CampaignIDTrailShoes = "9d8c7b6a-5f4e-4d3c-b2a1-0f9e8d7c6b04"
)

var seedCreatedAt = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 {
	return &v
}

// SeedCampaigns returns the demo catalog, newest first.
func SeedCampaigns() []campaign.Campaign {
	return []campaign.Campaign{
		{
			ID:                   CampaignIDTrailShoes,
			Name:                 "Trail Season Launch",
			BrandName:            "Northpeak",
			ProductName:          "Ridge Runner Trail Shoes",
			Category:             "Fashion",
			Platform:             "tiktok",
			CampaignType:         "commission",
			BaseCommission:       12,
			CommissionBoost:      3,
			GMVTarget:            []float64{5000, 15000},
			VideosPerDay:         1,
			CampaignDurationDays: 30,
			FreeSamples:          true,
			Status:               campaign.StatusOpen,
			CreatedAt:            seedCreatedAt.Add(72 * time.Hour),
			UpdatedAt:            seedCreatedAt.Add(72 * time.Hour),
		},
		{
			ID:                   CampaignIDGlowSerum,
			Name:                 "Glow Serum Retainer",
			BrandName:            "Acme Corp",
			ProductName:          "Glow Vitamin C Serum",
			Category:             "Beauty",
			Platform:             "tiktok",
			CampaignType:         campaign.TypeRetainer,
			Amount:               1500,
			RetainerMin:          floatPtr(1000),
			RetainerMax:          floatPtr(2000),
			VideosPerDay:         2,
			CampaignDurationDays: 60,
			FreeSamples:          true,
			Prizes:               true,
			Status:               campaign.StatusOpen,
			CreatedAt:            seedCreatedAt.Add(48 * time.Hour),
			UpdatedAt:            seedCreatedAt.Add(48 * time.Hour),
		},
		{
			ID:                   CampaignIDDeskLamp,
			Name:                 "Desk Setup Series",
			BrandName:            "Lumen Works",
			ProductName:          "Arc LED Desk Lamp",
			Category:             "Technology",
			Platform:             "tiktok",
			CampaignType:         "commission",
			BaseCommission:       15,
			CampaignDurationDays: 14,
			Status:               campaign.StatusOpen,
			CreatedAt:            seedCreatedAt.Add(24 * time.Hour),
			UpdatedAt:            seedCreatedAt.Add(24 * time.Hour),
		},
		{
			ID:                   CampaignIDSnackBox,
			Name:                 "Snack Box Holiday",
			BrandName:            "Crunchly",
			ProductName:          "Holiday Snack Box",
			Category:             "Food",
			Platform:             "tiktok",
			CampaignType:         campaign.TypeRetainer,
			Amount:               800,
			CampaignDurationDays: 21,
			Status:               campaign.StatusClosed,
			CreatedAt:            seedCreatedAt,
			UpdatedAt:            seedCreatedAt,
		},
	}
}
