package profile

import (
	"context"
	"fmt"
	"strings"
)

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
	TierElite    Tier = "elite"
)

// tierFloors lists the minimum GMV of each tier, highest first. The
// calculate_tier SQL function uses the same thresholds.
var tierFloors = []struct {
	tier  Tier
	floor float64
}{
	{TierElite, 1_000_000},
	{TierDiamond, 250_000},
	{TierPlatinum, 100_000},
	{TierGold, 25_000},
	{TierSilver, 5_000},
	{TierBronze, 0},
}

// TierCalculator maps a GMV figure to a tier classification.
type TierCalculator interface {
	CalculateTier(ctx context.Context, gmv float64) (Tier, error)
}

// TierForGMV mirrors calculate_tier for stores without the SQL function.
func TierForGMV(gmv float64) Tier {
	for _, item := range tierFloors {
		if gmv >= item.floor {
			return item.tier
		}
	}
	return TierBronze
}

func ParseTier(raw string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case TierBronze:
		return TierBronze, nil
	case TierSilver:
		return TierSilver, nil
	case TierGold:
		return TierGold, nil
	case TierPlatinum:
		return TierPlatinum, nil
	case TierDiamond:
		return TierDiamond, nil
	case TierElite:
		return TierElite, nil
	case "":
		return TierBronze, nil
	default:
		return "", fmt.Errorf("unknown creator tier %q", raw)
	}
}
