package profile

import "testing"

func TestProfile_IsComplete(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		item Profile
		want bool
	}{
		{
			name: "flag without identity fields",
			item: Profile{Completed: true, FirstName: "Jane"},
			want: false,
		},
		{
			name: "identity fields without flag",
			item: Profile{FirstName: "Jane", LastName: "Doe", DateOfBirth: "1995-01-01"},
			want: false,
		},
		{
			name: "flag and identity fields",
			item: Profile{Completed: true, FirstName: "Jane", LastName: "Doe", DateOfBirth: "1995-01-01"},
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.IsComplete(); got != tc.want {
				t.Fatalf("IsComplete()=%v want %v", got, tc.want)
			}
		})
	}
}

func TestTierForGMV(t *testing.T) {
	t.Parallel()

	cases := map[float64]Tier{
		0:         TierBronze,
		4_999.99:  TierBronze,
		5_000:     TierSilver,
		30_000:    TierGold,
		100_000:   TierPlatinum,
		300_000:   TierDiamond,
		2_000_000: TierElite,
	}
	for gmv, want := range cases {
		if got := TierForGMV(gmv); got != want {
			t.Fatalf("TierForGMV(%v)=%s want %s", gmv, got, want)
		}
	}
}

func TestParseTier(t *testing.T) {
	t.Parallel()

	if got, err := ParseTier(" Gold "); err != nil || got != TierGold {
		t.Fatalf("unexpected parse result: %s %v", got, err)
	}
	if _, err := ParseTier("mythic"); err == nil {
		t.Fatalf("expected error for unknown tier")
	}
}
