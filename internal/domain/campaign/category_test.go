package campaign

import "testing"

func TestNormalizeCategory(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "All", want: ""},
		{in: "all", want: ""},
		{in: " beauty ", want: "Beauty"},
		{in: "Technology", want: "Technology"},
		{in: "Cars", wantErr: true},
	}

	for _, tc := range cases {
		got, err := NormalizeCategory(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("normalize %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("normalize %q: got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	t.Parallel()

	items := Categories()
	items[0] = "mutated"
	if Categories()[0] != CategoryAll {
		t.Fatalf("expected categories to be immutable")
	}
}

func TestCampaign_StatusHelpers(t *testing.T) {
	t.Parallel()

	if !(Campaign{Status: "OPEN"}).IsOpen() {
		t.Fatalf("expected OPEN to be open")
	}
	if !(Campaign{Status: StatusInProgress}).IsActiveLike() {
		t.Fatalf("expected in_progress to be active-like")
	}
	if (Campaign{Status: StatusClosed}).IsActiveLike() {
		t.Fatalf("expected closed not to be active-like")
	}
	if !(Campaign{CampaignType: "Retainer"}).IsRetainer() {
		t.Fatalf("expected retainer type match to be case-insensitive")
	}
}
