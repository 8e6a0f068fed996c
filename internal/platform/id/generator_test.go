package id

import "testing"

func TestUUIDGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids")
	}
	if !Valid(first) {
		t.Fatalf("expected valid uuid, got %q", first)
	}
	if Valid("not-a-uuid") {
		t.Fatalf("expected invalid uuid")
	}
}
