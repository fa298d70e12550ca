package plans

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{in: "ambassador", want: Ambassador, ok: true},
		{in: "  Feedback ", want: Feedback, ok: true},
		{in: "REGULAR", want: Regular, ok: true},
		{in: "premium", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ParseKind(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCatalogAmounts(t *testing.T) {
	feedback, ok := Get(Feedback)
	if !ok {
		t.Fatal("feedback plan missing from catalog")
	}
	if feedback.AmountPence != 1500 || feedback.ChargedPounds() != 15 {
		t.Fatalf("feedback amount = %d pence, want 1500", feedback.AmountPence)
	}
	if feedback.PromoCycles != 3 {
		t.Fatalf("feedback promo cycles = %d, want 3", feedback.PromoCycles)
	}

	ambassador, _ := Get(Ambassador)
	if ambassador.TrialDays != 90 {
		t.Fatalf("ambassador trial days = %d, want 90", ambassador.TrialDays)
	}
	if ambassador.AmountPence != 3000 {
		t.Fatalf("ambassador amount = %d pence, want 3000", ambassador.AmountPence)
	}
}

func TestListStableOrder(t *testing.T) {
	got := List()
	if len(got) != 3 {
		t.Fatalf("List() returned %d plans, want 3", len(got))
	}
	if got[0].Kind != Ambassador || got[1].Kind != Feedback || got[2].Kind != Regular {
		t.Fatalf("List() order = %v", []Kind{got[0].Kind, got[1].Kind, got[2].Kind})
	}
}
