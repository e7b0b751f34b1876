package domain

import "testing"

func TestMatchesNameOrIndustryIgnoringCase(t *testing.T) {
	s := Startup{ID: "1", StartupFields: StartupFields{Name: "PayFlow", Industry: "Fintech"}}
	cases := map[string]bool{
		"":        true,
		"pay":     true,
		"FLOW":    true,
		"tech":    true,
		"FinTech": true,
		"health":  false,
		"1":       false,
	}
	for query, want := range cases {
		if got := s.Matches(query); got != want {
			t.Fatalf("Matches(%q) = %v, want %v", query, got, want)
		}
	}
}

func TestEnumsValid(t *testing.T) {
	for _, stage := range FundingStages() {
		if !stage.Valid() {
			t.Fatalf("stage %q should be valid", stage)
		}
	}
	for _, status := range Statuses() {
		if !status.Valid() {
			t.Fatalf("status %q should be valid", status)
		}
	}
	if FundingStage("Series D").Valid() || Status("Paused").Valid() {
		t.Fatalf("unexpected enum accepted")
	}
	if len(FundingStages()) != 5 || FundingStages()[0] != StagePreSeed || FundingStages()[4] != StageSeriesCP {
		t.Fatalf("unexpected stage order %v", FundingStages())
	}
}

func TestFounded(t *testing.T) {
	founded, ok := StartupFields{FoundedDate: "2024-01-01"}.Founded()
	if !ok || founded.Year() != 2024 || founded.Month() != 1 || founded.Day() != 1 {
		t.Fatalf("unexpected founded %v %v", founded, ok)
	}
	if _, ok := (StartupFields{FoundedDate: "01/01/2024"}).Founded(); ok {
		t.Fatalf("expected non-ISO date to be rejected")
	}
}

func TestFieldsDropsID(t *testing.T) {
	f := StartupFields{Name: "Acme"}
	if got := (Startup{ID: "x", StartupFields: f}).Fields(); got != f {
		t.Fatalf("unexpected fields %+v", got)
	}
}
