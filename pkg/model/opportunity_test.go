package model

import "testing"

func TestParseStage(t *testing.T) {
	cases := []struct {
		in   string
		want Stage
		ok   bool
	}{
		{"Proposal", StageProposal, true},
		{"proposal", StageProposal, true},
		{"  CLOSED WON ", StageClosedWon, true},
		{"Submitted", StageSubmitted, true},
		{"", "", false},
		{"Unknown", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseStage(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseStage(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestOpportunity_Validate(t *testing.T) {
	valid := Opportunity{ID: "OPP-0001", ExpectedRevenue: 100, Probability: 50}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid opportunity rejected: %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Opportunity)
	}{
		{"missing id", func(o *Opportunity) { o.ID = "" }},
		{"negative revenue", func(o *Opportunity) { o.ExpectedRevenue = -1 }},
		{"probability below range", func(o *Opportunity) { o.Probability = -1 }},
		{"probability above range", func(o *Opportunity) { o.Probability = 101 }},
		{"negative product quantity", func(o *Opportunity) {
			o.Products = []Product{{Name: "x", Quantity: -1}}
		}},
		{"negative product price", func(o *Opportunity) {
			o.Products = []Product{{Name: "x", Price: -0.5}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := valid
			tc.mut(&o)
			if err := o.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDocument_Normalize(t *testing.T) {
	d := &Document{Opportunities: []Opportunity{{ID: "OPP-0001"}}}
	d.Normalize()

	if d.Opportunities[0].Products == nil {
		t.Error("products should be non-nil after Normalize")
	}
	if d.Opportunities[0].Attachments == nil {
		t.Error("attachments should be non-nil after Normalize")
	}

	empty := &Document{}
	empty.Normalize()
	if empty.Opportunities == nil {
		t.Error("opportunities should be non-nil after Normalize")
	}
}
