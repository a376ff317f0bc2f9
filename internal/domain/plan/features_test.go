package plan

import "testing"

func TestHasFeature(t *testing.T) {
	cases := []struct {
		name     string
		features []Feature
		code     string
		want     bool
	}{
		{"nil list", nil, FeaturePayroll, false},
		{"empty list", []Feature{}, FeaturePayroll, false},
		{"enabled match", []Feature{{Code: FeaturePayroll, Enabled: true}}, FeaturePayroll, true},
		{"disabled match", []Feature{{Code: FeaturePayroll, Enabled: false}}, FeaturePayroll, false},
		{"other code enabled", []Feature{{Code: FeatureLeave, Enabled: true}}, FeaturePayroll, false},
		{
			"disabled duplicate before enabled duplicate",
			[]Feature{
				{Code: FeaturePayroll, Enabled: false},
				{Code: FeaturePayroll, Enabled: true},
			},
			FeaturePayroll,
			true,
		},
		{
			"enabled duplicate before disabled duplicate",
			[]Feature{
				{Code: FeaturePayroll, Enabled: true},
				{Code: FeaturePayroll, Enabled: false},
			},
			FeaturePayroll,
			true,
		},
		{
			"only disabled duplicates",
			[]Feature{
				{Code: FeaturePayroll, Enabled: false},
				{Code: FeaturePayroll, Enabled: false},
			},
			FeaturePayroll,
			false,
		},
		{"unknown code", []Feature{{Code: "SOMETHING_NEW", Enabled: true}}, "SOMETHING_ELSE", false},
		{"empty code entry does not match empty lookup against enabled other", []Feature{{Code: FeatureLeave, Enabled: true}}, "", false},
		{"empty code entry matches empty lookup", []Feature{{Code: "", Enabled: true}}, "", true},
	}

	for _, tc := range cases {
		if got := HasFeature(tc.features, tc.code); got != tc.want {
			t.Fatalf("%s: HasFeature = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestHasFeatureMatchesAnyEnabledScan(t *testing.T) {
	lists := [][]Feature{
		nil,
		{{Code: FeatureTimesheet, Enabled: true}},
		{{Code: FeatureTimesheet, Enabled: false}, {Code: FeaturePayroll, Enabled: true}},
		{{Code: FeaturePayroll, Enabled: false}, {Code: FeaturePayroll, Enabled: true}, {Code: FeaturePayroll, Enabled: false}},
		{{Code: FeatureEContract, Enabled: false}},
	}
	codes := []string{FeatureTimesheet, FeaturePayroll, FeatureEContract, "UNKNOWN", ""}

	for _, features := range lists {
		for _, code := range codes {
			want := false
			for _, feature := range features {
				if feature.Code == code && feature.Enabled {
					want = true
				}
			}
			if got := HasFeature(features, code); got != want {
				t.Fatalf("list %v code %q: got %v, want %v", features, code, got, want)
			}
		}
	}
}
