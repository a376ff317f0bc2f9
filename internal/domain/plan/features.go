package plan

// Known feature codes. Plans built in the admin console may carry codes
// outside this list; the gate treats them like any other code.
const (
	FeatureTimesheet       = "TIMESHEET"
	FeatureShiftScheduling = "SHIFT_SCHEDULING"
	FeatureLeave           = "LEAVE"
	FeaturePayroll         = "PAYROLL"
	FeatureDataExport      = "DATA_EXPORT"
	FeatureEContract       = "E_CONTRACT"
	FeatureAPIAccess       = "API_ACCESS"
)

type Feature struct {
	Code    string `json:"code"`
	Enabled bool   `json:"enabled"`
}

// HasFeature reports whether the subscription enables code. Feature lists
// are unordered and may carry duplicate codes; any enabled entry wins.
// A nil or empty list enables nothing.
func HasFeature(features []Feature, code string) bool {
	for _, feature := range features {
		if feature.Code == code && feature.Enabled {
			return true
		}
	}
	return false
}
