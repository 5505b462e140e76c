// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the minimum ticket price found for one attendance level
// and profit goal.
type Summary struct {
	Scope             string   `json:"scope"`
	TargetName        string   `json:"targetName"`
	Field             string   `json:"field"`
	AttendancePercent int      `json:"attendancePercent"`
	StaffPrice        float64  `json:"staffPrice"`
	PayingAttendees   int      `json:"payingAttendees"`
	Goal              float64  `json:"goal"`
	Original          float64  `json:"original"`
	Value             float64  `json:"value"`
	Profit            float64  `json:"profit"`
	Headroom          float64  `json:"headroom"`
	Iterations        int      `json:"iterations"`
	Converged         bool     `json:"converged"`
	Notes             []string `json:"notes,omitempty"`
	OriginalDisplay   string   `json:"originalDisplay,omitempty"`
	ValueDisplay      string   `json:"valueDisplay,omitempty"`
}
