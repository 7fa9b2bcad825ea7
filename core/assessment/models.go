package assessment

import "time"

// Statuses as reported by the portal.
const (
	StatusUpcoming = "UPCOMING"
	StatusOverdue  = "OVERDUE"
	StatusMarked   = "MARKS_RELEASED"
)

type (
	Result struct {
		Percentage float64 `json:"percentage"`
		Grade      string  `json:"grade,omitempty"`
	}

	Assessment struct {
		ID      int       `json:"id"`
		Title   string    `json:"title"`
		Subject string    `json:"subject"`
		Code    string    `json:"code"`
		Due     time.Time `json:"due"`
		Status  string    `json:"status"`
		Result  *Result   `json:"result,omitempty"` // nil until marks are released
	}
)

func (a *Assessment) IsMarked() bool {
	return a.Status == StatusMarked && a.Result != nil
}
