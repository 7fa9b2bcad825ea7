package goal

import "time"

// Goal statuses.
const (
	StatusActive   = "active"
	StatusAchieved = "achieved"
	StatusDropped  = "dropped"
)

// Goal is a student-set objective for a school year.
type Goal struct {
	ID          int       `json:"id"`
	Year        int       `json:"year"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}
