package quota

import "time"

// State is a point-in-time copy of one provider's monthly budget.
// Used never exceeds MonthlyLimit; Pending counts reservations in flight.
type State struct {
	Provider     string    `json:"provider"`
	MonthlyLimit int       `json:"monthly_limit"`
	Used         int       `json:"used"`
	Pending      int       `json:"pending"`
	PeriodStart  time.Time `json:"period_start"`
	ResetAt      time.Time `json:"reset_at"`
}

// Remaining is the number of calls that may still be reserved this period.
func (s State) Remaining() int {
	if r := s.MonthlyLimit - s.Used - s.Pending; r > 0 {
		return r
	}
	return 0
}

// IsExhausted reports whether every call in the period has been used.
func (s State) IsExhausted() bool {
	return s.Used >= s.MonthlyLimit
}

// monthBounds returns the first instant of now's calendar month (UTC) and of
// the following month.
func monthBounds(now time.Time) (start, next time.Time) {
	now = now.UTC()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
