package dto

// DashboardResponse is the admin stats snapshot.
type DashboardResponse struct {
	Users             int64            `json:"users"`
	BlockedUsers      int64            `json:"blocked_users"`
	Jobs              int64            `json:"jobs"`
	JobsByStatus      map[string]int64 `json:"jobs_by_status"`
	CompletedPayments int64            `json:"completed_payments"`
	Revenue           float64          `json:"revenue"`
	OpenTickets       int64            `json:"open_tickets"`
}
