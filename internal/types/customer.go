package types

import "time"

// Caller is the authenticated identity attached to a request context after
// the API key check. Demo callers are synthetic and never hit the store.
type Caller struct {
	CustomerID       string `json:"customer_id"`
	SubscriptionTier string `json:"subscription_tier"`
	MonthlyLimit     int    `json:"monthly_limit"`
	KeyID            string `json:"-"`
	Demo             bool   `json:"-"`
}

// Customer is a row from the customers table joined with its key limit.
type Customer struct {
	CustomerID       string    `json:"customer_id"`
	CompanyName      string    `json:"company_name"`
	Email            string    `json:"email"`
	SubscriptionTier string    `json:"subscription_tier"`
	MonthlyLimit     int       `json:"monthly_limit"`
	CreatedAt        time.Time `json:"created_at"`
}

// UsageRecord is one append-only api_usage row.
type UsageRecord struct {
	CustomerID string
	APIKeyID   string
	Endpoint   string
	Method     string
	StatusCode int
}

// UsageStats is the 30-day aggregate for /admin/stats.
type UsageStats struct {
	TotalRequests   int64 `json:"total_requests"`
	ActiveCustomers int64 `json:"active_customers"`
}
