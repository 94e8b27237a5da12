package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	RoleGuest = "guest"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

const (
	// BlockReasonMaintenance is the default reason for host-imposed blocks.
	BlockReasonMaintenance = "maintenance"

	// WorkerQueueSize is the in-memory outbox queue capacity.
	WorkerQueueSize = 1000

	// RateLimitRequests is the per-client request budget within RateLimitWindow.
	RateLimitRequests = 60

	// RateLimitWindow is the throttling window in seconds.
	RateLimitWindow = 60

	// DefaultMaxBookingDays caps how far in the future a stay may start.
	DefaultMaxBookingDays = 365

	// CompletionSweepInterval is the default sweep period in minutes for
	// marking past-checkout bookings as completed.
	CompletionSweepInterval = 60
)

var validTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
// Cancelled and completed are terminal.
func CanTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
