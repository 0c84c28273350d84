package worker

import "time"

// ============================================================================
// Scheduling - Reset Worker
// ============================================================================

const (
	// ResetApproachWindow is how close to midnight the worker arms the real reset timer
	ResetApproachWindow = time.Hour
	// ResetStandbyLead is how long before midnight the standby timer wakes up
	ResetStandbyLead = 45 * time.Minute
	// ResetGrace pushes the reset just past the boundary
	ResetGrace = time.Second
	// ResetJitterTolerance is how early a timer may fire before it is re-armed
	ResetJitterTolerance = 10 * time.Second
)

// ============================================================================
// Log Messages - Reset Worker
// ============================================================================

// Log messages for reset worker operations
const (
	LogMsgResetStarting  = "Hunter reset starting"
	LogMsgResetCompleted = "Hunter reset completed"
	LogMsgResetFailed    = "Hunter reset failed"
	LogMsgResetStandby   = "Hunter reset standby"
	LogMsgResetApproach  = "Hunter reset scheduled"
)
