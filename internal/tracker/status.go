// internal/tracker/status.go
package tracker

import "careerpilot/internal/models"

// statusCycle is the ordered advance sequence. Archived is terminal and never
// produced by the cycle.
var statusCycle = []models.ApplicationStatus{
	models.StatusSaved,
	models.StatusApplied,
	models.StatusInterview,
	models.StatusOffer,
	models.StatusRejected,
}

// NextStatus returns the stage that follows s in the advance cycle. Rejected
// wraps back to Saved. Archived and unknown statuses map to Saved.
func NextStatus(s models.ApplicationStatus) models.ApplicationStatus {
	for i, cur := range statusCycle {
		if cur == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return models.StatusSaved
}
