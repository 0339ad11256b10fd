// internal/models/application.go
package models

// ApplicationStatus is the lifecycle stage of a tracked application.
type ApplicationStatus string

const (
	StatusSaved     ApplicationStatus = "Saved"
	StatusApplied   ApplicationStatus = "Applied"
	StatusInterview ApplicationStatus = "Interview"
	StatusOffer     ApplicationStatus = "Offer"
	StatusRejected  ApplicationStatus = "Rejected"
	StatusArchived  ApplicationStatus = "Archived"
)

// IsValid reports whether s is a known lifecycle stage.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// ApplicationRecord tracks one job through the pipeline. The ID is immutable
// for the record's lifetime; the embedded Job snapshot is never rewritten.
type ApplicationRecord struct {
	ID            string            `json:"id"`
	Job           Job               `json:"job"`
	Status        ApplicationStatus `json:"status"`
	AppliedDate   string            `json:"appliedDate"` // doubles as saved-at for Saved records
	RelativeDate  string            `json:"relativeDate"`
	ResumeVersion string            `json:"resumeVersion,omitempty"`
	AIInsight     string            `json:"aiInsight,omitempty"`
	Guidance      string            `json:"guidance,omitempty"`
	// Error carries a transient mutation failure message; cleared on the
	// next successful mutation.
	Error string `json:"error,omitempty"`
}
