// internal/models/job.go
package models

// JobDetails holds the optional long-form sections of a listing.
type JobDetails struct {
	Responsibilities string `json:"responsibilities"`
	Requirements     string `json:"requirements"`
	Benefits         string `json:"benefits"`
}

// Job is an immutable snapshot of a listing. Once embedded in an application
// record it is never rewritten.
type Job struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Company         string      `json:"company"`
	Location        string      `json:"location,omitempty"`
	Type            string      `json:"type"`
	Salary          string      `json:"salary"`
	Description     string      `json:"description"`
	PostedDate      string      `json:"postedDate"`
	Deadline        *string     `json:"deadline"` // ISO 8601, nil when open-ended
	PercentageMatch int         `json:"percentageMatch"`
	PostedDaysAgo   *int        `json:"postedDaysAgo,omitempty"`
	Skills          []string    `json:"skills,omitempty"` // at most 3 tags
	Details         *JobDetails `json:"details,omitempty"`
}
