// internal/models/user.go
package models

import "time"

// UserRole controls quota bypass and admin-only surfaces.
type UserRole string

const (
	RoleScholar UserRole = "scholar"
	RoleAdmin   UserRole = "admin"
	RoleEditor  UserRole = "editor"
)

// UserProfile is the optional profile extracted from a resume at sign-up.
type UserProfile struct {
	Headline        string   `json:"headline"`
	Summary         string   `json:"summary"`
	Skills          []string `json:"skills"`
	ExperienceYears *float64 `json:"experienceYears,omitempty"`
}

// User is the single local account. Authentication is simulated; there is no
// backend identity provider.
type User struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Role       UserRole     `json:"role"`
	IsPro      bool         `json:"isPro"`
	IsLoggedIn bool         `json:"isLoggedIn"`
	Profile    *UserProfile `json:"profile,omitempty"`
}

// GuestUser returns the default logged-out user.
func GuestUser() User {
	return User{
		ID:    "guest",
		Name:  "Guest",
		Email: "",
		Role:  RoleScholar,
	}
}

// UserStats tracks advisory usage against the daily quota.
type UserStats struct {
	PromptsToday int       `json:"promptsToday"`
	MaxPrompts   int       `json:"maxPrompts"`
	TotalPrompts int       `json:"totalPrompts"`
	LastActive   time.Time `json:"lastActive"`
}

// DefaultStats returns zeroed stats with the given daily limit.
func DefaultStats(maxPrompts int) UserStats {
	return UserStats{MaxPrompts: maxPrompts}
}

// PromptAction names the advisory operation behind a log entry.
type PromptAction string

const (
	ActionAnalyze      PromptAction = "analyze"
	ActionOptimize     PromptAction = "optimize"
	ActionPractice     PromptAction = "practice"
	ActionChat         PromptAction = "chat"
	ActionSummarize    PromptAction = "summarize"
	ActionParseProfile PromptAction = "parse-profile"
	ActionSupport      PromptAction = "support"
)

// PromptLog is one entry of the advisory interaction history, newest first.
type PromptLog struct {
	ID              string       `json:"id"`
	Timestamp       time.Time    `json:"timestamp"`
	Action          PromptAction `json:"action"`
	Prompt          string       `json:"prompt"`
	ResponsePreview string       `json:"responsePreview"`
	Role            UserRole     `json:"role"`
}
