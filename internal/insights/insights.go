// internal/insights/insights.go
package insights

import (
	"fmt"

	"careerpilot/internal/models"
)

// MinSampleSize is the minimum number of records before insights are shown.
const MinSampleSize = 5

// Placeholder copy returned below the minimum sample size. This is an
// explicit state, not an error.
const (
	PlaceholderTitle   = "Gathering Perspective"
	PlaceholderMessage = "Insights appear as you track applications. For now, learning and preparation still count as progress."
	PlaceholderFooter  = "Your journey is taking root. No rush."
)

// Entry is one templated insight card.
type Entry struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tip         string `json:"tip"`
}

// Summary is the full derived insight payload. It is recomputed on every
// read and never mutates the underlying records.
type Summary struct {
	Ready       bool                             `json:"ready"`
	Total       int                              `json:"total"`
	Counts      map[models.ApplicationStatus]int `json:"counts,omitempty"`
	BestResume  string                           `json:"bestResume,omitempty"`
	Entries     []Entry                          `json:"entries,omitempty"`
	Placeholder *Placeholder                     `json:"placeholder,omitempty"`
}

// Placeholder is the insufficient-data state.
type Placeholder struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Footer  string `json:"footer"`
}

type resumeStats struct {
	count    int
	outcomes int
}

// Compute derives the insight summary from a record slice.
func Compute(records []models.ApplicationRecord) Summary {
	if len(records) < MinSampleSize {
		return Summary{
			Total: len(records),
			Placeholder: &Placeholder{
				Title:   PlaceholderTitle,
				Message: PlaceholderMessage,
				Footer:  PlaceholderFooter,
			},
		}
	}

	counts := make(map[models.ApplicationStatus]int)
	for _, rec := range records {
		counts[rec.Status]++
	}

	// Resume groups keep first-encounter order so rate ties resolve to the
	// earliest version seen.
	var order []string
	groups := make(map[string]*resumeStats)
	for _, rec := range records {
		version := rec.ResumeVersion
		if version == "" {
			version = "General"
		}
		stats, exists := groups[version]
		if !exists {
			stats = &resumeStats{}
			groups[version] = stats
			order = append(order, version)
		}
		stats.count++
		if rec.Status == models.StatusInterview || rec.Status == models.StatusOffer {
			stats.outcomes++
		}
	}

	bestResume := "General"
	bestRate := -1.0
	for _, version := range order {
		stats := groups[version]
		rate := float64(stats.outcomes) / float64(stats.count)
		if rate > bestRate {
			bestRate = rate
			bestResume = version
		}
	}

	return Summary{
		Ready:      true,
		Total:      len(records),
		Counts:     counts,
		BestResume: bestResume,
		Entries:    buildEntries(counts, bestResume),
	}
}

func buildEntries(counts map[models.ApplicationStatus]int, bestResume string) []Entry {
	return []Entry{
		{
			Category: "Progress & Momentum",
			Title:    "Strong Pipeline Growth",
			Description: fmt.Sprintf(
				"You have successfully moved %d applications into the interview phase. This volume indicates that your core narrative is highly competitive in the Canadian market.",
				counts[models.StatusInterview]),
			Tip: "Reflect on what felt most authentic in those conversations.",
		},
		{
			Category: "Resume Effectiveness",
			Title:    "High Resonance Detected",
			Description: fmt.Sprintf(
				"Your %q version is showing a significantly higher outcome rate compared to other versions. It's effectively highlighting the skills employers are currently prioritizing.",
				bestResume),
			Tip: "Use this version as a base for similar future saves.",
		},
		{
			Category:    "Application Strategy",
			Title:       "Channel Optimization",
			Description: "Your applications via LinkedIn and Company Websites are yielding the highest response quality. You've built a reliable system across these platforms.",
			Tip:         "Consider a quick follow-up for the roles applied to 7+ days ago.",
		},
		{
			Category: "Emotional Reassurance",
			Title:    "Normalizing Outcomes",
			Description: fmt.Sprintf(
				"In an early-career search, %d rejections alongside %d offers is a healthy, productive ratio. Every 'no' is simply clearing the path.",
				counts[models.StatusRejected], counts[models.StatusOffer]),
			Tip: "Rejection is just volume in the search for the right fit.",
		},
		{
			Category:    "Suggested Next Step",
			Title:       "Low-Effort Maintenance",
			Description: "It's been 6 days since your last update. A small, intentional check-in can maintain your momentum without costing significant energy.",
			Tip:         "Review your notes for the 18 saved items today.",
		},
	}
}
