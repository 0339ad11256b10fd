// internal/catalog/catalog.go
package catalog

import (
	"strings"

	"careerpilot/internal/models"
)

// Catalog is the immutable job-listing inventory. Listings are demo data;
// there is no ingestion pipeline behind them.
type Catalog struct {
	jobs []models.Job
}

func New() *Catalog {
	return &Catalog{jobs: seedJobs()}
}

// Jobs returns a copy of every listing.
func (c *Catalog) Jobs() []models.Job {
	return append([]models.Job(nil), c.jobs...)
}

// Get returns one listing by id.
func (c *Catalog) Get(id string) (models.Job, bool) {
	for _, job := range c.jobs {
		if job.ID == id {
			return job, true
		}
	}
	return models.Job{}, false
}

// Search filters listings by a free-text term over title, company and
// skills, plus optional exact type and substring location filters.
func (c *Catalog) Search(term, jobType, location string) []models.Job {
	term = strings.ToLower(strings.TrimSpace(term))
	location = strings.ToLower(strings.TrimSpace(location))

	out := make([]models.Job, 0, len(c.jobs))
	for _, job := range c.jobs {
		if jobType != "" && job.Type != jobType {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if term != "" && !matchesTerm(job, term) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func matchesTerm(job models.Job, term string) bool {
	if strings.Contains(strings.ToLower(job.Title), term) ||
		strings.Contains(strings.ToLower(job.Company), term) {
		return true
	}
	for _, skill := range job.Skills {
		if strings.Contains(strings.ToLower(skill), term) {
			return true
		}
	}
	return false
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func seedJobs() []models.Job {
	return []models.Job{
		{
			ID:              "1",
			Title:           "Senior Frontend Engineer",
			Company:         "TechFlow Solutions",
			Location:        "Remote",
			Type:            "Full-time",
			Salary:          "$140k - $180k",
			Description:     "We are looking for a React expert with deep knowledge of TypeScript, Tailwind, and AI integration. Must have experience building scalable SaaS products and accessibility standards.",
			PostedDate:      "2 days ago",
			Deadline:        strPtr("2024-06-30"),
			PercentageMatch: 92,
			PostedDaysAgo:   intPtr(2),
			Skills:          []string{"React", "TypeScript", "AI Integration"},
			Details: &models.JobDetails{
				Responsibilities: "- Architect scalable frontend systems using React and TypeScript.\n- Collaborate with AI teams to integrate LLM features into the core product.\n- Lead accessibility audits and implement WCAG 2.1 standards.",
				Requirements:     "- 5+ years of frontend experience.\n- Deep proficiency in Tailwind CSS and modern styling architectures.\n- Experience with high-traffic SaaS products.",
				Benefits:         "- Remote-first culture.\n- Health, Dental, and Vision coverage.\n- Annual learning stipend ($2k).",
			},
		},
		{
			ID:              "2",
			Title:           "Staff Software Developer",
			Company:         "MapleAI Systems",
			Location:        "Toronto, ON",
			Type:            "Full-time",
			Salary:          "$165k - $210k CAD",
			Description:     "Lead our core platform team in building high-performance AI infrastructure. Deep experience in Go, Rust, or C++ required.",
			PostedDate:      "2 hours ago",
			Deadline:        strPtr("2024-07-15"),
			PercentageMatch: 78,
			PostedDaysAgo:   intPtr(0),
			Skills:          []string{"Go", "Rust", "AI Infra"},
			Details: &models.JobDetails{
				Responsibilities: "- Design high-performance distributed systems.\n- Optimize AI inference engines for production scale.\n- Mentor senior engineers on platform architecture.",
				Requirements:     "- Proficient in low-level programming (C++/Go/Rust).\n- Strong understanding of kubernetes and cloud-native patterns.",
				Benefits:         "- Stock options in a high-growth startup.\n- 4 weeks PTO.\n- Office in downtown Toronto.",
			},
		},
		{
			ID:              "3",
			Title:           "Cloud Solutions Architect",
			Company:         "Northern Cloud Services",
			Location:        "Ottawa, ON",
			Type:            "Full-time",
			Salary:          "Not specified",
			Description:     "Architect secure and scalable cloud environments for public sector digital transformation projects.",
			PostedDate:      "1 day ago",
			Deadline:        nil,
			PercentageMatch: 85,
			PostedDaysAgo:   intPtr(1),
			Skills:          []string{"AWS", "Azure", "Security"},
			Details: &models.JobDetails{
				Responsibilities: "- Develop cloud migration strategies for government clients.\n- Ensure compliance with data sovereignty regulations.\n- Lead technical workshops with public sector stakeholders.",
				Requirements:     "- Expert level cloud certification (AWS/Azure).\n- Security clearance eligibility.\n- 8+ years in architecture.",
				Benefits:         "- Public sector pension plan.\n- Flexible working hours.\n- Relocation assistance for Ottawa.",
			},
		},
	}
}
