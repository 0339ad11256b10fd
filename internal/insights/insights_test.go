// internal/insights/insights_test.go
package insights

import (
	"fmt"
	"testing"

	"careerpilot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecords(statuses ...models.ApplicationStatus) []models.ApplicationRecord {
	records := make([]models.ApplicationRecord, 0, len(statuses))
	for i, s := range statuses {
		records = append(records, models.ApplicationRecord{
			ID:     fmt.Sprintf("rec-%d", i+1),
			Status: s,
		})
	}
	return records
}

func TestCompute_BelowMinimumSampleReturnsPlaceholder(t *testing.T) {
	summary := Compute(makeRecords(
		models.StatusApplied,
		models.StatusApplied,
		models.StatusInterview,
		models.StatusSaved,
	))

	assert.False(t, summary.Ready)
	assert.Equal(t, 4, summary.Total)
	require.NotNil(t, summary.Placeholder)
	assert.Equal(t, "Gathering Perspective", summary.Placeholder.Title)
	assert.Empty(t, summary.Entries)
}

func TestCompute_AtMinimumSampleProducesFiveEntries(t *testing.T) {
	summary := Compute(makeRecords(
		models.StatusApplied,
		models.StatusApplied,
		models.StatusInterview,
		models.StatusOffer,
		models.StatusRejected,
	))

	assert.True(t, summary.Ready)
	assert.Nil(t, summary.Placeholder)
	require.Len(t, summary.Entries, 5)

	assert.Equal(t, "Progress & Momentum", summary.Entries[0].Category)
	assert.Equal(t, "Resume Effectiveness", summary.Entries[1].Category)
	assert.Equal(t, "Application Strategy", summary.Entries[2].Category)
	assert.Equal(t, "Emotional Reassurance", summary.Entries[3].Category)
	assert.Equal(t, "Suggested Next Step", summary.Entries[4].Category)

	assert.Contains(t, summary.Entries[0].Description, "1 applications into the interview phase")
	assert.Contains(t, summary.Entries[3].Description, "1 rejections alongside 1 offers")
}

func TestCompute_CountsPerStatus(t *testing.T) {
	summary := Compute(makeRecords(
		models.StatusApplied,
		models.StatusApplied,
		models.StatusInterview,
		models.StatusInterview,
		models.StatusRejected,
	))

	assert.Equal(t, 2, summary.Counts[models.StatusApplied])
	assert.Equal(t, 2, summary.Counts[models.StatusInterview])
	assert.Equal(t, 1, summary.Counts[models.StatusRejected])
	assert.Equal(t, 0, summary.Counts[models.StatusOffer])
}

func TestCompute_BestResumeByOutcomeRate(t *testing.T) {
	records := []models.ApplicationRecord{
		{ID: "1", Status: models.StatusInterview, ResumeVersion: "A"},
		{ID: "2", Status: models.StatusOffer, ResumeVersion: "A"},
		{ID: "3", Status: models.StatusInterview, ResumeVersion: "B"},
		{ID: "4", Status: models.StatusRejected, ResumeVersion: "B"},
		{ID: "5", Status: models.StatusApplied, ResumeVersion: "B"},
	}

	summary := Compute(records)
	// A converts 2/2, B converts 1/3.
	assert.Equal(t, "A", summary.BestResume)
}

func TestCompute_BestResumeTieBreaksToFirstEncountered(t *testing.T) {
	records := []models.ApplicationRecord{
		{ID: "1", Status: models.StatusInterview, ResumeVersion: "First"},
		{ID: "2", Status: models.StatusInterview, ResumeVersion: "Second"},
		{ID: "3", Status: models.StatusApplied, ResumeVersion: "First"},
		{ID: "4", Status: models.StatusApplied, ResumeVersion: "Second"},
		{ID: "5", Status: models.StatusSaved, ResumeVersion: "Third"},
	}

	summary := Compute(records)
	assert.Equal(t, "First", summary.BestResume)
}

func TestCompute_EmptyResumeVersionGroupsAsGeneral(t *testing.T) {
	records := []models.ApplicationRecord{
		{ID: "1", Status: models.StatusInterview},
		{ID: "2", Status: models.StatusApplied},
		{ID: "3", Status: models.StatusApplied},
		{ID: "4", Status: models.StatusRejected, ResumeVersion: "Tailored"},
		{ID: "5", Status: models.StatusRejected, ResumeVersion: "Tailored"},
	}

	summary := Compute(records)
	assert.Equal(t, "General", summary.BestResume)
	assert.Contains(t, summary.Entries[1].Description, `"General"`)
}

func TestCompute_DoesNotMutateRecords(t *testing.T) {
	records := makeRecords(
		models.StatusApplied,
		models.StatusApplied,
		models.StatusInterview,
		models.StatusOffer,
		models.StatusRejected,
	)
	before := append([]models.ApplicationRecord(nil), records...)

	_ = Compute(records)
	assert.Equal(t, before, records)
}
