// internal/tracker/tracker.go
package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"careerpilot/internal/common/errors"
	"careerpilot/internal/common/logger"
	"careerpilot/internal/common/metrics"
	"careerpilot/internal/models"

	"github.com/google/uuid"
)

// Advisory strings attached to records at creation time.
const (
	savedInsight    = "Quietly monitoring this role for future alignment."
	savedGuidance   = "Job saved. Evaluate compatibility when ready."
	appliedInsight  = "Resonance detected: High technical alignment with core stack."
	appliedGuidance = "Submit initiated. Follow-up suggested in 1 week."

	defaultResumeVersion = "Standard Resume"
	pendingResumeVersion = "Pending"
)

// SaveOutcome reports what ToggleSave did.
type SaveOutcome string

const (
	OutcomeSaved          SaveOutcome = "saved"
	OutcomeRemoved        SaveOutcome = "removed"
	OutcomeAlreadyApplied SaveOutcome = "already_applied"
)

// View selects a filtered listing of records.
type View string

const (
	ViewAll     View = ""
	ViewSaved   View = "saved"
	ViewApplied View = "applied"
)

// Hooks are the repository's side channels. Persist receives the full record
// slice after every successful mutation; Notify emits a toast.
type Hooks struct {
	Persist func(ctx context.Context, records []models.ApplicationRecord) error
	Notify  func(message string, kind models.NotificationType)
}

// Repository owns the application records. A mutex serializes mutations;
// reads return copies, never internal state.
type Repository struct {
	mu      sync.Mutex
	records []models.ApplicationRecord
	hooks   Hooks
	failure FailurePolicy
	now     func() time.Time
	logger  logger.Logger
}

func NewRepository(initial []models.ApplicationRecord, hooks Hooks, failure FailurePolicy, log logger.Logger) *Repository {
	if hooks.Persist == nil {
		hooks.Persist = func(context.Context, []models.ApplicationRecord) error { return nil }
	}
	if hooks.Notify == nil {
		hooks.Notify = func(string, models.NotificationType) {}
	}
	if failure == nil {
		failure = FixedFailure(false)
	}
	return &Repository{
		records: append([]models.ApplicationRecord(nil), initial...),
		hooks:   hooks,
		failure: failure,
		now:     time.Now,
		logger:  log.WithFields(map[string]interface{}{"component": "tracker"}),
	}
}

// SetClock overrides the repository clock, used in tests.
func (r *Repository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// ToggleSave bookmarks a job, or removes the bookmark if one exists. Records
// past the Saved stage are left untouched.
func (r *Repository) ToggleSave(ctx context.Context, job models.Job) (SaveOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx := r.findByJobID(job.ID); idx >= 0 {
		if r.records[idx].Status != models.StatusSaved {
			r.hooks.Notify("Job already applied. Check your timeline.", models.NotifyInfo)
			return OutcomeAlreadyApplied, nil
		}
		r.records = append(r.records[:idx], r.records[idx+1:]...)
		if err := r.persist(ctx, "toggle_save"); err != nil {
			return OutcomeRemoved, err
		}
		r.hooks.Notify("Job removed from saved list.", models.NotifyInfo)
		return OutcomeRemoved, nil
	}

	record := models.ApplicationRecord{
		ID:            uuid.New().String(),
		Job:           job,
		Status:        models.StatusSaved,
		AppliedDate:   r.now().Format("2006-01-02"),
		RelativeDate:  "Just now",
		ResumeVersion: pendingResumeVersion,
		AIInsight:     savedInsight,
		Guidance:      savedGuidance,
	}
	r.records = append(r.records, record)
	if err := r.persist(ctx, "toggle_save"); err != nil {
		return OutcomeSaved, err
	}
	r.hooks.Notify("Job bookmarked to saved list.", models.NotifySuccess)
	return OutcomeSaved, nil
}

// LogApplication records a submitted application. An existing record for the
// same job keeps its ID; only status, dates and advisory fields change.
func (r *Repository) LogApplication(ctx context.Context, job models.Job, resumeVersion string) (models.ApplicationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if resumeVersion == "" {
		resumeVersion = defaultResumeVersion
	}

	idx := r.findByJobID(job.ID)
	if idx < 0 {
		r.records = append(r.records, models.ApplicationRecord{
			ID:  uuid.New().String(),
			Job: job,
		})
		idx = len(r.records) - 1
	}

	rec := &r.records[idx]
	rec.Status = models.StatusApplied
	rec.AppliedDate = r.now().Format("2006-01-02")
	rec.RelativeDate = "Just now"
	rec.ResumeVersion = resumeVersion
	rec.AIInsight = appliedInsight
	rec.Guidance = appliedGuidance
	rec.Error = ""

	out := *rec
	if err := r.persist(ctx, "log_application"); err != nil {
		return out, err
	}
	r.hooks.Notify("Event logged: Application added to timeline.", models.NotifySuccess)
	return out, nil
}

// ChangeStatus sets a record to an explicit stage. Transitions targeting
// Archived run failure injection; a successful archive removes the record.
func (r *Repository) ChangeStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findByID(id)
	if idx < 0 {
		return errors.NewRecordNotFoundError(id)
	}

	if status == models.StatusArchived {
		if r.failure.ShouldFail() {
			stdErr := errors.NewArchiveWriteTimeoutError(id)
			r.records[idx].Error = stdErr.Message
			metrics.TrackerMutationFailures.WithLabelValues("change_status", string(stdErr.Code)).Inc()
			r.logger.Warn("archive transition failed", map[string]interface{}{
				"recordId":  id,
				"errorCode": string(stdErr.Code),
			})
			if err := r.persist(ctx, "change_status"); err != nil {
				return err
			}
			return stdErr
		}
		return r.removeLocked(ctx, idx, "Record archived.")
	}

	rec := &r.records[idx]
	rec.Status = status
	rec.Error = ""
	if err := r.persist(ctx, "change_status"); err != nil {
		return err
	}
	r.hooks.Notify(fmt.Sprintf("Timeline updated: Role moved to %s.", status), models.NotifyInfo)
	return nil
}

// Advance moves a record one stage along the cycle.
func (r *Repository) Advance(ctx context.Context, id string) error {
	r.mu.Lock()
	idx := r.findByID(id)
	if idx < 0 {
		r.mu.Unlock()
		return errors.NewRecordNotFoundError(id)
	}
	next := NextStatus(r.records[idx].Status)
	r.mu.Unlock()

	return r.ChangeStatus(ctx, id, next)
}

// Archive removes a record unconditionally, bypassing failure injection.
func (r *Repository) Archive(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findByID(id)
	if idx < 0 {
		return errors.NewRecordNotFoundError(id)
	}
	return r.removeLocked(ctx, idx, "Record archived.")
}

// Unsave removes a record only while it is still at the Saved stage.
func (r *Repository) Unsave(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findByID(id)
	if idx < 0 {
		return errors.NewRecordNotFoundError(id)
	}
	if r.records[idx].Status != models.StatusSaved {
		r.hooks.Notify("Job already applied. Check your timeline.", models.NotifyInfo)
		return nil
	}
	return r.removeLocked(ctx, idx, "Job removed from saved list.")
}

func (r *Repository) removeLocked(ctx context.Context, idx int, message string) error {
	r.records = append(r.records[:idx], r.records[idx+1:]...)
	if err := r.persist(ctx, "remove"); err != nil {
		return err
	}
	r.hooks.Notify(message, models.NotifyInfo)
	return nil
}

// SeedDemo replaces the repository with n generated records for load testing.
// Every tenth record is Saved, the rest Applied.
func (r *Repository) SeedDemo(ctx context.Context, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]models.ApplicationRecord, 0, n)
	for i := 0; i < n; i++ {
		status := models.StatusApplied
		if i%10 == 0 {
			status = models.StatusSaved
		}
		records = append(records, models.ApplicationRecord{
			ID: uuid.New().String(),
			Job: models.Job{
				ID:      fmt.Sprintf("demo-%d", i+1),
				Title:   fmt.Sprintf("Demo Role %d", i+1),
				Company: fmt.Sprintf("Demo Company %d", i%7+1),
				Type:    "Full-time",
				Salary:  "Not specified",
			},
			Status:        status,
			AppliedDate:   r.now().AddDate(0, 0, -(i % 30)).Format("2006-01-02"),
			RelativeDate:  "Recently",
			ResumeVersion: defaultResumeVersion,
		})
	}
	r.records = records
	if err := r.persist(ctx, "seed_demo"); err != nil {
		return err
	}
	r.logger.Info("demo records seeded", map[string]interface{}{"count": n})
	return nil
}

// Get returns a copy of one record.
func (r *Repository) Get(id string) (models.ApplicationRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findByID(id)
	if idx < 0 {
		return models.ApplicationRecord{}, false
	}
	return r.records[idx], true
}

// List returns records for a view, optionally filtered by a title/company
// term, sorted by applied date descending.
func (r *Repository) List(view View, term string) []models.ApplicationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.ApplicationRecord, 0, len(r.records))
	for _, rec := range r.records {
		switch view {
		case ViewSaved:
			if rec.Status != models.StatusSaved {
				continue
			}
		case ViewApplied:
			if rec.Status == models.StatusSaved {
				continue
			}
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(rec.Job.Title), term) &&
			!strings.Contains(strings.ToLower(rec.Job.Company), term) {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppliedDate > out[j].AppliedDate
	})
	return out
}

// All returns a copy of every record in insertion order.
func (r *Repository) All() []models.ApplicationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ApplicationRecord(nil), r.records...)
}

// Count returns the number of records.
func (r *Repository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *Repository) findByJobID(jobID string) int {
	for i := range r.records {
		if r.records[i].Job.ID == jobID {
			return i
		}
	}
	return -1
}

func (r *Repository) findByID(id string) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}

// persist hands the full snapshot to the hook. Called with the lock held,
// strictly after the in-memory mutation.
func (r *Repository) persist(ctx context.Context, operation string) error {
	metrics.TrackerMutations.WithLabelValues(operation).Inc()
	snapshot := append([]models.ApplicationRecord(nil), r.records...)
	if err := r.hooks.Persist(ctx, snapshot); err != nil {
		metrics.TrackerMutationFailures.WithLabelValues(operation, "STORE_WRITE_FAILED").Inc()
		r.logger.Error("snapshot persist failed", map[string]interface{}{
			"operation": operation,
			"error":     err,
		})
		return err
	}
	return nil
}
