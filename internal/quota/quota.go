// internal/quota/quota.go
package quota

import (
	"context"
	"sync"
	"time"

	"careerpilot/internal/common/errors"
	"careerpilot/internal/common/logger"
	"careerpilot/internal/common/metrics"
	"careerpilot/internal/models"

	"github.com/google/uuid"
)

// previewLimit caps the stored response preview length in runes.
const previewLimit = 120

// Hooks persist the stats and history snapshots after each change.
type Hooks struct {
	PersistStats   func(ctx context.Context, stats models.UserStats) error
	PersistHistory func(ctx context.Context, history []models.PromptLog) error
}

// Manager enforces the daily advisory quota and keeps the interaction log,
// newest entry first. The counter rolls over at local midnight.
type Manager struct {
	mu      sync.Mutex
	stats   models.UserStats
	history []models.PromptLog
	hooks   Hooks
	now     func() time.Time
	logger  logger.Logger
}

func NewManager(stats models.UserStats, history []models.PromptLog, hooks Hooks, log logger.Logger) *Manager {
	if hooks.PersistStats == nil {
		hooks.PersistStats = func(context.Context, models.UserStats) error { return nil }
	}
	if hooks.PersistHistory == nil {
		hooks.PersistHistory = func(context.Context, []models.PromptLog) error { return nil }
	}
	return &Manager{
		stats:   stats,
		history: append([]models.PromptLog(nil), history...),
		hooks:   hooks,
		now:     time.Now,
		logger:  log.WithFields(map[string]interface{}{"component": "quota"}),
	}
}

// SetClock overrides the manager clock, used in tests.
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Allow reports whether another advisory call may proceed. Admins bypass the
// quota entirely. Checked before any network call is made.
func (m *Manager) Allow(role models.UserRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rolloverLocked()

	if role == models.RoleAdmin {
		return nil
	}
	if m.stats.PromptsToday >= m.stats.MaxPrompts {
		metrics.QuotaRejections.Inc()
		m.logger.Warn("daily quota exceeded", map[string]interface{}{
			"promptsToday": m.stats.PromptsToday,
			"maxPrompts":   m.stats.MaxPrompts,
		})
		return errors.NewQuotaExceededError(m.stats.PromptsToday, m.stats.MaxPrompts)
	}
	return nil
}

// Record logs a completed advisory interaction and bumps the counters.
func (m *Manager) Record(ctx context.Context, action models.PromptAction, prompt, responsePreview string, role models.UserRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rolloverLocked()

	if runes := []rune(responsePreview); len(runes) > previewLimit {
		responsePreview = string(runes[:previewLimit])
	}

	entry := models.PromptLog{
		ID:              uuid.New().String(),
		Timestamp:       m.now(),
		Action:          action,
		Prompt:          prompt,
		ResponsePreview: responsePreview,
		Role:            role,
	}
	m.history = append([]models.PromptLog{entry}, m.history...)

	m.stats.PromptsToday++
	m.stats.TotalPrompts++
	m.stats.LastActive = m.now()

	if err := m.hooks.PersistStats(ctx, m.stats); err != nil {
		return err
	}
	return m.hooks.PersistHistory(ctx, m.history)
}

// Stats returns a copy of the current usage counters.
func (m *Manager) Stats() models.UserStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolloverLocked()
	return m.stats
}

// History returns a copy of the interaction log, newest first.
func (m *Manager) History() []models.PromptLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.PromptLog(nil), m.history...)
}

// SeedHistory replaces the log with three demo rows via the debug surface.
func (m *Manager) SeedHistory(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.history = []models.PromptLog{
		{
			ID:              uuid.New().String(),
			Timestamp:       now.Add(-10 * time.Minute),
			Action:          models.ActionAnalyze,
			Prompt:          "Analyze resume against Senior Frontend Engineer at TechFlow Solutions",
			ResponsePreview: "Score 82, READY. Strong skills match, minor ATS notes.",
			Role:            models.RoleScholar,
		},
		{
			ID:              uuid.New().String(),
			Timestamp:       now.Add(-2 * time.Hour),
			Action:          models.ActionPractice,
			Prompt:          "Generate a practice question on distributed systems",
			ResponsePreview: "Explain how you would design a rate limiter...",
			Role:            models.RoleScholar,
		},
		{
			ID:              uuid.New().String(),
			Timestamp:       now.Add(-26 * time.Hour),
			Action:          models.ActionSummarize,
			Prompt:          "Summarize job description for Staff Software Developer",
			ResponsePreview: "- Lead the core platform team...",
			Role:            models.RoleScholar,
		},
	}
	return m.hooks.PersistHistory(ctx, m.history)
}

// rolloverLocked resets the daily counter when the last activity happened on
// an earlier local day.
func (m *Manager) rolloverLocked() {
	if m.stats.LastActive.IsZero() {
		return
	}
	now := m.now()
	y1, m1, d1 := m.stats.LastActive.Local().Date()
	y2, m2, d2 := now.Local().Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		if now.After(m.stats.LastActive) {
			m.stats.PromptsToday = 0
		}
	}
}
