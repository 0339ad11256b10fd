// internal/gesture/gesture.go
package gesture

import (
	"math"
	"time"

	"careerpilot/internal/common/metrics"
	"careerpilot/internal/models"
)

// Action is the interaction a finished session resolves to.
type Action string

const (
	ActionNone    Action = "none"
	ActionTap     Action = "tap"
	ActionAdvance Action = "advance"
	ActionApply   Action = "apply"
	ActionArchive Action = "archive"
	ActionUnsave  Action = "unsave"
	ActionCancel  Action = "cancel"
)

// Phase is the session's current state.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhasePressing     Phase = "pressing"
	PhaseDragTracking Phase = "drag_tracking"
	PhaseLongPressing Phase = "long_pressing"
)

// Config tunes the session thresholds.
type Config struct {
	LongPressDelay  time.Duration
	JitterTolerance float64
	CommitThreshold float64
}

// DefaultConfig matches the interaction defaults: 600ms hold, 15-unit jitter
// window, 100-unit commit threshold.
func DefaultConfig() Config {
	return Config{
		LongPressDelay:  600 * time.Millisecond,
		JitterTolerance: 15,
		CommitThreshold: 100,
	}
}

// Session is the per-record press/drag state machine. Mouse and touch feed
// the same position stream. The long-press timer is evaluated lazily against
// the injected clock on every Move and Release, so no real timer runs.
type Session struct {
	cfg    Config
	status models.ApplicationStatus
	now    func() time.Time
	haptic func()

	phase     Phase
	pressedAt time.Time
	originX   float64
	offset    float64
}

// NewSession creates a session for a record currently at the given status.
func NewSession(cfg Config, status models.ApplicationStatus, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		cfg:    cfg,
		status: status,
		now:    now,
		phase:  PhaseIdle,
	}
}

// SetHaptic registers an optional feedback callback fired when a long press
// is recognized. It is a side channel, not part of the machine.
func (s *Session) SetHaptic(fn func()) {
	s.haptic = fn
}

// Phase returns the current session phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Offset returns the horizontal displacement since Press.
func (s *Session) Offset() float64 {
	return s.offset
}

// Press starts a session at position x and arms the long-press timer.
func (s *Session) Press(x float64) {
	s.phase = PhasePressing
	s.pressedAt = s.now()
	s.originX = x
	s.offset = 0
}

// Move feeds a position update. Movement past the jitter tolerance before
// the timer fires commits the session to drag tracking; once the timer has
// fired, movement is ignored.
func (s *Session) Move(x float64) {
	switch s.phase {
	case PhasePressing:
		if s.timerFired() {
			s.enterLongPress()
			return
		}
		s.offset = x - s.originX
		if math.Abs(s.offset) > s.cfg.JitterTolerance {
			s.phase = PhaseDragTracking
		}
	case PhaseDragTracking:
		s.offset = x - s.originX
	case PhaseLongPressing:
		// drag suppressed for the rest of the session
	}
}

// Release ends the session and resolves it to an action. The session returns
// to Idle and the offset resets regardless of outcome.
func (s *Session) Release() Action {
	action := s.resolve()
	s.phase = PhaseIdle
	s.offset = 0
	if action != ActionNone {
		metrics.GestureCommits.WithLabelValues(string(action)).Inc()
	}
	return action
}

func (s *Session) resolve() Action {
	switch s.phase {
	case PhasePressing:
		if s.timerFired() {
			s.enterLongPress()
			return ActionNone
		}
		return ActionTap

	case PhaseDragTracking:
		switch {
		case s.offset > s.cfg.CommitThreshold:
			if s.status == models.StatusSaved {
				return ActionApply
			}
			return ActionAdvance
		case s.offset < -s.cfg.CommitThreshold:
			if s.status == models.StatusSaved {
				return ActionUnsave
			}
			return ActionArchive
		default:
			return ActionCancel
		}

	case PhaseLongPressing:
		return ActionNone

	default:
		return ActionNone
	}
}

func (s *Session) timerFired() bool {
	return s.now().Sub(s.pressedAt) >= s.cfg.LongPressDelay
}

func (s *Session) enterLongPress() {
	s.phase = PhaseLongPressing
	s.offset = 0
	if s.haptic != nil {
		s.haptic()
	}
}
