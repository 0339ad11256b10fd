// internal/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"careerpilot/internal/common/errors"
	"careerpilot/internal/common/logger"
	"careerpilot/internal/models"
	"careerpilot/internal/quota"

	"github.com/google/uuid"
)

// minPasswordLength is the only credential rule; authentication is simulated
// and nothing is checked against a backend.
const minPasswordLength = 6

// ProfileExtractor parses sign-up profile data from resume text.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, resume string) (*models.ExtractedProfile, error)
}

// Notifier emits toast notifications.
type Notifier interface {
	Push(message string, kind models.NotificationType)
}

// Service owns the single local user account.
type Service struct {
	mu        sync.Mutex
	user      models.User
	extractor ProfileExtractor
	quota     *quota.Manager
	notifier  Notifier
	persist   func(ctx context.Context, user models.User) error
	logger    logger.Logger
}

func NewService(user models.User, extractor ProfileExtractor, quotaMgr *quota.Manager, notifier Notifier, persist func(ctx context.Context, user models.User) error, log logger.Logger) *Service {
	if persist == nil {
		persist = func(context.Context, models.User) error { return nil }
	}
	return &Service{
		user:      user,
		extractor: extractor,
		quota:     quotaMgr,
		notifier:  notifier,
		persist:   persist,
		logger:    log.WithFields(map[string]interface{}{"component": "auth"}),
	}
}

// Current returns a copy of the active user.
func (s *Service) Current() models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SignIn validates credentials locally and activates a scholar session.
// Emails containing "admin" sign in with the admin role.
func (s *Service) SignIn(ctx context.Context, email, password string) (models.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = buildUser(email, "")
	if err := s.persist(ctx, s.user); err != nil {
		return models.User{}, err
	}

	s.notify(fmt.Sprintf("Auth Success: Welcome back, %s.", s.user.Name), models.NotifySuccess)
	s.logger.Info("user signed in", map[string]interface{}{
		"userId": s.user.ID,
		"role":   string(s.user.Role),
	})
	return s.user, nil
}

// SignUp creates the account. When resume text is supplied the profile is
// extracted through the advisor, gated by the daily quota and logged as a
// parse-profile interaction. Extraction failures fall back to a plain
// account; sign-up itself never fails because of them.
func (s *Service) SignUp(ctx context.Context, email, password, resumeText string) (models.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return models.User{}, err
	}

	name := ""
	var profile *models.UserProfile

	if resumeText != "" && s.extractor != nil {
		if err := s.quota.Allow(s.currentRole()); err != nil {
			s.notify("AI Rate Limit: Daily quota exceeded.", models.NotifyError)
		} else {
			extracted, err := s.extractor.ExtractProfile(ctx, resumeText)
			if err != nil {
				s.logger.Warn("resume parse failed during sign-up", map[string]interface{}{
					"error": err,
				})
				s.notify("Could not parse resume. Please enter details manually.", models.NotifyWarning)
			} else {
				name = extracted.Name
				if extracted.Email != "" {
					email = extracted.Email
				}
				profileCopy := extracted.Profile
				profile = &profileCopy
				_ = s.quota.Record(ctx, models.ActionParseProfile,
					"Extracted profile from uploaded resume",
					fmt.Sprintf("Parsed name: %s", extracted.Name),
					s.currentRole())
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = buildUser(email, name)
	s.user.Profile = profile
	if err := s.persist(ctx, s.user); err != nil {
		return models.User{}, err
	}

	s.notify(fmt.Sprintf("Auth Success: Welcome back, %s.", s.user.Name), models.NotifySuccess)
	return s.user, nil
}

// Logout resets the session to the guest user.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = models.GuestUser()
	if err := s.persist(ctx, s.user); err != nil {
		return err
	}

	s.notify("Session terminated: Logged out securely.", models.NotifyInfo)
	return nil
}

// ToggleRole flips between scholar and admin for demos.
func (s *Service) ToggleRole(ctx context.Context) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user.Role == models.RoleAdmin {
		s.user.Role = models.RoleScholar
	} else {
		s.user.Role = models.RoleAdmin
	}
	if err := s.persist(ctx, s.user); err != nil {
		return models.User{}, err
	}

	s.notify(fmt.Sprintf("System: Permissions escalated to %s", s.user.Role), models.NotifyInfo)
	return s.user, nil
}

func (s *Service) currentRole() models.UserRole {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Role
}

func (s *Service) notify(message string, kind models.NotificationType) {
	if s.notifier != nil {
		s.notifier.Push(message, kind)
	}
}

func validateCredentials(email, password string) error {
	if !strings.Contains(email, "@") {
		return errors.NewValidationFailedError("a valid email address is required")
	}
	if len(password) < minPasswordLength {
		return errors.NewValidationFailedError("Security requirement: Password must be at least 6 characters.")
	}
	return nil
}

func buildUser(email, name string) models.User {
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	role := models.RoleScholar
	if strings.Contains(email, "admin") {
		role = models.RoleAdmin
	}
	return models.User{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		Role:       role,
		IsLoggedIn: true,
	}
}
