package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/go-playground/validator/v10"
)

// sessionController is the single owner of session phase and navigation.
// The mutex is never held across a backend call; results of calls are applied
// only when the generation they started under is still current.
type sessionController struct {
	BaseService
	api      ports.SessionAPI
	tokens   ports.TokenStore
	links    ports.DeepLinkResolver
	validate *validator.Validate

	storeMu    sync.Mutex // orders token store writes; taken before mu
	mu         sync.Mutex
	phase      domain.Phase
	session    domain.Session
	nav        domain.Navigation
	sessionGen uint64 // bumped by every session phase change
	navGen     uint64 // bumped by every navigation change
}

// SessionOption configures the session controller.
type SessionOption func(*sessionController)

// WithDeepLinkResolver sets the parser used by OpenDeepLink.
func WithDeepLinkResolver(links ports.DeepLinkResolver) SessionOption {
	return func(s *sessionController) {
		s.links = links
	}
}

// WithValidator replaces the form validator.
func WithValidator(v *validator.Validate) SessionOption {
	return func(s *sessionController) {
		s.validate = v
	}
}

// NewSessionController creates a controller in the CheckingAuth phase.
func NewSessionController(api ports.SessionAPI, tokens ports.TokenStore, opts ...SessionOption) portssvc.SessionControllerSvc {
	s := &sessionController{
		api:      api,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		phase:    domain.PhaseCheckingAuth,
		nav:      domain.NewNavigation(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ticket records the generations an async action started under.
type ticket struct {
	session uint64
	nav     uint64
}

// beginLocked starts a session-level action. Callers hold s.mu.
func (s *sessionController) beginLocked() ticket {
	s.sessionGen++
	return ticket{session: s.sessionGen, nav: s.navGen}
}

// isCurrentLocked reports whether nothing changed the session since t was taken.
func (s *sessionController) isCurrentLocked(t ticket) bool {
	return t.session == s.sessionGen
}

func (s *sessionController) enterPhaseLocked(p domain.Phase) {
	s.sessionGen++
	s.phase = p
}

func (s *sessionController) touchNavLocked() {
	s.navGen++
}

// --- Reader ---

func (s *sessionController) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *sessionController) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.session
	if s.session.Profile != nil {
		profile := *s.session.Profile
		session.Profile = &profile
	}
	return session
}

func (s *sessionController) SessionContext() ports.SessionContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ports.SessionContext{Token: s.session.Token}
}

func (s *sessionController) Navigation() domain.Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav
}

func (s *sessionController) Screen() domain.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Screen()
}

func (s *sessionController) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == domain.PhaseMain {
		return s.nav.Title()
	}
	return s.phase.Title()
}

// --- Session transitions ---

func (s *sessionController) Start(ctx context.Context) domain.Phase {
	s.mu.Lock()
	s.phase = domain.PhaseCheckingAuth
	t := s.beginLocked()
	s.mu.Unlock()

	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.LogWarn(ctx, "Failed to load stored session token", slog.String("error", err.Error()))
		return s.landLoggedOut(t)
	}
	if token == "" {
		return s.landLoggedOut(t)
	}

	profile, err := s.api.FetchMyProfile(ctx, ports.SessionContext{Token: token})
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			s.LogInfo(ctx, "Stored session token rejected, clearing it")
			if clearErr := s.clearToken(ctx); clearErr != nil {
				s.LogWarn(ctx, "Failed to clear rejected session token", slog.String("error", clearErr.Error()))
			}
		} else {
			s.LogWarn(ctx, "Failed to restore session", slog.String("error", err.Error()))
		}
		return s.landLoggedOut(t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isCurrentLocked(t) {
		return s.phase
	}
	s.signInLocked(token, profile, profile.Complete)
	return s.phase
}

func (s *sessionController) landLoggedOut(t ticket) domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isCurrentLocked(t) {
		s.session = domain.Session{}
		s.nav.Reset()
		s.touchNavLocked()
		s.enterPhaseLocked(domain.PhaseLoggedOut)
	}
	return s.phase
}

// signInLocked installs an authenticated session and branches on completeness.
func (s *sessionController) signInLocked(token string, profile *domain.Profile, complete bool) {
	s.session = domain.Session{Token: token, ProfileComplete: complete, Profile: profile}
	s.nav.Reset()
	s.touchNavLocked()
	if complete {
		s.enterPhaseLocked(domain.PhaseMain)
	} else {
		s.enterPhaseLocked(domain.PhaseNeedsProfileSetup)
	}
}

func (s *sessionController) requirePhaseLocked(want ...domain.Phase) error {
	for _, p := range want {
		if s.phase == p {
			return nil
		}
	}
	return fmt.Errorf("phase %s: %w", s.phase, apperrors.ErrInvalidState)
}

func (s *sessionController) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return userError(apperrors.ErrValidation, "Error", "Please enter both email and password")
	}

	s.mu.Lock()
	if err := s.requirePhaseLocked(domain.PhaseLoggedOut); err != nil {
		s.mu.Unlock()
		return err
	}
	t := s.beginLocked()
	s.mu.Unlock()

	token, err := s.api.ObtainToken(ctx, email, password)
	if err != nil {
		s.LogWarn(ctx, "Login failed", slog.String("error", err.Error()))
		return fmt.Errorf("login: %w", err)
	}

	sc := ports.SessionContext{Token: token}
	profile, err := s.api.FetchMyProfile(ctx, sc)
	complete := true
	if err != nil {
		// Completeness is unknown; let the user in rather than block on one read.
		s.LogWarn(ctx, "Failed to fetch profile after login", slog.String("error", err.Error()))
		profile = nil
	} else {
		complete = profile.Complete
	}

	s.mu.Lock()
	if !s.isCurrentLocked(t) {
		s.mu.Unlock()
		return fmt.Errorf("login: %w", apperrors.ErrStale)
	}
	s.signInLocked(token, profile, complete)
	s.mu.Unlock()

	s.persistToken(ctx, token)
	return nil
}

// persistToken saves token unless the session it belongs to has already
// ended. A Logout racing the save clears the store after it.
func (s *sessionController) persistToken(ctx context.Context, token string) {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	s.mu.Lock()
	current := s.session.Token == token
	s.mu.Unlock()
	if !current {
		s.LogInfo(ctx, "Session ended before its token was saved, skipping save")
		return
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		s.LogWarn(ctx, "Failed to persist session token", slog.String("error", err.Error()))
	}
}

func (s *sessionController) clearToken(ctx context.Context) error {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()
	return s.tokens.Clear(ctx)
}

func (s *sessionController) ShowSignUp() error {
	return s.moveBetween(domain.PhaseSigningUp, domain.PhaseLoggedOut)
}

func (s *sessionController) ShowPasswordReset() error {
	return s.moveBetween(domain.PhaseResettingPassword, domain.PhaseLoggedOut)
}

func (s *sessionController) BackToLogin() error {
	return s.moveBetween(domain.PhaseLoggedOut, domain.PhaseSigningUp, domain.PhaseResettingPassword)
}

func (s *sessionController) moveBetween(to domain.Phase, from ...domain.Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requirePhaseLocked(from...); err != nil {
		return err
	}
	s.enterPhaseLocked(to)
	return nil
}

func (s *sessionController) SignUp(ctx context.Context, form dto.SignUpForm) error {
	form.Email = strings.TrimSpace(form.Email)
	if err := s.validate.Struct(form); err != nil {
		return userError(apperrors.ErrValidation, "Error", describeValidation(err, signUpMessages))
	}

	s.mu.Lock()
	if err := s.requirePhaseLocked(domain.PhaseSigningUp); err != nil {
		s.mu.Unlock()
		return err
	}
	t := s.beginLocked()
	s.mu.Unlock()

	if err := s.api.SignUp(ctx, form.Email, form.Password); err != nil {
		s.LogWarn(ctx, "Sign up failed", slog.String("error", err.Error()))
		return fmt.Errorf("sign up: %w", err)
	}
	token, err := s.api.ObtainToken(ctx, form.Email, form.Password)
	if err != nil {
		s.LogError(ctx, err, "Login after sign up failed")
		return fmt.Errorf("login after sign up: %w", err)
	}

	s.mu.Lock()
	if !s.isCurrentLocked(t) {
		s.mu.Unlock()
		return fmt.Errorf("sign up: %w", apperrors.ErrStale)
	}
	// New accounts always go through profile setup.
	s.signInLocked(token, nil, false)
	s.mu.Unlock()

	s.persistToken(ctx, token)
	return nil
}

func (s *sessionController) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return userError(apperrors.ErrValidation, "Error", "Please enter a valid email address")
	}

	s.mu.Lock()
	err := s.requirePhaseLocked(domain.PhaseResettingPassword)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := s.api.RequestPasswordReset(ctx, email); err != nil {
		return fmt.Errorf("password reset: %w", err)
	}
	s.LogInfo(ctx, "Password reset requested")
	return nil
}

func (s *sessionController) CompleteProfile(ctx context.Context, form dto.ProfileForm) error {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.Surname = strings.TrimSpace(form.Surname)
	if err := s.validate.Struct(form); err != nil {
		return userError(apperrors.ErrValidation, "Error", describeValidation(err, profileMessages))
	}

	s.mu.Lock()
	if err := s.requirePhaseLocked(domain.PhaseNeedsProfileSetup); err != nil {
		s.mu.Unlock()
		return err
	}
	t := s.beginLocked()
	sc := ports.SessionContext{Token: s.session.Token}
	var profileID int64
	if s.session.Profile != nil {
		profileID = s.session.Profile.ProfileID
	}
	s.mu.Unlock()

	if profileID == 0 {
		current, err := s.api.FetchMyProfile(ctx, sc)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		profileID = current.ProfileID
	}

	updated, err := s.api.UpdateProfile(ctx, sc, profileID, form.ToUpdateRequest())
	if err != nil {
		s.LogWarn(ctx, "Profile update failed", slog.Int64("profile_id", profileID), slog.String("error", err.Error()))
		return fmt.Errorf("update profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isCurrentLocked(t) {
		return fmt.Errorf("update profile: %w", apperrors.ErrStale)
	}
	s.session.Profile = updated
	s.session.ProfileComplete = true
	s.enterPhaseLocked(domain.PhaseChoosingGroupPath)
	return nil
}

func (s *sessionController) ChooseJoin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requirePhaseLocked(domain.PhaseChoosingGroupPath); err != nil {
		return err
	}
	if err := s.nav.SwitchTab(domain.TabDiscovery); err != nil {
		return err
	}
	s.touchNavLocked()
	s.enterPhaseLocked(domain.PhaseMain)
	return nil
}

func (s *sessionController) ChooseCreate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requirePhaseLocked(domain.PhaseChoosingGroupPath); err != nil {
		return err
	}
	s.nav.Reset()
	if err := s.nav.Open(domain.Focus{Kind: domain.FocusCreateGroup}); err != nil {
		return err
	}
	s.touchNavLocked()
	s.enterPhaseLocked(domain.PhaseMain)
	return nil
}

func (s *sessionController) RefreshProfile(ctx context.Context) {
	s.mu.Lock()
	if !s.phase.IsAuthenticated() {
		s.mu.Unlock()
		return
	}
	t := ticket{session: s.sessionGen, nav: s.navGen}
	sc := ports.SessionContext{Token: s.session.Token}
	s.mu.Unlock()

	profile, err := s.api.FetchMyProfile(ctx, sc)
	if err != nil {
		s.LogWarn(ctx, "Failed to refresh profile status", slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isCurrentLocked(t) {
		s.LogDebug(ctx, "Dropping stale profile refresh")
		return
	}
	s.session.Profile = profile
	s.session.ProfileComplete = profile.Complete
}

func (s *sessionController) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = domain.Session{}
	s.nav.Reset()
	s.touchNavLocked()
	s.enterPhaseLocked(domain.PhaseLoggedOut)
	s.mu.Unlock()

	if err := s.clearToken(ctx); err != nil {
		s.LogError(ctx, err, "Failed to clear session token on logout")
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// --- Navigation ---

func (s *sessionController) SwitchTab(tab domain.Tab) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requirePhaseLocked(domain.PhaseMain); err != nil {
		return err
	}
	if err := s.nav.SwitchTab(tab); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	s.touchNavLocked()
	return nil
}

func (s *sessionController) Open(focus domain.Focus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requirePhaseLocked(domain.PhaseMain); err != nil {
		return err
	}
	if err := s.nav.Open(focus); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	s.touchNavLocked()
	return nil
}

func (s *sessionController) Close(kind domain.FocusKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseMain {
		return false
	}
	if !s.nav.Close(kind) {
		return false
	}
	s.touchNavLocked()
	return true
}

func (s *sessionController) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseMain {
		return false
	}
	if _, ok := s.nav.Back(); !ok {
		return false
	}
	s.touchNavLocked()
	return true
}

func (s *sessionController) OpenDeepLink(ctx context.Context, rawURL string) error {
	s.mu.Lock()
	if s.phase != domain.PhaseMain {
		phase := s.phase
		s.mu.Unlock()
		s.LogInfo(ctx, "Dropping deep link received outside the main screen",
			slog.String("url", rawURL), slog.String("phase", string(phase)))
		return fmt.Errorf("deep link: %w", apperrors.ErrInvalidState)
	}
	if s.links == nil {
		s.mu.Unlock()
		return fmt.Errorf("deep link: no resolver configured: %w", apperrors.ErrValidation)
	}
	s.touchNavLocked()
	t := ticket{session: s.sessionGen, nav: s.navGen}
	sc := ports.SessionContext{Token: s.session.Token}
	s.mu.Unlock()

	target, err := s.links.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("deep link %q: %w", rawURL, err)
	}

	var focus domain.Focus
	switch target.Kind {
	case ports.DeepLinkGroup:
		group, err := s.api.FetchGroup(ctx, sc, target.ID)
		if err != nil {
			s.LogWarn(ctx, "Failed to resolve group deep link", slog.Int64("group_id", target.ID), slog.String("error", err.Error()))
			return fmt.Errorf("fetch group %d: %w", target.ID, err)
		}
		focus = domain.Focus{Kind: domain.FocusGroupFeed, Ref: domain.EntityRef{ID: group.GroupID, Name: group.Name}}
	case ports.DeepLinkPost:
		post, err := s.api.FetchPost(ctx, sc, target.ID)
		if err != nil {
			s.LogWarn(ctx, "Failed to resolve post deep link", slog.Int64("post_id", target.ID), slog.String("error", err.Error()))
			return fmt.Errorf("fetch post %d: %w", target.ID, err)
		}
		focus = domain.Focus{Kind: domain.FocusPostDetail, Ref: domain.EntityRef{ID: post.PostID}}
	default:
		return fmt.Errorf("deep link kind %q: %w", target.Kind, apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isCurrentLocked(t) || t.nav != s.navGen || s.phase != domain.PhaseMain {
		s.LogDebug(ctx, "Dropping stale deep link result", slog.String("url", rawURL))
		return fmt.Errorf("deep link: %w", apperrors.ErrStale)
	}
	if err := s.nav.FocusOnly(focus); err != nil {
		return err
	}
	s.touchNavLocked()
	return nil
}

var _ portssvc.SessionControllerSvc = (*sessionController)(nil)
