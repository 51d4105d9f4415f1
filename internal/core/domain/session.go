package domain

// Phase is the top-level state of the client session.
type Phase string

const (
	PhaseCheckingAuth      Phase = "CHECKING_AUTH"
	PhaseLoggedOut         Phase = "LOGGED_OUT"
	PhaseSigningUp         Phase = "SIGNING_UP"
	PhaseResettingPassword Phase = "RESETTING_PASSWORD"
	PhaseNeedsProfileSetup Phase = "NEEDS_PROFILE_SETUP"
	PhaseChoosingGroupPath Phase = "CHOOSING_GROUP_PATH"
	PhaseMain              Phase = "MAIN"
)

// IsAuthenticated reports whether the phase is past the login gate.
func (p Phase) IsAuthenticated() bool {
	switch p {
	case PhaseNeedsProfileSetup, PhaseChoosingGroupPath, PhaseMain:
		return true
	default:
		return false
	}
}

// IsUnauthenticated reports whether the phase is one of the login-gate sub-states.
func (p Phase) IsUnauthenticated() bool {
	switch p {
	case PhaseLoggedOut, PhaseSigningUp, PhaseResettingPassword:
		return true
	default:
		return false
	}
}

// Session is the client's view of the authenticated user.
type Session struct {
	Token           string   `json:"-"`
	ProfileComplete bool     `json:"profileComplete"`
	Profile         *Profile `json:"profile,omitempty"`
}

// IsAuthenticated reports whether a token is held.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Title is the header label shown while in the phase outside Main.
func (p Phase) Title() string {
	switch p {
	case PhaseCheckingAuth:
		return "Loading"
	case PhaseLoggedOut:
		return "Sign In"
	case PhaseSigningUp:
		return "Create Account"
	case PhaseResettingPassword:
		return "Reset Password"
	case PhaseNeedsProfileSetup:
		return "Complete Your Profile"
	case PhaseChoosingGroupPath:
		return "Get Started"
	default:
		return ""
	}
}
