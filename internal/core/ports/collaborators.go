package ports

import "context"

// SessionContext carries the credentials of the signed-in user into every backend call.
// An empty Token makes the call anonymous.
type SessionContext struct {
	Token string
}

// Anonymous is the SessionContext used before login.
var Anonymous = SessionContext{}

// TokenStore persists the session token across launches.
type TokenStore interface {
	// Save replaces any stored token.
	Save(ctx context.Context, token string) error
	// Load returns the stored token, or "" when none is stored.
	Load(ctx context.Context) (string, error)
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Challenger runs a local biometric or device-credential check.
type Challenger interface {
	// IsAvailable reports whether the device can run a challenge at all.
	IsAvailable(ctx context.Context) bool
	// Challenge prompts with reason. It returns nil on success,
	// apperrors.ErrChallengeCancelled when the user backs out, and any other error on failure.
	Challenge(ctx context.Context, reason string) error
}

// DeepLinkKind is the entity type a deep link points at.
type DeepLinkKind string

const (
	DeepLinkGroup DeepLinkKind = "group"
	DeepLinkPost  DeepLinkKind = "post"
)

// DeepLinkTarget is a parsed deep link.
type DeepLinkTarget struct {
	Kind DeepLinkKind
	ID   int64
}

// DeepLinkResolver parses incoming URLs.
type DeepLinkResolver interface {
	Parse(rawURL string) (DeepLinkTarget, error)
}

// Alert is a blocking message shown to the user.
type Alert struct {
	Title   string
	Message string
}

// Alerter presents alerts.
type Alerter interface {
	Alert(ctx context.Context, alert Alert)
}
