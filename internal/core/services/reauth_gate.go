package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
)

type reauthGate struct {
	BaseService
	challenger        ports.Challenger
	alerter           ports.Alerter
	requireStrongAuth bool
}

// NewReauthGate creates the gate in front of money movements.
// With requireStrongAuth set, a device that cannot run a challenge is refused
// instead of waved through.
func NewReauthGate(challenger ports.Challenger, alerter ports.Alerter, requireStrongAuth bool) portssvc.ReauthGateSvc {
	return &reauthGate{
		challenger:        challenger,
		alerter:           alerter,
		requireStrongAuth: requireStrongAuth,
	}
}

func (g *reauthGate) Confirm(ctx context.Context, reason string) bool {
	if g.challenger == nil || !g.challenger.IsAvailable(ctx) {
		if g.requireStrongAuth {
			g.LogWarn(ctx, "Re-authentication unavailable, refusing", slog.String("reason", reason))
			g.alert(ctx, ports.Alert{
				Title:   "Authentication Unavailable",
				Message: "This device cannot verify your identity. Set up a device passcode to move money.",
			})
			return false
		}
		g.LogWarn(ctx, "Re-authentication unavailable, bypassing", slog.String("reason", reason))
		return true
	}

	err := g.challenger.Challenge(ctx, reason)
	switch {
	case err == nil:
		return true
	case errors.Is(err, apperrors.ErrChallengeCancelled), errors.Is(err, context.Canceled):
		g.LogInfo(ctx, "Re-authentication cancelled", slog.String("reason", reason))
		return false
	default:
		g.LogWarn(ctx, "Re-authentication failed", slog.String("reason", reason), slog.String("error", err.Error()))
		g.alert(ctx, ports.Alert{
			Title:   "Authentication Failed",
			Message: "Could not verify your identity. Please try again.",
		})
		return false
	}
}

func (g *reauthGate) alert(ctx context.Context, a ports.Alert) {
	if g.alerter != nil {
		g.alerter.Alert(ctx, a)
	}
}

var _ portssvc.ReauthGateSvc = (*reauthGate)(nil)
