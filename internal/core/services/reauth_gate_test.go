package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const sendReason = "Authenticate to send $20.00 to Kofi Boateng"

func TestReauthGate_Success(t *testing.T) {
	ctx := context.Background()
	challenger := new(MockChallenger)
	alerter := &recordingAlerter{}
	challenger.On("IsAvailable", ctx).Return(true).Once()
	challenger.On("Challenge", ctx, sendReason).Return(nil).Once()

	gate := services.NewReauthGate(challenger, alerter, true)

	assert.True(t, gate.Confirm(ctx, sendReason))
	assert.Empty(t, alerter.All())
	challenger.AssertExpectations(t)
}

func TestReauthGate_CancelIsSilent(t *testing.T) {
	ctx := context.Background()
	for _, cancelErr := range []error{apperrors.ErrChallengeCancelled, fmt.Errorf("prompt: %w", context.Canceled)} {
		challenger := new(MockChallenger)
		alerter := &recordingAlerter{}
		challenger.On("IsAvailable", ctx).Return(true).Once()
		challenger.On("Challenge", ctx, sendReason).Return(cancelErr).Once()

		gate := services.NewReauthGate(challenger, alerter, true)

		assert.False(t, gate.Confirm(ctx, sendReason))
		assert.Empty(t, alerter.All())
	}
}

func TestReauthGate_FailureAlerts(t *testing.T) {
	ctx := context.Background()
	challenger := new(MockChallenger)
	alerter := &recordingAlerter{}
	challenger.On("IsAvailable", ctx).Return(true).Once()
	challenger.On("Challenge", ctx, sendReason).Return(fmt.Errorf("%w: wrong passcode", apperrors.ErrChallengeFailed)).Once()

	gate := services.NewReauthGate(challenger, alerter, true)

	assert.False(t, gate.Confirm(ctx, sendReason))
	assert.Equal(t, "Authentication Failed", alerter.Last().Title)
	assert.Equal(t, "Could not verify your identity. Please try again.", alerter.Last().Message)
}

func TestReauthGate_UnavailableRefusedWhenStrongAuthRequired(t *testing.T) {
	ctx := context.Background()
	challenger := new(MockChallenger)
	alerter := &recordingAlerter{}
	challenger.On("IsAvailable", ctx).Return(false).Once()

	gate := services.NewReauthGate(challenger, alerter, true)

	assert.False(t, gate.Confirm(ctx, sendReason))
	assert.Equal(t, "Authentication Unavailable", alerter.Last().Title)
	challenger.AssertNotCalled(t, "Challenge", mock.Anything, mock.Anything)
}

func TestReauthGate_UnavailableBypassedWhenAllowed(t *testing.T) {
	ctx := context.Background()
	challenger := new(MockChallenger)
	alerter := &recordingAlerter{}
	challenger.On("IsAvailable", ctx).Return(false).Once()

	gate := services.NewReauthGate(challenger, alerter, false)

	assert.True(t, gate.Confirm(ctx, sendReason))
	assert.Empty(t, alerter.All())
	challenger.AssertNotCalled(t, "Challenge", mock.Anything, mock.Anything)
}

func TestReauthGate_NoChallenger(t *testing.T) {
	ctx := context.Background()

	assert.False(t, services.NewReauthGate(nil, nil, true).Confirm(ctx, sendReason))
	assert.True(t, services.NewReauthGate(nil, nil, false).Confirm(ctx, sendReason))
}

func TestAlertFor(t *testing.T) {
	_, shown := services.AlertFor(services.OpSendMoney, nil)
	assert.False(t, shown)

	_, shown = services.AlertFor(services.OpSendMoney, fmt.Errorf("send: %w", apperrors.ErrReauthDeclined))
	assert.False(t, shown)

	alert, shown := services.AlertFor(services.OpSendMoney, errors.New("dial tcp: i/o timeout"))
	assert.True(t, shown)
	assert.Equal(t, "Connection Problem", alert.Title)

	alert, shown = services.AlertFor(services.OpContribute, fmt.Errorf("contribute: %w", apperrors.NewServerError(500, "")))
	assert.True(t, shown)
	assert.Equal(t, "Failed to process contribution. Please try again.", alert.Message)
}
