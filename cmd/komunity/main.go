// Command komunity drives the Komunity client core from a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/komunity_app/internal/adapters/challenge"
	"github.com/SscSPs/komunity_app/internal/adapters/console"
	"github.com/SscSPs/komunity_app/internal/adapters/deeplink"
	"github.com/SscSPs/komunity_app/internal/adapters/restapi"
	"github.com/SscSPs/komunity_app/internal/adapters/tokenstore"
	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/core/services"
	"github.com/SscSPs/komunity_app/internal/platform/config"
	"github.com/SscSPs/komunity_app/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagAPIURL            = "api-url"
	flagRequireStrongAuth = "require-strong-auth"
)

// errShown marks a failure the user has already been told about.
var errShown = errors.New("already reported")

// app is the wired client core for one invocation.
type app struct {
	cfg     *config.ClientConfig
	out     io.Writer
	errOut  io.Writer
	alerter *console.Alerter
	session portssvc.SessionControllerSvc
	wallet  portssvc.WalletFlowSvc
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errShown) {
			fmt.Fprintf(os.Stderr, "komunity: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "komunity",
		Short:         "Komunity client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().String(flagAPIURL, "", "base URL of the Komunity API (overrides KOMUNITY_API_URL)")
	cmd.PersistentFlags().Bool(flagRequireStrongAuth, true, "refuse money movements when no device passcode can be checked")

	cmd.AddCommand(
		newLoginCommand(a),
		newSignUpCommand(a),
		newResetPasswordCommand(a),
		newLogoutCommand(a),
		newWhoAmICommand(a),
		newProfileCommand(a),
		newTabCommand(a),
		newOpenCommand(a),
		newWalletCommand(a),
		newFundsCommand(a),
	)
	return cmd
}

// load reads configuration, wires the client core and restores the stored session.
func (a *app) load(cmd *cobra.Command) error {
	if f := cmd.Flags().Lookup(flagAPIURL); f != nil && f.Changed {
		if err := viper.BindPFlag("KOMUNITY_API_URL", f); err != nil {
			return err
		}
	}
	if f := cmd.Flags().Lookup(flagRequireStrongAuth); f != nil && f.Changed {
		if err := viper.BindPFlag("REQUIRE_STRONG_AUTH", f); err != nil {
			return err
		}
	}

	cfg, err := config.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	logging.Setup(cfg.LogLevel)

	api, err := restapi.New(cfg.APIURL, cfg.AuthScheme, restapi.WithTimeout(cfg.HTTPTimeout))
	if err != nil {
		return err
	}
	tokens, err := newTokenStore(cfg)
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	a.cfg = cfg
	a.out = cmd.OutOrStdout()
	a.errOut = errOut
	a.alerter = console.NewAlerter(errOut)
	a.session = services.NewSessionController(api, tokens,
		services.WithDeepLinkResolver(deeplink.NewResolver(cfg.DeepLinkScheme, cfg.DeepLinkHosts)))
	gate := services.NewReauthGate(
		challenge.NewPasscodeChallenger(cfg.DevicePasscodeHash, challenge.WithTerminal(os.Stdin, errOut)),
		a.alerter,
		cfg.RequireStrongAuth,
	)
	a.wallet = services.NewWalletFlow(api, a.session,
		services.WithReauthGate(gate),
		services.WithAlerter(a.alerter))

	a.session.Start(cmd.Context())
	return nil
}

func newTokenStore(cfg *config.ClientConfig) (ports.TokenStore, error) {
	if cfg.TokenStore == config.TokenStoreMemory {
		return tokenstore.NewMemoryStore(), nil
	}
	return tokenstore.NewFileStore(cfg.TokenStorePath, cfg.TokenStorePassphrase)
}

// present shows err as an alert for op and marks it reported.
func (a *app) present(ctx context.Context, op services.Operation, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.KindOf(err) == apperrors.KindCancelled {
		fmt.Fprintln(a.errOut, "Cancelled.")
		return fmt.Errorf("%w: %w", errShown, err)
	}
	if alert, ok := services.AlertFor(op, err); ok {
		a.alerter.Alert(ctx, alert)
	}
	return fmt.Errorf("%w: %w", errShown, err)
}

// reported marks an error the wallet flow has already alerted on.
func (a *app) reported(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.KindOf(err) == apperrors.KindCancelled || errors.Is(err, apperrors.ErrReauthDeclined) {
		fmt.Fprintln(a.errOut, "Not confirmed, nothing was sent.")
	}
	return fmt.Errorf("%w: %w", errShown, err)
}

// requireMain fails unless the restored session reached the main screen.
func (a *app) requireMain() error {
	phase := a.session.Phase()
	if phase.IsAuthenticated() {
		if phase != domain.PhaseMain {
			return fmt.Errorf("finish setting up your account first (%s)", phase.Title())
		}
		return nil
	}
	return errors.New("not signed in, run `komunity login` first")
}
