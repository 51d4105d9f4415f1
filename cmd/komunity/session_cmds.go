package main

import (
	"fmt"
	"strings"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/core/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/spf13/cobra"
)

func newLoginCommand(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.session.Phase().IsAuthenticated() {
				fmt.Fprintln(a.out, "Already signed in.")
				return nil
			}
			pw, err := secretFlag(password, "Password: ", a.errOut)
			if err != nil {
				return err
			}
			if err := a.session.Login(cmd.Context(), email, pw); err != nil {
				return a.present(cmd.Context(), services.OpLogin, err)
			}
			fmt.Fprintln(a.out, a.session.Title())
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newSignUpCommand(a *app) *cobra.Command {
	var form dto.SignUpForm
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.ShowSignUp(); err != nil {
				return err
			}
			var err error
			if form.Password, err = secretFlag(form.Password, "Password: ", a.errOut); err != nil {
				return err
			}
			if form.ConfirmPassword == "" {
				if form.ConfirmPassword, err = readSecret("Confirm password: ", a.errOut); err != nil {
					return err
				}
			}
			if err := a.session.SignUp(cmd.Context(), form); err != nil {
				return a.present(cmd.Context(), services.OpSignUp, err)
			}
			fmt.Fprintln(a.out, a.session.Title())
			return nil
		},
	}
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "password, at least 8 characters (prompted when omitted)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "password again (prompted when omitted)")
	return cmd
}

func newResetPasswordCommand(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Email a password reset link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.ShowPasswordReset(); err != nil {
				return err
			}
			if err := a.session.RequestPasswordReset(cmd.Context(), email); err != nil {
				return a.present(cmd.Context(), services.OpPasswordReset, err)
			}
			fmt.Fprintln(a.out, "If an account exists for that email, a reset link is on its way.")
			return a.session.BackToLogin()
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.session.Phase().IsAuthenticated() {
				fmt.Fprintln(a.out, "Not signed in.")
				return nil
			}
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Signed out.")
			return nil
		},
	}
}

func newWhoAmICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := a.session.Session()
			if !session.IsAuthenticated() {
				fmt.Fprintln(a.out, "Not signed in.")
				return nil
			}
			if p := session.Profile; p != nil {
				name := p.FullName()
				if name == "" {
					name = "(no name yet)"
				}
				fmt.Fprintf(a.out, "%s (user %d)\n", name, p.UserID)
			}
			fmt.Fprintf(a.out, "Profile complete: %t\nScreen: %s\n", session.ProfileComplete, a.session.Title())
			return nil
		},
	}
}

func newProfileCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}

	var form dto.ProfileForm
	var path string
	setup := &cobra.Command{
		Use:   "setup",
		Short: "Complete your profile and choose how to start",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.CompleteProfile(cmd.Context(), form); err != nil {
				return a.present(cmd.Context(), services.OpProfileSetup, err)
			}
			switch strings.ToLower(path) {
			case "join":
				if err := a.session.ChooseJoin(); err != nil {
					return err
				}
			case "create":
				if err := a.session.ChooseCreate(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("--then must be join or create, got %q", path)
			}
			fmt.Fprintln(a.out, a.session.Title())
			return nil
		},
	}
	setup.Flags().StringVar(&form.FirstName, "first-name", "", "first name")
	setup.Flags().StringVar(&form.Surname, "surname", "", "surname")
	setup.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	setup.Flags().StringVar(&form.Bio, "bio", "", "short bio")
	setup.Flags().StringVar(&path, "then", "join", "join an existing group or create one")

	cmd.AddCommand(setup)
	return cmd
}

func newTabCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "tab home|discovery|wallet|profile",
		Short:     "Switch to a tab and print the screen title",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.TabHome), string(domain.TabDiscovery), string(domain.TabWallet), string(domain.TabProfile)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireMain(); err != nil {
				return err
			}
			if err := a.session.SwitchTab(domain.Tab(strings.ToLower(args[0]))); err != nil {
				return err
			}
			fmt.Fprintln(a.out, a.session.Title())
			return nil
		},
	}
}

func newOpenCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open URL",
		Short: "Follow a group or post link and print the screen title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireMain(); err != nil {
				return err
			}
			if err := a.session.OpenDeepLink(cmd.Context(), args[0]); err != nil {
				return a.present(cmd.Context(), services.OpDeepLink, err)
			}
			fmt.Fprintln(a.out, a.session.Title())
			return nil
		},
	}
}
