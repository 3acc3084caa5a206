package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/invdash/internal/adapters/inbound/prompt"
	"github.com/abdidvp/invdash/internal/adapters/outbound/tui"
	"github.com/abdidvp/invdash/internal/domain"
)

func newLoginCmd(opts *rootOptions) *cobra.Command {
	return newCredentialsCmd(opts, domain.RouteLogin, "login", "Sign in and store the session token")
}

func newSignupCmd(opts *rootOptions) *cobra.Command {
	return newCredentialsCmd(opts, domain.RouteSignup, "signup", "Create an account and sign in")
}

func newCredentialsCmd(opts *rootOptions, mode domain.Route, use, short string) *cobra.Command {
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + ". Missing credentials are prompted for.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(cmd, string(mode))
			if err != nil {
				return err
			}

			p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
			if err := askCredentials(p, &creds); err != nil {
				return err
			}

			view := a.authView()
			view.SetMode(mode)
			err = view.Submit(cmd.Context(), creds)
			printNotice(cmd.OutOrStdout(), view.Notification())
			return err
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Password (prompted when empty)")

	return cmd
}

// askCredentials prompts for whichever credential is still empty.
func askCredentials(p *prompt.Prompter, creds *domain.Credentials) error {
	if creds.Username == "" {
		v, err := p.Field("Username", "")
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading username: %w", err)
		}
		creds.Username = strings.TrimSpace(v)
	}
	if creds.Password == "" {
		v, err := p.Field("Password", "")
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading password: %w", err)
		}
		creds.Password = v
	}
	return nil
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(cmd, string(domain.RouteDashboard))
			if err != nil {
				return err
			}
			had := a.session.Authenticated()
			if err := a.authView().Logout(); err != nil {
				return err
			}
			if had {
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			}
			return nil
		},
	}
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(cmd, string(domain.RouteDashboard))
			if err != nil {
				return err
			}
			exp, _ := a.session.ExpiresAt()
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSession(a.session.User(), a.session.Authenticated(), exp, a.now()))
			return nil
		},
	}
}

func printNotice(w io.Writer, n *domain.Notification) {
	if n == nil {
		return
	}
	fmt.Fprintln(w, tui.RenderNotification(n))
}
