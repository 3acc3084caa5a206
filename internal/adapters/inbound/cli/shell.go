package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/invdash/internal/adapters/inbound/prompt"
	"github.com/abdidvp/invdash/internal/adapters/outbound/tui"
	"github.com/abdidvp/invdash/internal/application"
	"github.com/abdidvp/invdash/internal/domain"
)

const dashboardHelp = `Commands:
  add            open the add product form
  edit <row>     edit the product in that row
  delete <row>   delete the product in that row
  refresh        reload the product list (alias: retry)
  logout         sign out
  quit           leave invdash`

func newShellCmd(opts *rootOptions) *cobra.Command {
	var route string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive inventory dashboard",
		Long:  "Start the interactive client. The login view asks for credentials; the dashboard reads one command per line.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(cmd, route)
			if err != nil {
				return err
			}
			s := &shellLoop{
				app:    a,
				prompt: prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()),
				out:    cmd.OutOrStdout(),
			}
			return s.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&route, "route", string(domain.RouteRoot), "Route to start on (/, /login, /signup, /dashboard)")
	return cmd
}

// shellLoop renders whichever view the shell is on and feeds it input lines.
type shellLoop struct {
	app    *app
	prompt *prompt.Prompter
	out    io.Writer
	dash   *application.Dashboard
}

const sessionExpiredNotice = "Session expired. Please sign in again."

// errQuit ends the loop without an error.
var errQuit = errors.New("quit")

func (s *shellLoop) run(ctx context.Context) error {
	auth := s.app.authView()
	for {
		var err error
		switch route := s.app.shell.Current(); route {
		case domain.RouteDashboard:
			err = s.dashboardStep(ctx)
		default:
			s.dash = nil
			err = s.authStep(ctx, auth, route)
		}
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out, "Bye.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// authStep shows the login or signup view and handles one submission.
func (s *shellLoop) authStep(ctx context.Context, auth *application.AuthView, route domain.Route) error {
	auth.SetMode(route)
	fmt.Fprint(s.out, tui.RenderAuth(auth.Mode(), auth.Notification()))

	hint := "signup"
	if auth.Mode() == domain.RouteSignup {
		hint = "login"
	}
	if s.app.session.Authenticated() {
		hint += ", continue"
	}

	line, ok, err := s.prompt.Line(fmt.Sprintf("Username (or %s, quit): ", hint))
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if !ok {
		return io.EOF
	}

	switch cmd := strings.TrimSpace(line); cmd {
	case "":
		return nil
	case "quit", "exit":
		return errQuit
	case "login":
		s.app.shell.Navigate(domain.RouteLogin)
		return nil
	case "signup":
		s.app.shell.Navigate(domain.RouteSignup)
		return nil
	case "continue":
		if s.app.session.Authenticated() {
			s.app.shell.Navigate(domain.RouteDashboard)
		}
		return nil
	default:
		creds := domain.Credentials{Username: cmd}
		if err := askCredentials(s.prompt, &creds); err != nil {
			return err
		}
		// Failures are shown on the next render of the view.
		_ = auth.Submit(ctx, creds)
		return nil
	}
}

// dashboardStep renders the dashboard and runs one command. The dashboard is
// mounted the first time it is shown after a navigation.
func (s *shellLoop) dashboardStep(ctx context.Context) error {
	if s.dash == nil {
		s.dash = s.app.dashboard(s.prompt)
		if err := s.dash.Mount(ctx); errors.Is(err, domain.ErrUnauthorized) {
			fmt.Fprintln(s.out, sessionExpiredNotice)
			return nil
		}
	}
	fmt.Fprint(s.out, tui.RenderDashboard(tui.DashboardViewOf(s.dash, s.app.session.User())))

	line, ok, err := s.prompt.Line("> ")
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if !ok {
		return io.EOF
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	if err := s.dashboardCommand(ctx, fields); err != nil {
		return err
	}
	if fields[0] != "logout" && s.app.shell.Current() != domain.RouteDashboard {
		fmt.Fprintln(s.out, sessionExpiredNotice)
	}
	return nil
}

func (s *shellLoop) dashboardCommand(ctx context.Context, fields []string) error {
	switch fields[0] {
	case "quit", "exit":
		return errQuit
	case "help", "?":
		fmt.Fprintln(s.out, dashboardHelp)
	case "refresh", "retry":
		_ = s.dash.Retry(ctx)
	case "logout":
		return s.app.authView().Logout()
	case "add":
		s.dash.OpenAdd()
		return s.formLoop(ctx)
	case "edit":
		p, err := s.row(fields)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return nil
		}
		s.dash.OpenEdit(p)
		return s.formLoop(ctx)
	case "delete":
		p, err := s.row(fields)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return nil
		}
		if err := s.dash.Delete(ctx, p); errors.Is(err, application.ErrCancelled) {
			fmt.Fprintln(s.out, "Delete cancelled.")
		}
	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type help for a list.\n", fields[0])
	}
	return nil
}

// formLoop prompts each field of the open modal, then submits, re-edits or
// cancels. A failed submit keeps the modal and its draft.
func (s *shellLoop) formLoop(ctx context.Context) error {
	if err := s.fillFields(); err != nil {
		s.dash.Cancel()
		return err
	}
	for {
		fmt.Fprint(s.out, tui.RenderForm(s.dash.Draft()))
		line, ok, err := s.prompt.Line("[s]ubmit, [e]dit fields, [c]ancel: ")
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if !ok {
			s.dash.Cancel()
			return io.EOF
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "s", "submit":
			err := s.dash.Submit(ctx)
			if err == nil || errors.Is(err, domain.ErrUnauthorized) {
				return nil
			}
			fmt.Fprintln(s.out, tui.RenderNotification(s.dash.Notification()))
		case "e", "edit":
			if err := s.fillFields(); err != nil {
				s.dash.Cancel()
				return err
			}
		case "c", "cancel":
			s.dash.Cancel()
			return nil
		}
	}
}

func (s *shellLoop) fillFields() error {
	draft := s.dash.Draft()
	for _, f := range domain.FormFields {
		current, _ := draft.Get(f)
		v, err := s.prompt.Field(tui.FieldLabel(f), current)
		if err != nil {
			return err
		}
		if err := s.dash.SetField(f, v); err != nil {
			return err
		}
	}
	return nil
}

// row resolves a 1-based row number from the rendered table.
func (s *shellLoop) row(fields []string) (domain.Product, error) {
	if len(fields) < 2 {
		return domain.Product{}, fmt.Errorf("usage: %s <row>", fields[0])
	}
	products := s.dash.Products()
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > len(products) {
		return domain.Product{}, fmt.Errorf("no row %q; pick 1-%d", fields[1], len(products))
	}
	return products[n-1], nil
}
