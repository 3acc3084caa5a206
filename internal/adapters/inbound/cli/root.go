package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abdidvp/invdash/internal/adapters/outbound/api"
	"github.com/abdidvp/invdash/internal/adapters/outbound/config"
	"github.com/abdidvp/invdash/internal/adapters/outbound/logging"
	"github.com/abdidvp/invdash/internal/adapters/outbound/session"
	"github.com/abdidvp/invdash/internal/application"
	"github.com/abdidvp/invdash/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath  string
	apiURL      string
	logLevel    string
	sessionFile string
	now         func() time.Time
	loader      domain.ConfigLoader
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{now: time.Now, loader: config.New()}

	cmd := &cobra.Command{
		Use:           "invdash",
		Short:         "Manage your product inventory from the terminal",
		Long:          "invdash signs in to an inventory backend and lets you list, add, edit and delete products.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/invdash/config.yaml)")
	pf.StringVar(&opts.apiURL, "api-url", "", "Backend base URL (overrides config and "+config.EnvAPIURL+")")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	pf.StringVar(&opts.sessionFile, "session-file", "", "Session file (default ~/.config/invdash/session.json)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newLoginCmd(opts))
	cmd.AddCommand(newSignupCmd(opts))
	cmd.AddCommand(newLogoutCmd(opts))
	cmd.AddCommand(newWhoamiCmd(opts))
	cmd.AddCommand(newProductsCmd(opts))
	cmd.AddCommand(newShellCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// app is the wired client: everything a command needs, built once per run.
type app struct {
	logger   zerolog.Logger
	session  *application.Session
	shell    *application.Shell
	products *api.Products
	auth     *api.Auth
	notifier *domain.Notifier
	now      func() time.Time
}

// build loads configuration, hydrates the session and wires the adapters. The
// shell starts at start.
func (o *rootOptions) build(cmd *cobra.Command, start string) (*app, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := o.loader.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if o.apiURL != "" {
		cfg.APIURL = o.apiURL
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.sessionFile != "" {
		cfg.SessionFile = o.sessionFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	logger := logging.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		if sessionPath, err = session.DefaultPath(); err != nil {
			return nil, err
		}
	}
	sess := application.NewSession(session.New(sessionPath))
	if err := sess.Hydrate(); err != nil {
		return nil, err
	}

	shell, err := application.NewShell(start, logger)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIURL, sess, shell, api.WithLogger(logger))
	logger.Debug().Str("api_url", cfg.APIURL).Str("session", sessionPath).Msg("client ready")

	return &app{
		logger:   logger,
		session:  sess,
		shell:    shell,
		products: api.NewProducts(client),
		auth:     api.NewAuth(client),
		notifier: domain.NewNotifier(o.now, cfg.NotificationTTL.Std()),
		now:      o.now,
	}, nil
}

func (a *app) dashboard(confirm domain.Confirmer) *application.Dashboard {
	return application.NewDashboard(a.products, confirm, a.notifier, a.logger)
}

func (a *app) authView() *application.AuthView {
	return application.NewAuthView(a.auth, a.session, a.shell, a.notifier, a.logger)
}
