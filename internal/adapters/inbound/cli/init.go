package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/invdash/internal/adapters/outbound/config"
	"github.com/abdidvp/invdash/internal/domain"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a config file",
		Long:  "Create a config.yaml with the default settings, at --config or ~/.config/invdash/config.yaml.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := opts.configPath
			if dest == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				dest = p
			}

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", dest)
				}
			}

			cfg := domain.DefaultConfig()
			if opts.apiURL != "" {
				cfg.APIURL = opts.apiURL
			}
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := os.WriteFile(dest, []byte(generateConfig(cfg)), 0o644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func generateConfig(cfg domain.ClientConfig) string {
	return fmt.Sprintf(`# invdash configuration
# Environment overrides: %s, %s, %s

# Base URL of the inventory backend.
api_url: %s

# trace, debug, info, warn, error or disabled.
log_level: %s

# How long a notification stays on screen.
notification_ttl: %s

# session_file: ~/.config/invdash/session.json
`, config.EnvAPIURL, config.EnvLogLevel, config.EnvSessionFile,
		cfg.APIURL, cfg.LogLevel, cfg.NotificationTTL.Std())
}
