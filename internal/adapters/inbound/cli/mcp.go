package cli

import (
	mcpadapter "github.com/abdidvp/invdash/internal/adapters/inbound/mcp"
	"github.com/abdidvp/invdash/internal/domain"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the invdash MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start invdash MCP server (stdio)",
		Long:  "Start the invdash MCP server using stdio transport. Assistants can list and change products with the stored session. Sign in with `invdash login` first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(cmd, string(domain.RouteDashboard))
			if err != nil {
				return err
			}
			s := mcpadapter.NewInventoryMCPServer(mcpadapter.Deps{
				Products: a.products,
				Session:  a.session,
				Now:      a.now,
				Logger:   a.logger,
			})
			return server.ServeStdio(s)
		},
	}
}
