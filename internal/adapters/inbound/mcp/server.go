package mcp

import (
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/abdidvp/invdash/internal/application"
	"github.com/abdidvp/invdash/internal/domain"
)

// Deps is what the MCP tools need from the wired client.
type Deps struct {
	Products domain.ProductGateway
	Session  *application.Session
	Now      func() time.Time
	Logger   zerolog.Logger
}

// NewInventoryMCPServer creates a new MCP server with all invdash tools and
// resources registered.
func NewInventoryMCPServer(deps Deps) *server.MCPServer {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := server.NewMCPServer(
		"invdash",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, deps)
	registerResources(s, deps)

	return s
}
