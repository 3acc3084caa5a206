package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/invdash/internal/domain"
)

const sessionURI = "inventory://session"

// registerResources registers all invdash MCP resources on the given server.
func registerResources(s *server.MCPServer, deps Deps) {
	s.AddResource(
		mcplib.NewResource(
			sessionURI,
			"Session",
			mcplib.WithResourceDescription("The signed-in user and token expiry. The token itself is never exposed."),
			mcplib.WithMIMEType("application/json"),
		),
		handleSessionResource(deps),
	)
}

type sessionView struct {
	Authenticated bool               `json:"authenticated"`
	User          *domain.UserRecord `json:"user,omitempty"`
	ExpiresAt     string             `json:"expires_at,omitempty"`
	Expired       bool               `json:"expired,omitempty"`
}

func describeSession(deps Deps) sessionView {
	v := sessionView{
		Authenticated: deps.Session.Authenticated(),
		User:          deps.Session.User(),
	}
	if exp, ok := deps.Session.ExpiresAt(); ok {
		v.ExpiresAt = exp.UTC().Format(time.RFC3339)
		v.Expired = !exp.After(deps.Now())
	}
	return v
}

func handleSessionResource(deps Deps) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(describeSession(deps), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling session: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      sessionURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
