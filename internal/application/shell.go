package application

import (
	"github.com/abdidvp/invdash/internal/domain"
	"github.com/rs/zerolog"
)

// Shell tracks which view of the client is active. It is the Navigator handed to
// the HTTP adapter so an unauthorized response can force the login view.
type Shell struct {
	current domain.Route
	visited []domain.Route
	logger  zerolog.Logger
}

// NewShell starts the shell at the given path.
func NewShell(start string, logger zerolog.Logger) (*Shell, error) {
	route, err := domain.ResolveRoute(start)
	if err != nil {
		return nil, err
	}
	return &Shell{
		current: route,
		visited: []domain.Route{route},
		logger:  logger.With().Str("component", "shell").Logger(),
	}, nil
}

func (s *Shell) Navigate(route domain.Route) {
	resolved, err := domain.ResolveRoute(string(route))
	if err != nil {
		s.logger.Warn().Str("route", string(route)).Msg("unknown route, falling back to login")
		resolved = domain.RouteLogin
	}
	s.logger.Debug().Str("from", string(s.current)).Str("to", string(resolved)).Msg("navigate")
	s.current = resolved
	s.visited = append(s.visited, resolved)
}

func (s *Shell) Current() domain.Route { return s.current }

// Visited returns every route the shell has shown, in order.
func (s *Shell) Visited() []domain.Route {
	out := make([]domain.Route, len(s.visited))
	copy(out, s.visited)
	return out
}
