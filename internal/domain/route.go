package domain

import "fmt"

// Route is a view of the client shell.
type Route string

const (
	RouteRoot      Route = "/"
	RouteLogin     Route = "/login"
	RouteSignup    Route = "/signup"
	RouteDashboard Route = "/dashboard"
)

// ResolveRoute maps a requested path to the view that serves it.
// The root path redirects to the login view.
func ResolveRoute(path string) (Route, error) {
	switch Route(path) {
	case RouteRoot, "":
		return RouteLogin, nil
	case RouteLogin, RouteSignup, RouteDashboard:
		return Route(path), nil
	}
	return "", fmt.Errorf("unknown route %q", path)
}
