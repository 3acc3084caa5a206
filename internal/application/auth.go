package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdidvp/invdash/internal/domain"
	"github.com/rs/zerolog"
)

// AuthView is the login/signup view-model. Both routes share it; the mode decides
// which backend call a submit makes.
type AuthView struct {
	gateway  domain.AuthGateway
	session  *Session
	nav      domain.Navigator
	notifier *domain.Notifier
	logger   zerolog.Logger
	mode     domain.Route
}

func NewAuthView(
	gateway domain.AuthGateway,
	session *Session,
	nav domain.Navigator,
	notifier *domain.Notifier,
	logger zerolog.Logger,
) *AuthView {
	return &AuthView{
		gateway:  gateway,
		session:  session,
		nav:      nav,
		notifier: notifier,
		logger:   logger.With().Str("component", "auth").Logger(),
		mode:     domain.RouteLogin,
	}
}

// SetMode switches between the login and the signup form.
func (v *AuthView) SetMode(route domain.Route) {
	if route == domain.RouteSignup {
		v.mode = domain.RouteSignup
		return
	}
	v.mode = domain.RouteLogin
}

func (v *AuthView) Mode() domain.Route { return v.mode }

func (v *AuthView) Notification() *domain.Notification { return v.notifier.Current() }

// Submit validates the credentials, exchanges them for a token, persists the
// session and moves the shell to the dashboard.
func (v *AuthView) Submit(ctx context.Context, creds domain.Credentials) error {
	label, call := "Login", v.gateway.Login
	if v.mode == domain.RouteSignup {
		label, call = "Signup", v.gateway.Signup
	}

	if err := domain.ValidateStruct(creds); err != nil {
		v.notifier.Show(err.Error(), domain.NotifyError)
		return err
	}

	res, err := call(ctx, creds)
	if err == nil && res.Token == "" {
		err = errors.New("response carried no token")
	}
	if err != nil {
		v.notifier.Show(fmt.Sprintf("%s failed: %v", label, err), domain.NotifyError)
		return err
	}

	if err := v.session.Establish(res.Token, res.User); err != nil {
		v.notifier.Show(fmt.Sprintf("%s failed: %v", label, err), domain.NotifyError)
		return err
	}

	v.logger.Info().Str("user", userName(v.session.User())).Msg("signed in")
	v.notifier.Show(fmt.Sprintf("%s successful", label), domain.NotifySuccess)
	v.nav.Navigate(domain.RouteDashboard)
	return nil
}

// Logout tears the session down and returns to the login view.
func (v *AuthView) Logout() error {
	if _, err := v.session.Teardown(); err != nil {
		return err
	}
	v.nav.Navigate(domain.RouteLogin)
	return nil
}

func userName(u *domain.UserRecord) string {
	if u == nil {
		return ""
	}
	return u.Username
}
