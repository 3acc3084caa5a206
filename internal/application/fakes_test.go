package application_test

import (
	"context"
	"errors"

	"github.com/abdidvp/invdash/internal/domain"
)

type fakeGateway struct {
	products []domain.Product
	listErr  error
	mutErr   error
	calls    []string
	created  []domain.Submission
	updated  []domain.Submission
	deleted  []domain.ProductID
}

func (g *fakeGateway) List(context.Context) ([]domain.Product, error) {
	g.calls = append(g.calls, "list")
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.products, nil
}

func (g *fakeGateway) Create(_ context.Context, sub domain.Submission) error {
	g.calls = append(g.calls, "create")
	if g.mutErr != nil {
		return g.mutErr
	}
	g.created = append(g.created, sub)
	return nil
}

func (g *fakeGateway) Update(_ context.Context, sub domain.Submission) error {
	g.calls = append(g.calls, "update")
	if g.mutErr != nil {
		return g.mutErr
	}
	g.updated = append(g.updated, sub)
	return nil
}

func (g *fakeGateway) Delete(_ context.Context, id domain.ProductID) error {
	g.calls = append(g.calls, "delete")
	if g.mutErr != nil {
		return g.mutErr
	}
	g.deleted = append(g.deleted, id)
	return nil
}

type fixedConfirm bool

func (c fixedConfirm) Confirm(string) bool { return bool(c) }

type memoryStore struct {
	state  domain.SessionState
	saves  int
	clears int
	err    error
}

func (s *memoryStore) Load() (domain.SessionState, error) { return s.state, s.err }

func (s *memoryStore) Save(state domain.SessionState) error {
	s.saves++
	s.state = state
	return s.err
}

func (s *memoryStore) Clear() error {
	s.clears++
	s.state = domain.SessionState{}
	return s.err
}

type recordingNav struct{ routes []domain.Route }

func (n *recordingNav) Navigate(r domain.Route) { n.routes = append(n.routes, r) }

type fakeAuth struct {
	result domain.AuthResult
	err    error
	calls  []string
}

func (a *fakeAuth) Login(_ context.Context, _ domain.Credentials) (domain.AuthResult, error) {
	a.calls = append(a.calls, "login")
	return a.result, a.err
}

func (a *fakeAuth) Signup(_ context.Context, _ domain.Credentials) (domain.AuthResult, error) {
	a.calls = append(a.calls, "signup")
	return a.result, a.err
}

var errBackend = errors.New("status 500")
