package domain

import "context"

// ProductGateway performs the product operations against the backend.
type ProductGateway interface {
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, sub Submission) error
	Update(ctx context.Context, sub Submission) error
	Delete(ctx context.Context, id ProductID) error
}

// Credentials are what the login and signup views submit.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResult is the backend's answer to a login or signup call.
type AuthResult struct {
	Token string      `json:"token"`
	User  *UserRecord `json:"user,omitempty"`
}

// AuthGateway exchanges credentials for a session token.
type AuthGateway interface {
	Login(ctx context.Context, creds Credentials) (AuthResult, error)
	Signup(ctx context.Context, creds Credentials) (AuthResult, error)
}

// SessionStore persists the session between runs.
// Load returns an empty state if nothing is stored.
type SessionStore interface {
	Load() (SessionState, error)
	Save(state SessionState) error
	Clear() error
}

// Navigator switches the client shell to another view.
type Navigator interface {
	Navigate(route Route)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfigLoader loads the client configuration.
type ConfigLoader interface {
	Load(path string) (ClientConfig, error)
}
