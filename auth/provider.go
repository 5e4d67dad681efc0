// Package auth delegates sign-up, sign-in and sessions to the hosted
// identity service and keeps the server's view of who is signed in.
package auth

import (
	"context"
	"fmt"

	models "restaurant-ordering/model"
)

// Provider is the identity service as the rest of the app sees it.
type Provider interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]any, redirectTo string) error
	SignIn(ctx context.Context, email, password string) (models.Session, error)
	AuthorizeURL(provider, redirectTo, codeChallenge string) string
	ExchangeCode(ctx context.Context, code, verifier string) (models.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	User(ctx context.Context, accessToken string) (models.User, error)
}

// Error is a failure reported by the identity service. Message is safe to
// show to the user.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("identity provider returned status %d", e.Status)
	}
	return e.Message
}
