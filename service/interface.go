package service

import (
	"context"

	"restaurant-ordering/auth"
	models "restaurant-ordering/model"
)

type ServiceInterface interface {
	Ready(ctx context.Context) error

	ListMenu(ctx context.Context) ([]MenuItemDTO, error)
	Categories(ctx context.Context) ([]string, error)
	CreateMenuItem(ctx context.Context, in MenuItemInput) (string, error)

	OpenOrder(ctx context.Context) (models.Order, error)
	GetOrder(sessionID string) (models.Order, error)
	AddToOrder(sessionID, itemID string) (models.Order, error)
	RemoveFromOrder(sessionID, itemID string) (models.Order, error)
	CloseOrder(sessionID string)

	SubmitContact(ctx context.Context, form ContactForm) (models.Contact, error)

	PasswordRules(password string) auth.PasswordRules
	SignUp(ctx context.Context, form SignUpForm) error
	SignIn(ctx context.Context, email, password string) (models.Session, error)
	StartOAuth(provider string) (redirectURL, verifier string, err error)
	CompleteOAuth(ctx context.Context, code, verifier string) (models.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	Profile(ctx context.Context, accessToken string) (models.Profile, error)
}
