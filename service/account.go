package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"restaurant-ordering/auth"
	models "restaurant-ordering/model"
)

// SignUp checks the form in the order the sign-up dialog reports problems and
// then registers the account with the identity service. The confirmation
// link in the welcome mail points back at the login page.
func (s *Service) SignUp(ctx context.Context, form SignUpForm) error {
	if err := validateSignUp(form); err != nil {
		return err
	}
	if s.auth == nil {
		return ErrAuthUnavailable
	}

	meta := map[string]any{
		"firstName":      strings.TrimSpace(form.FirstName),
		"lastName":       strings.TrimSpace(form.LastName),
		"email":          strings.TrimSpace(form.Email),
		"emailSubscribe": form.EmailSubscribe,
		"smsSubscribe":   form.SmsSubscribe,
		"termsAgreed":    form.TermsAgreed,
	}
	if v := strings.TrimSpace(form.PhoneNumber); v != "" {
		meta["phoneNumber"] = v
	}
	if v := strings.TrimSpace(form.ZipCode); v != "" {
		meta["zipCode"] = v
	}

	email := strings.TrimSpace(form.Email)
	if err := s.auth.SignUp(ctx, email, form.Password, meta, s.siteURL+"/auth/login"); err != nil {
		s.log.Warn("sign up rejected", zap.String("email", email), zap.Error(err))
		return err
	}
	s.log.Info("account registered", zap.String("email", email))
	return nil
}

// PasswordRules backs the live checklist shown next to the password field.
func (s *Service) PasswordRules(password string) auth.PasswordRules {
	return auth.CheckPassword(password)
}

func validateSignUp(form SignUpForm) error {
	switch {
	case strings.TrimSpace(form.FirstName) == "":
		return invalid("First name is required")
	case strings.TrimSpace(form.LastName) == "":
		return invalid("Last name is required")
	case strings.TrimSpace(form.Email) == "":
		return invalid("Email is required")
	case form.Password == "":
		return invalid("Password is required")
	case form.Password != form.ConfirmPassword:
		return invalid("Passwords do not match")
	}
	if err := auth.ValidatePassword(form.Password); err != nil {
		return invalid(err.Error())
	}
	if !form.TermsAgreed {
		return invalid("You must agree to the terms and conditions")
	}
	return nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Session{}, invalid("Email and password are required")
	}
	if s.auth == nil {
		return models.Session{}, ErrAuthUnavailable
	}
	sess, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		s.log.Info("sign in failed", zap.String("email", email), zap.Error(err))
		return models.Session{}, err
	}
	s.state.SignIn(sess)
	return sess, nil
}

// StartOAuth returns the provider URL to send the browser to and the PKCE
// verifier the caller must keep until the callback.
func (s *Service) StartOAuth(provider string) (string, string, error) {
	if s.auth == nil {
		return "", "", ErrAuthUnavailable
	}
	if provider == "" {
		provider = "google"
	}
	verifier, err := auth.NewVerifier()
	if err != nil {
		return "", "", errors.Wrap(err, "pkce verifier")
	}
	u := s.auth.AuthorizeURL(provider, s.siteURL+"/auth/callback", auth.Challenge(verifier))
	return u, verifier, nil
}

func (s *Service) CompleteOAuth(ctx context.Context, code, verifier string) (models.Session, error) {
	if s.auth == nil {
		return models.Session{}, ErrAuthUnavailable
	}
	if code == "" || verifier == "" {
		return models.Session{}, invalid("missing authorization code")
	}
	sess, err := s.auth.ExchangeCode(ctx, code, verifier)
	if err != nil {
		s.log.Warn("oauth code exchange failed", zap.Error(err))
		return models.Session{}, err
	}
	s.state.SignIn(sess)
	return sess, nil
}

func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return ErrUnauthenticated
	}
	if s.auth == nil {
		return ErrAuthUnavailable
	}
	err := s.auth.SignOut(ctx, accessToken)
	// The local view is cleared even when the remote call fails.
	s.state.SignOut(accessToken)
	if err != nil {
		return errors.Wrap(err, "sign out")
	}
	return nil
}

// Profile returns the signed-in user's details, from the local cache when
// this server has already seen the token.
func (s *Service) Profile(ctx context.Context, accessToken string) (models.Profile, error) {
	if accessToken == "" {
		return models.Profile{}, ErrUnauthenticated
	}
	if u, ok := s.state.Current(accessToken); ok {
		return u.Profile(), nil
	}
	if s.auth == nil {
		return models.Profile{}, ErrAuthUnavailable
	}
	u, err := s.auth.User(ctx, accessToken)
	if err != nil {
		var aerr *auth.Error
		if errors.As(err, &aerr) && aerr.Status == http.StatusUnauthorized {
			return models.Profile{}, ErrUnauthenticated
		}
		return models.Profile{}, err
	}
	s.state.Remember(accessToken, u)
	return u.Profile(), nil
}
