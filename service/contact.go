package service

import (
	"context"
	"regexp"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	models "restaurant-ordering/model"
	"restaurant-ordering/store"
)

const MaxMessageLength = 300

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmitContact validates the contact form and stores it.
func (s *Service) SubmitContact(ctx context.Context, form ContactForm) (models.Contact, error) {
	if form.FirstName == "" || form.LastName == "" || form.Email == "" || form.Message == "" {
		return models.Contact{}, invalid("All fields are required.")
	}
	if !emailPattern.MatchString(form.Email) {
		return models.Contact{}, invalid("Please enter a valid email address.")
	}
	if utf8.RuneCountInString(form.Message) > MaxMessageLength {
		return models.Contact{}, invalid("Message must be 300 characters or fewer.")
	}

	row, err := s.store.CreateContact(ctx, store.ContactRow{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Message:   form.Message,
	})
	if err != nil {
		s.log.Error("contact insert failed", zap.Error(err))
		return models.Contact{}, errors.Wrap(err, "submit contact")
	}
	s.log.Info("contact message received", zap.Int64("id", row.ID))
	return models.Contact{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		Message:   row.Message,
		CreatedAt: row.CreatedAt,
	}, nil
}
