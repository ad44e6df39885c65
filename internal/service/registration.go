package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slatesocial/site/internal/model"
	"github.com/slatesocial/site/internal/repository"
	"github.com/slatesocial/site/internal/validation"
)

var ErrInvalidRegistration = errors.New("invalid registration")

// Form field names shared by the registration form and its handler.
const (
	FieldFullName = "name"
	FieldGymName  = "gym"
	FieldEmail    = "email"
	FieldMessage  = "message"
)

const maxMessageLength = 2000

type RegistrationInput struct {
	FullName string
	GymName  string
	Email    string
	Message  string
}

// Notifier delivers registration emails.
type Notifier interface {
	SendRegistrationConfirmation(ctx context.Context, reg *model.Registration) error
	SendRegistrationNotification(ctx context.Context, reg *model.Registration) error
	AddContact(ctx context.Context, reg *model.Registration) error
}

type RegistrationService struct {
	repo   repository.RegistrationRepository
	notify Notifier
	now    func() time.Time
}

func NewRegistrationService(repo repository.RegistrationRepository, notify Notifier) *RegistrationService {
	return &RegistrationService{
		repo:   repo,
		notify: notify,
		now:    time.Now,
	}
}

// Validate normalizes the input in place and reports every invalid field.
func (s *RegistrationService) Validate(in *RegistrationInput) validation.Errors {
	in.FullName = strings.TrimSpace(in.FullName)
	in.GymName = strings.TrimSpace(in.GymName)
	in.Email = validation.NormalizeEmail(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	errs := validation.Errors{}
	errs.Add(FieldFullName, validation.ValidateName("full name", in.FullName))
	errs.Add(FieldGymName, validation.ValidateName("gym name", in.GymName))
	errs.Add(FieldEmail, validation.ValidateEmail(in.Email))
	errs.Add(FieldMessage, validation.ValidateText("message", in.Message, maxMessageLength, false))
	return errs
}

// Register stores a beta registration and sends the emails.
// Registering an email twice returns the existing record with created=false.
func (s *RegistrationService) Register(ctx context.Context, in RegistrationInput) (reg *model.Registration, created bool, err error) {
	errs := s.Validate(&in)
	if len(errs) > 0 {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidRegistration, errs)
	}

	existing, err := s.repo.ByEmail(in.Email)
	if err == nil {
		slog.Info("duplicate registration", "email", in.Email)
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	reg = &model.Registration{
		ID:        uuid.NewString(),
		FullName:  in.FullName,
		GymName:   in.GymName,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: s.now().UTC(),
	}

	err = s.repo.Create(reg)
	if err != nil {
		// lost a race with a concurrent submission for the same email
		if existing, lookupErr := s.repo.ByEmail(in.Email); lookupErr == nil {
			return existing, false, nil
		}
		return nil, false, err
	}

	slog.Info("registration created", "id", reg.ID, "gym", reg.GymName)
	s.deliver(ctx, reg)
	return reg, true, nil
}

// deliver sends the registration emails. Failures never fail the registration.
func (s *RegistrationService) deliver(ctx context.Context, reg *model.Registration) {
	if s.notify == nil {
		return
	}
	if err := s.notify.SendRegistrationConfirmation(ctx, reg); err != nil {
		slog.Error("failed to send registration confirmation", "error", err, "id", reg.ID)
	}
	if err := s.notify.SendRegistrationNotification(ctx, reg); err != nil {
		slog.Error("failed to send registration notification", "error", err, "id", reg.ID)
	}
	if err := s.notify.AddContact(ctx, reg); err != nil {
		slog.Warn("failed to add audience contact", "error", err, "id", reg.ID)
	}
}
