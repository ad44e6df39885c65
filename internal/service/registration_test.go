package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/slatesocial/site/internal/db"
	"github.com/slatesocial/site/internal/model"
	"github.com/slatesocial/site/internal/repository"
	"github.com/slatesocial/site/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	mu        sync.Mutex
	sent      []string
	failFirst bool
}

func (n *fakeNotifier) record(kind string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, kind)
	if n.failFirst && len(n.sent) == 1 {
		return errors.New("smtp down")
	}
	return nil
}

func (n *fakeNotifier) SendRegistrationConfirmation(context.Context, *model.Registration) error {
	return n.record("confirmation")
}

func (n *fakeNotifier) SendRegistrationNotification(context.Context, *model.Registration) error {
	return n.record("notification")
}

func (n *fakeNotifier) AddContact(context.Context, *model.Registration) error {
	return n.record("contact")
}

func newRegistrationService(t *testing.T, notify Notifier) (*RegistrationService, repository.RegistrationRepository) {
	t.Helper()
	database, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	repo := repository.NewRegistrationRepository(database)
	svc := NewRegistrationService(repo, notify)
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }
	return svc, repo
}

func TestRegister(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, repo := newRegistrationService(t, notifier)

	reg, created, err := svc.Register(context.Background(), RegistrationInput{
		FullName: "  Lynn Hill ",
		GymName:  "Nose Climbing",
		Email:    "Lynn@Example.COM",
		Message:  "Members never see event announcements.",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, "Lynn Hill", reg.FullName)
	assert.Equal(t, "lynn@example.com", reg.Email)
	assert.Equal(t, time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC), reg.CreatedAt)
	assert.Equal(t, []string{"confirmation", "notification", "contact"}, notifier.sent)

	stored, err := repo.ByEmail("lynn@example.com")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, stored.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, repo := newRegistrationService(t, notifier)
	in := RegistrationInput{FullName: "Lynn Hill", GymName: "Nose Climbing", Email: "lynn@example.com"}

	first, created, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	require.True(t, created)

	in.Email = "LYNN@example.com"
	second, created, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, notifier.sent, 3, "duplicates send no email")

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegisterInvalid(t *testing.T) {
	svc, repo := newRegistrationService(t, nil)

	_, _, err := svc.Register(context.Background(), RegistrationInput{Email: "not-an-email"})
	require.ErrorIs(t, err, ErrInvalidRegistration)

	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has(FieldFullName))
	assert.True(t, errs.Has(FieldGymName))
	assert.True(t, errs.Has(FieldEmail))
	assert.False(t, errs.Has(FieldMessage), "message is optional")

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRegisterNotifierFailureKeepsRegistration(t *testing.T) {
	notifier := &fakeNotifier{failFirst: true}
	svc, _ := newRegistrationService(t, notifier)

	_, created, err := svc.Register(context.Background(), RegistrationInput{
		FullName: "Lynn Hill", GymName: "Nose Climbing", Email: "lynn@example.com",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, notifier.sent, 3)
}

func TestValidateNormalizes(t *testing.T) {
	svc := NewRegistrationService(nil, nil)
	in := RegistrationInput{FullName: " Alex ", GymName: " Crag ", Email: " A@B.CO ", Message: "  hi  "}

	errs := svc.Validate(&in)
	assert.Empty(t, errs)
	assert.Equal(t, RegistrationInput{FullName: "Alex", GymName: "Crag", Email: "a@b.co", Message: "hi"}, in)
}
