package repository

import (
	"testing"
	"time"

	"github.com/slatesocial/site/internal/db"
	"github.com/slatesocial/site/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) RegistrationRepository {
	t.Helper()
	database, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return NewRegistrationRepository(database)
}

func registration(id, email string, at time.Time) *model.Registration {
	return &model.Registration{
		ID:        id,
		FullName:  "Chris Sharma",
		GymName:   "Sender One",
		Email:     email,
		CreatedAt: at,
	}
}

func TestRegistrationRepository(t *testing.T) {
	repo := newRepo(t)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(registration("a", "a@example.com", base)))
	require.NoError(t, repo.Create(registration("b", "b@example.com", base.Add(time.Hour))))
	require.NoError(t, repo.Create(registration("c", "c@example.com", base.Add(2*time.Hour))))

	got, err := repo.ByEmail("b@example.com")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
	assert.Equal(t, "Sender One", got.GymName)
	assert.True(t, got.CreatedAt.Equal(base.Add(time.Hour)))

	_, err = repo.ByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := repo.List(2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRegistrationEmailUnique(t *testing.T) {
	repo := newRepo(t)
	now := time.Now().UTC()

	require.NoError(t, repo.Create(registration("a", "same@example.com", now)))
	assert.Error(t, repo.Create(registration("b", "same@example.com", now)))
}
