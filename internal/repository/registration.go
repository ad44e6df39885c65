package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/slatesocial/site/internal/model"
)

var ErrNotFound = errors.New("not found")

type RegistrationRepository interface {
	Create(reg *model.Registration) error
	ByEmail(email string) (*model.Registration, error)
	List(limit int) ([]*model.Registration, error)
	Count() (int, error)
}

type registrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(reg *model.Registration) error {
	query := r.db.Rebind(`
		INSERT INTO registrations (id, full_name, gym_name, email, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.Exec(query, reg.ID, reg.FullName, reg.GymName, reg.Email, reg.Message, reg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) ByEmail(email string) (*model.Registration, error) {
	var reg model.Registration
	query := r.db.Rebind(`SELECT * FROM registrations WHERE email = ?`)
	err := r.db.Get(&reg, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return &reg, nil
}

func (r *registrationRepository) List(limit int) ([]*model.Registration, error) {
	var regs []*model.Registration
	query := r.db.Rebind(`SELECT * FROM registrations ORDER BY created_at DESC LIMIT ?`)
	err := r.db.Select(&regs, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

func (r *registrationRepository) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM registrations`)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return n, nil
}
