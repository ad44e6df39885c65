package model

import "time"

// Registration is a beta signup submitted from the landing page.
type Registration struct {
	ID        string    `db:"id"`
	FullName  string    `db:"full_name"`
	GymName   string    `db:"gym_name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
