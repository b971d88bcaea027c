package model

import "time"

// User exists for the administrative bootstrap (create-admin) and as the row
// the auth collaborator checks its is-admin flag against. Account management
// beyond that is out of scope.
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"` // unique
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}
