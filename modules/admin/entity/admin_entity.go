package entity

import (
	"time"

	"github.com/google/uuid"
)

type AdminAccount struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	RoleID       int       `db:"role_id"`
	CreatedAt    time.Time `db:"created_at"`
}
