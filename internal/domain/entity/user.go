package entity

import "time"

// Admin representa un administrador del panel (colección admins).
type Admin struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano
	CreatedAt    time.Time
}
