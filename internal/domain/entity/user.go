package entity

import "time"

// User é a conta de acesso ao painel. A senha é guardada apenas como hash
// bcrypt.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
