// Package models contains plain data records shared by repositories and
// services on the server side.
package models

import "time"

// User is a stored credential record. PasswordHash is a bcrypt hash and must
// never leave the service layer; handlers serialize PublicUser instead.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the sanitized profile returned to clients.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public strips everything a client is not allowed to see.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
