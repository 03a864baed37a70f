package domain

import "time"

// User is a locally registered account. Authentication is simulated against
// the snapshot store; PasswordHash is a bcrypt hash and never serialized in
// API responses.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the API-safe projection of a User.
type PublicUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Public strips credential material from the user record.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, AvatarURL: u.AvatarURL}
}
