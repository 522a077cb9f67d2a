package models

import "time"

// Session is the proof of a logged-in user. At most one session is active
// per store; login replaces it and logout clears it.
type Session struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Role     UserRole  `json:"role"`
	IssuedAt time.Time `json:"issued_at"`
}
