package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	Cart      Cart      `json:"cart"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Principal is the resolved identity of a caller, handed to operations that
// need an authorization decision.
type Principal struct {
	UserID  string
	IsAdmin bool
}
