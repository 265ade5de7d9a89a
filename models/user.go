package models

import "time"

type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPatch holds the mutable user fields. Nil fields are left untouched.
type UserPatch struct {
	Username *string
	Email    *string
	FullName *string
	IsActive *bool
}
