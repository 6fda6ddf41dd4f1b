package users

import (
	"time"
)

// User represents an account row in the users table.
// Email and HashedPassword are never serialized; API responses expose
// only the public profile fields.
type User struct {
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
	ID             string    `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	FullName       string    `json:"fullName" db:"full_name"`
	Email          string    `json:"-" db:"email"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	ProfileImg     string    `json:"profileImg,omitempty" db:"profile_img"`
}

// Profile is the public view of a user returned by the API
type Profile struct {
	CreatedAt  time.Time `json:"createdAt"`
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	FullName   string    `json:"fullName"`
	ProfileImg string    `json:"profileImg,omitempty"`
	Followers  int       `json:"followers"`
	Following  int       `json:"following"`
}

// SignupRequest represents the input for creating a new account
type SignupRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the input for authenticating
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// FollowResult reports the outcome of a follow toggle
type FollowResult struct {
	TargetID  string `json:"targetId"`
	Following bool   `json:"following"`
}
