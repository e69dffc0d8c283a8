package models

import (
	"time"
)

// DefaultRole is assigned to users registered without an explicit role.
const DefaultRole = "maintenance_tech"

// User represents a user in the system. Passwords are stored only as bcrypt hashes.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Name         string    `bson:"name" json:"name"`
	Role         string    `bson:"role" json:"role"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// UserInsert carries the fields for creating a user. The password is hashed
// before it reaches the storage layer.
type UserInsert struct {
	Username     string `json:"username" validate:"required,min=3,max=50"`
	PasswordHash string `json:"-" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Role         string `json:"role,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
}

// NewRecord builds a full User from an insert payload.
func (in UserInsert) NewRecord(id string, now time.Time) User {
	user := User{
		ID:           id,
		Username:     in.Username,
		PasswordHash: in.PasswordHash,
		Name:         in.Name,
		Role:         in.Role,
		Email:        in.Email,
		CreatedAt:    now,
	}
	if user.Role == "" {
		user.Role = DefaultRole
	}
	return user
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Claims represents JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Exp      int64  `json:"exp"`
}
