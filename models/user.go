package models

import (
	"errors"

	goval "github.com/go-passwd/validator"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account on the messaging platform.
type User struct {
	Model
	Username       string  `json:"username" gorm:"uniqueIndex;not null" binding:"required,min=2" conform:"trim"`
	Email          string  `json:"email" gorm:"uniqueIndex;not null" binding:"required,email" conform:"trim,lower"`
	FirstName      string  `json:"first_name" conform:"trim"`
	LastName       string  `json:"last_name" conform:"trim"`
	PhoneNumber    *string `json:"phone_number,omitempty" gorm:"default:null"`
	IsStaff        bool    `json:"is_staff" gorm:"default:false"`
	Password       string  `json:"password,omitempty" gorm:"-"`
	HashedPassword string  `json:"-"`

	Conversations []*Conversation `gorm:"many2many:conversation_participants;" json:"-"`
}

// UserResponse is the outward shape of a user record. The credential never
// round-trips: neither the plaintext nor the hash appears here.
type UserResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	IsStaff     bool    `json:"is_staff"`
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		IsStaff:     u.IsStaff,
	}
}

// CreateUserRequest is the admin-only user creation payload.
type CreateUserRequest struct {
	Username    string  `json:"username" binding:"required,min=2" conform:"trim"`
	Email       string  `json:"email" binding:"required,email" conform:"trim,lower"`
	FirstName   string  `json:"first_name" conform:"trim"`
	LastName    string  `json:"last_name" conform:"trim"`
	PhoneNumber *string `json:"phone_number"`
	IsStaff     bool    `json:"is_staff"`
	Password    string  `json:"password" binding:"required"`
}

// UpdateUserRequest carries a partial update; nil fields are left untouched.
// A non-nil Password triggers a re-hash, otherwise the stored hash stands.
type UpdateUserRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	IsStaff     *bool   `json:"is_staff"`
	Password    *string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Blacklist holds revoked access tokens; the auth middleware rejects any
// token present here.
type Blacklist struct {
	Model
	Token string `json:"token" gorm:"index"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(72, errors.New("password cant be more than 72 characters")))
	return passwordValidator.Validate(password)
}

// NormalizeStrings applies the struct's conform tags in place.
func NormalizeStrings(data interface{}) error {
	return conform.Strings(data)
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}
