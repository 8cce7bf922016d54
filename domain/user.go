package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister = "User created successfully"
	MessageSuccessLogin    = "Logged in successfully"
	MessageSuccessLogout   = "Logged out successfully"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"

	ErrEmailAlreadyExists    = errors.New("User with this email already exists")
	ErrUsernameAlreadyExists = errors.New("Username already taken")
	ErrInvalidCredentials    = errors.New("Invalid email or password")
	ErrUserInactive          = errors.New("User account is inactive")
	ErrUserNotFound          = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Username string `json:"username" validate:"required,min=3,max=255"`
		Password string `json:"password" validate:"required,min=6"`
	}

	RegisterResponse struct {
		Message  string `json:"message"`
		UserID   uint   `json:"user_id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Message  string `json:"message"`
		UserID   uint   `json:"user_id"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Token    string `json:"token"`
	}

	MeResponse struct {
		UserID      uint       `json:"user_id"`
		Email       string     `json:"email"`
		Username    string     `json:"username"`
		Active      bool       `json:"active"`
		Roles       []string   `json:"roles"`
		CreatedAt   time.Time  `json:"created_at"`
		LastLoginAt *time.Time `json:"last_login_at"`
	}
)
