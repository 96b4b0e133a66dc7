package burgerapi

import (
	"net/http"

	"github.com/osse101/BurgerClient_Go/internal/apiclient"
	"github.com/osse101/BurgerClient_Go/internal/domain"
)

// Envelope is the tagged part of every backend body. A response whose
// Success flag is false is a failure even when the transport status was 2xx.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (e Envelope) failure() error {
	if e.Success {
		return nil
	}
	return apiclient.NewAPIError(http.StatusOK, e.Message)
}

type result interface {
	failure() error
}

// IngredientsResponse is the body of GET /ingredients
type IngredientsResponse struct {
	Envelope
	Data []domain.Ingredient `json:"data"`
}

// FeedResponse is the body of GET /orders/all and GET /orders
type FeedResponse struct {
	Envelope
	Orders     []domain.Order `json:"orders"`
	Total      int            `json:"total"`
	TotalToday int            `json:"totalToday"`
}

// OrderLookupResponse is the body of GET /orders/{number}
type OrderLookupResponse struct {
	Envelope
	Orders []domain.Order `json:"orders"`
}

// PlaceOrderRequest is the body of POST /orders
type PlaceOrderRequest struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
}

// PlaceOrderResponse is the body of POST /orders
type PlaceOrderResponse struct {
	Envelope
	Name  string       `json:"name"`
	Order domain.Order `json:"order"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the body of a successful login or registration
type AuthResponse struct {
	Envelope
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         domain.User `json:"user"`
}

// UserResponse is the body of GET and PATCH /auth/user
type UserResponse struct {
	Envelope
	User domain.User `json:"user"`
}

// UpdateUserRequest is the body of PATCH /auth/user. Empty fields are left
// unchanged by the backend.
type UpdateUserRequest struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// HasPassword reports whether the update changes the password
func (r UpdateUserRequest) HasPassword() bool {
	return r.Password != ""
}

// ForgotPasswordRequest is the body of POST /password-reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the body of POST /password-reset/reset
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
	Token    string `json:"token" validate:"required"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

// MessageResponse is a body that only carries the envelope
type MessageResponse struct {
	Envelope
}
