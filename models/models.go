package models

import "errors"

var ErrBadRequest = errors.New("bad request")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")

var ErrFetch = errors.New("failed to fetch products")
var ErrAuthRequired = errors.New("login required")
var ErrInvalidQuantity = errors.New("quantity must be positive")
var ErrInvalidPromo = errors.New("invalid promo code")
var ErrNoSession = errors.New("no active session")

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type ProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	Country *string `json:"country,omitempty"`
	ZipCode *string `json:"zipCode,omitempty"`
}

type CartRequest struct {
	ProductId int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type PromoRequest struct {
	Code string `json:"code"`
}

type ThemeRequest struct {
	DarkMode bool `json:"darkMode"`
}
