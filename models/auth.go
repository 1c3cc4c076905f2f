// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the body of a local registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum,min=4,max=20"`
	Password string `json:"password" validate:"required,min=8,max=30,strong_password"`
	FullName string `json:"fullName" validate:"required,min=3,max=50"`
}

// RegisterResult is returned after a successful registration.
type RegisterResult struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// LoginRequest is the body of a local login. Identifier is either the email
// or the username of the account.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required,min=8,max=30"`
}

// GoogleLoginRequest carries the Firebase ID token obtained by the client.
type GoogleLoginRequest struct {
	Token string `json:"token"`
}

// RefreshRequest carries the refresh token to exchange.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Session is the result of a successful sign-in: the user summary and a fresh
// token pair. ID is the encrypted user identifier.
type Session struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture"`
	IsVerified     bool   `json:"isVerified"`
	IsActive       bool   `json:"isActive"`

	TokenPair
}
