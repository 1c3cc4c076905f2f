// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the HTTP layer itself, before a request reaches
// the service layer.
var (
	// ErrUnauthorized is returned by the auth middleware when the request
	// carries no usable "Authorization: Bearer <token>" header.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken is returned by the auth middleware when the bearer
	// token is expired, malformed or not an access token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidRequestBody is returned when a JSON or multipart body cannot
	// be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrInvalidPathParam is returned when a numeric path parameter such as
	// {chapterID} is not a positive integer.
	ErrInvalidPathParam = errors.New("invalid path parameter")

	// ErrTooManyRequests is returned by the rate limiter.
	ErrTooManyRequests = errors.New("too many requests, please try again later")

	// ErrUploadTooLarge is returned when a multipart body exceeds the
	// configured upload limit.
	ErrUploadTooLarge = errors.New("uploaded file is too large")
)
