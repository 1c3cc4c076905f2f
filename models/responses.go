// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Envelope is the uniform body of every JSON response.
//
// Error is true for failures, Code repeats the HTTP status and Data carries
// the payload (an empty object when there is nothing to return).
type Envelope struct {
	Error   bool   `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ValidationErrorData is the data block of a 400 response caused by field
// validation. Fields maps the JSON field name to the human message.
type ValidationErrorData struct {
	Fields map[string]string `json:"fields"`
}
