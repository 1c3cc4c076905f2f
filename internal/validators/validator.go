// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request models against their validate struct
// tags. Besides the go-playground built-ins it understands strong_password,
// phone and graduation_year.
package validators

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	tagStrongPassword = "strong_password"
	tagPhone          = "phone"
	tagGraduationYear = "graduation_year"

	minGraduationYear = 1900
	passwordSpecials  = "@$!%*?&"
)

var (
	phonePattern  = regexp.MustCompile(`^\+?\d{10,15}$`)
	handlePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,20}$`)
)

// Validator checks v. When fields are given only those struct fields are
// validated.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}

// RequestValidator implements [Validator] on top of go-playground/validator.
// Reported field names are taken from the json struct tag.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a [RequestValidator] with the domain tags
// registered.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation(tagStrongPassword, isStrongPassword)
	_ = v.RegisterValidation(tagPhone, isPhone)
	_ = v.RegisterValidation(tagGraduationYear, isGraduationYear)

	return &RequestValidator{validate: v}
}

// Validate implements [Validator]. When fields are given only those struct
// fields (Go names) are checked.
func (r *RequestValidator) Validate(ctx context.Context, value any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = r.validate.StructPartialCtx(ctx, value, fields...)
	} else {
		err = r.validate.StructCtx(ctx, value)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return ErrUnsupportedType
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return &ValidationError{Errors: validationErrors}
	}

	return err
}

// ValidateHandle checks a public username path parameter: 3 to 20 letters,
// digits, underscores or dots.
func ValidateHandle(username string) error {
	if !handlePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// isStrongPassword requires a lowercase letter, an uppercase letter, a digit
// and one of @$!%*?&, and allows nothing else.
func isStrongPassword(fl validator.FieldLevel) bool {
	var lower, upper, digit, special bool
	for _, c := range fl.Field().String() {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, c):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

func isPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func isGraduationYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= minGraduationYear && year <= int64(maxGraduationYear())
}

func maxGraduationYear() int {
	return time.Now().Year() + 5
}
