// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Profile is the 1:1 extension of [User] holding display attributes.
// Optional columns are pointers so that NULL survives the round trip
// to JSON as null.
type Profile struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	FullName       string     `json:"fullname"`
	ProfilePicture string     `json:"profile_picture"`
	PhoneNumber    *string    `json:"phone_number"`
	BirthDate      *time.Time `json:"birth_date"`
	Address        *string    `json:"address"`
	City           *string    `json:"city"`
	Country        *string    `json:"country"`
	Gender         *string    `json:"gender"`
	School         *string    `json:"school"`
	Class          *string    `json:"class"`
	GraduationYear *int       `json:"graduation_year"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CreatedBy      *int64     `json:"created_by"`
	UpdatedBy      *int64     `json:"updated_by"`
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "profiles"
}

// ProfileInput is the payload accepted by the profile setup endpoint.
type ProfileInput struct {
	FullName       string  `json:"fullname" validate:"required,min=3,max=50"`
	PhoneNumber    *string `json:"phone_number" validate:"omitempty,phone"`
	BirthDate      *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Address        *string `json:"address" validate:"omitempty,max=255"`
	City           *string `json:"city" validate:"omitempty,max=100"`
	Country        *string `json:"country" validate:"omitempty,max=100"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=male female other"`
	School         *string `json:"school" validate:"omitempty,max=100"`
	Class          *string `json:"class" validate:"omitempty,max=50"`
	GraduationYear *int    `json:"graduation_year" validate:"omitempty,graduation_year"`
}

// ProfileSummary is the short profile shown for the signed-in user.
type ProfileSummary struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture"`
}

// ProfileDetail is the complete profile of the signed-in user.
type ProfileDetail struct {
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FullName       string     `json:"fullName"`
	PhoneNumber    string     `json:"phoneNumber"`
	BirthDate      *time.Time `json:"birthDate"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	Country        string     `json:"country"`
	Gender         string     `json:"gender"`
	ProfilePicture string     `json:"profilePicture"`
	School         string     `json:"school"`
	Class          string     `json:"class"`
	GraduationYear *int       `json:"graduationYear"`
	CreatedAt      *time.Time `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt"`
}

// PublicProfile is the subset of a profile visible to anyone by username.
type PublicProfile struct {
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture"`
	City           string `json:"city"`
	Country        string `json:"country"`
	School         string `json:"school"`
	Class          string `json:"class"`
	GraduationYear *int   `json:"graduationYear"`
}

// UploadedFile is a binary payload received from a multipart form.
type UploadedFile struct {
	Name    string
	Content []byte
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Present reports whether f holds a file with content.
func (f *UploadedFile) Present() bool {
	return f != nil && len(f.Content) > 0
}
