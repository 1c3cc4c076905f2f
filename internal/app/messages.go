// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// learning platform HTTP handlers.
//
// All Msg* constants are human-readable message strings written into the
// "message" field of response envelopes. Keeping them in one place keeps the
// wording consistent throughout the API.
package app

// Authentication.
const (
	MsgRegistrationSuccessful = "Registration successful"
	MsgLoginSuccessful        = "Login successful"
	MsgAccessTokenRefreshed   = "Access token refreshed"
)

// Profiles.
const (
	MsgProfileRetrieved      = "User profile retrieved successfully"
	MsgProfileSetup          = "Profile setup successfully"
	MsgProfilePictureUpdated = "Profile picture updated successfully"
)

// Learning content.
const (
	MsgChaptersListed         = "List of chapters retrieved successfully"
	MsgTopicsListed           = "List of topics retrieved successfully"
	MsgChapterCreated         = "Chapter successfully created"
	MsgTopicCreated           = "Topic successfully created"
	MsgQuestionCreated        = "Question successfully created"
	MsgChapterProgressUpdated = "Chapter progress updated successfully"
	MsgTopicProgressUpdated   = "Topic progress updated successfully"
)

// Search results, one per searchable catalogue.
const (
	MsgChaptersFound     = "Chapters retrieved successfully"
	MsgTopicsFound       = "Topics retrieved successfully"
	MsgDifficultiesFound = "Difficulties retrieved successfully"
	MsgTypesFound        = "Types retrieved successfully"
)

// MsgRouteNotFound is returned for unknown routes and unsupported methods.
const MsgRouteNotFound = "route not found"
