// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

const unknownBuildValue = "N/A"

// AppBuildInfo is the metadata injected with -ldflags at build time. Any
// field may be empty for local builds.
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// VersionOr returns the build version, or fallback for builds without one.
func (a AppBuildInfo) VersionOr(fallback string) string {
	if a.Version == "" {
		return fallback
	}
	return a.Version
}

// String renders the startup banner, one field per line.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s",
		orUnknown(a.Version), orUnknown(a.Date), orUnknown(a.Commit))
}

func orUnknown(v string) string {
	if v == "" {
		return unknownBuildValue
	}
	return v
}
