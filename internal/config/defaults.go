// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	defaultHTTPAddress          = ":8080"
	defaultTokenIssuer          = "go-learning-platform"
	defaultAccessTokenDuration  = 15 * time.Minute
	defaultRefreshTokenDuration = 7 * 24 * time.Hour
	defaultRequestTimeout       = 30 * time.Second
	defaultAuthRateLimitRPS     = 5
	defaultAuthRateLimitBurst   = 10
	defaultMaxUploadSize        = 5 << 20 // 5 MiB
	defaultFirebaseCertsURL     = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	defaultImageKitUploadURL    = "https://upload.imagekit.io/api/v1/files/upload"
	defaultImageKitAPIURL       = "https://api.imagekit.io/v1"
	defaultAdapterTimeout       = 10 * time.Second
	defaultTokenPurgeInterval   = time.Hour
)

// defaultConfig returns the lowest-priority configuration layer. mergo only
// fills zero fields, so it is appended last.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:          defaultTokenIssuer,
			AccessTokenDuration:  defaultAccessTokenDuration,
			RefreshTokenDuration: defaultRefreshTokenDuration,
		},
		Server: Server{
			HTTPAddress:        defaultHTTPAddress,
			RequestTimeout:     defaultRequestTimeout,
			AuthRateLimitRPS:   defaultAuthRateLimitRPS,
			AuthRateLimitBurst: defaultAuthRateLimitBurst,
			MaxUploadSize:      defaultMaxUploadSize,
		},
		Adapter: Adapter{
			FirebaseCertsURL:  defaultFirebaseCertsURL,
			ImageKitUploadURL: defaultImageKitUploadURL,
			ImageKitAPIURL:    defaultImageKitAPIURL,
			RequestTimeout:    defaultAdapterTimeout,
		},
		Workers: Workers{
			TokenPurgeInterval: defaultTokenPurgeInterval,
		},
	}
}
