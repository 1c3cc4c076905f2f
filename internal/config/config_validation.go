// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// Errors returned by validate, one per configuration group.
var (
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	ErrInvalidAppConfigs     = errors.New("invalid app configuration")
	ErrInvalidServerConfigs  = errors.New("invalid server configuration")
)

const (
	encryptionKeySize = 32 // AES-256
	encryptionIVSize  = 16 // AES block size
)

// validate rejects configurations the server cannot start with. The sign
// key, the encryption key and the IV have no defaults.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	if err := checkHexKey(cfg.App.EncryptionKey, encryptionKeySize); err != nil {
		return fmt.Errorf("%w: encryption key: %w", ErrInvalidAppConfigs, err)
	}

	if err := checkHexKey(cfg.App.EncryptionIV, encryptionIVSize); err != nil {
		return fmt.Errorf("%w: encryption iv: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.App.AccessTokenDuration <= 0 || cfg.App.RefreshTokenDuration <= 0 {
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func checkHexKey(value string, size int) error {
	if value == "" {
		return fmt.Errorf("value is required")
	}

	decoded, err := hex.DecodeString(value)
	if err != nil {
		return fmt.Errorf("value is not hex encoded: %w", err)
	}

	if len(decoded) != size {
		return fmt.Errorf("expected %d bytes, got %d", size, len(decoded))
	}

	return nil
}
