package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// TokenHasher derives the lookup digest stored for a refresh token:
// HMAC-SHA256 under the configured key, or plain SHA-256 without one.
// It is safe for concurrent use.
type TokenHasher struct {
	pool sync.Pool
}

func NewTokenHasher(hashKey string) *TokenHasher {
	h := &TokenHasher{}
	key := []byte(hashKey)
	h.pool.New = func() any {
		if len(key) == 0 {
			return sha256.New()
		}
		return hmac.New(sha256.New, key)
	}
	return h
}

// Hash returns the hex digest of data.
func (h *TokenHasher) Hash(data []byte) string {
	mac := h.pool.Get().(hash.Hash)
	defer h.pool.Put(mac)

	mac.Reset()
	_, _ = mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *TokenHasher) HashString(data string) string {
	return h.Hash([]byte(data))
}
