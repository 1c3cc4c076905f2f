package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"strconv"
)

// aesSubjectCipher encrypts the decimal form of a user id with AES-256-CBC
// under a fixed key and IV, PKCS#7 padded and hex encoded. The fixed IV makes
// the output deterministic, which lets the same user always map to the same
// subject.
type aesSubjectCipher struct {
	block cipher.Block
	iv    []byte
}

// NewSubjectCipher builds a [SubjectCipher] from a hex-encoded 32-byte key
// and a hex-encoded 16-byte IV.
func NewSubjectCipher(hexKey, hexIV string) (SubjectCipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != 32 {
		return nil, fmt.Errorf("%w: key must be 64 hex characters", ErrInvalidKey)
	}

	iv, err := hex.DecodeString(hexIV)
	if err != nil || len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: iv must be 32 hex characters", ErrInvalidKey)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return &aesSubjectCipher{block: block, iv: iv}, nil
}

// Encrypt implements [SubjectCipher].
func (c *aesSubjectCipher) Encrypt(userID int64) (string, error) {
	plaintext := pkcs7Pad([]byte(strconv.FormatInt(userID, 10)), aes.BlockSize)

	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(ciphertext, plaintext)

	return hex.EncodeToString(ciphertext), nil
}

// Decrypt implements [SubjectCipher].
func (c *aesSubjectCipher) Decrypt(subject string) (int64, error) {
	ciphertext, err := hex.DecodeString(subject)
	if err != nil {
		return 0, fmt.Errorf("%w: not hex encoded", ErrInvalidSubject)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return 0, fmt.Errorf("%w: bad length %d", ErrInvalidSubject, len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, c.iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(string(unpadded), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSubject, err)
	}

	return userID, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := len(data)
	if n == 0 || n%blockSize != 0 {
		return nil, fmt.Errorf("%w: bad padding", ErrInvalidSubject)
	}

	padding := int(data[n-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("%w: bad padding", ErrInvalidSubject)
	}

	for _, b := range data[n-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("%w: bad padding", ErrInvalidSubject)
		}
	}

	return data[:n-padding], nil
}
