package server

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize          = 32 // AES-256
	nonceSize        = 12 // GCM standard nonce size
	saltSize         = 16
	pbkdf2Iterations = 100000
)

// TokenCipher encrypts backend bearer tokens before they hit the session
// store, so a leaked database does not leak live credentials.
type TokenCipher struct {
	key []byte
}

// NewTokenCipher derives an AES key from the configured secret.
func NewTokenCipher(secret string, salt []byte) *TokenCipher {
	key := pbkdf2.Key([]byte(secret), salt, pbkdf2Iterations, keySize, sha256.New)
	return &TokenCipher{key: key}
}

// newCipher builds the cipher from the configured secret and the salt
// persisted in the meta table, generating the salt on first run.
func (s *Server) newCipher(secret string) (*TokenCipher, error) {
	if secret == "" {
		return nil, errors.New("session secret not configured")
	}

	var encoded string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = $1`, "session_salt").Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		salt := make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, err
		}
		encoded = base64.StdEncoding.EncodeToString(salt)
		if _, err := s.db.Exec(`INSERT INTO meta (key, value) VALUES ($1, $2)`, "session_salt", encoded); err != nil {
			return nil, fmt.Errorf("failed to persist session salt: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("corrupt session salt: %w", err)
	}
	return NewTokenCipher(secret, salt), nil
}

// Encrypt encrypts data using AES-256-GCM
func (tc *TokenCipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(tc.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// Seal appends nonce + ciphertext
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts data using AES-256-GCM
func (tc *TokenCipher) Decrypt(encrypted string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", err
	}

	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	block, err := aes.NewCipher(tc.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := data[:nonceSize]
	ciphertext := data[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.New("decryption failed: invalid key or corrupted data")
	}

	return string(plaintext), nil
}
