package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"fintrack/internal/config"
)

// PasswordHasher produces and verifies stored credential hashes. Hash output
// is opaque to callers; Verify accepts any format a hasher in this package
// has ever produced, so a database can hold a mix of schemes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

// NewPasswordHasher returns the hasher for the configured scheme.
func NewPasswordHasher(scheme config.PasswordScheme) PasswordHasher {
	if scheme == config.PasswordSchemeArgon2id {
		return Argon2Hasher{}
	}
	return SHA256Hasher{}
}

// SHA256Hasher implements the legacy scheme: a single unsalted SHA-256 digest
// over the UTF-8 bytes of the password, rendered as lowercase hex. Identical
// passwords produce identical hashes, so existing databases remain readable.
type SHA256Hasher struct{}

// Hash returns the lowercase hex SHA-256 digest of password.
func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// Verify checks password against a stored hash of either scheme.
func (SHA256Hasher) Verify(password, stored string) bool {
	return verify(password, stored)
}

const (
	argon2Prefix  = "$argon2id$"
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

// Argon2Hasher implements the recommended scheme: argon2id with a random
// per-credential salt, encoded in the standard PHC string format.
type Argon2Hasher struct{}

// Hash derives an argon2id key from password with a fresh random salt.
func (Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
	return encoded, nil
}

// Verify checks password against a stored hash of either scheme.
func (Argon2Hasher) Verify(password, stored string) bool {
	return verify(password, stored)
}

// verify dispatches on the stored format.
func verify(password, stored string) bool {
	if strings.HasPrefix(stored, argon2Prefix) {
		return verifyArgon2(password, stored)
	}
	return verifySHA256(password, stored)
}

func verifySHA256(password, stored string) bool {
	sum := sha256.Sum256([]byte(password))
	computed := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1
}

func verifyArgon2(password, stored string) bool {
	parts := strings.Split(stored, "$")
	// "", "argon2id", "v=19", "m=...,t=...,p=...", salt, key
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(computed, key) == 1
}
