package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier checks a plaintext password against a stored hash.
// Two variants exist: bcrypt for current credentials and a legacy SHA-256
// hex digest still present on older delivery partner rows. Legacy hashes
// are upgraded to bcrypt on successful login.
type PasswordVerifier interface {
	Verify(password, hash string) bool
	NeedsUpgrade() bool
}

type bcryptVerifier struct{}

func (bcryptVerifier) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (bcryptVerifier) NeedsUpgrade() bool { return false }

type legacyDigestVerifier struct{}

func (legacyDigestVerifier) Verify(password, hash string) bool {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]) == hash
}

func (legacyDigestVerifier) NeedsUpgrade() bool { return true }

// VerifierForHash picks the verifier matching the stored hash format.
func VerifierForHash(hash string) PasswordVerifier {
	if strings.HasPrefix(hash, "$2") {
		return bcryptVerifier{}
	}
	return legacyDigestVerifier{}
}

// HashPassword produces the current (bcrypt) hash form.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
