package security

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor (2^10 rounds).
const PasswordCost = 10

// MaxPasswordBytes is the most input bcrypt consumes; longer passwords are
// cut to this many bytes before hashing and comparing.
const MaxPasswordBytes = 72

// passwordBytes truncates plain to MaxPasswordBytes without splitting a
// UTF-8 sequence.
func passwordBytes(plain string) []byte {
	if len(plain) <= MaxPasswordBytes {
		return []byte(plain)
	}

	cut := MaxPasswordBytes
	for cut > 0 && !utf8.RuneStart(plain[cut]) {
		cut--
	}

	return []byte(plain[:cut])
}

// Hash password hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordBytes(plain), PasswordCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// helper that compares a bcrypt hash with a plaintext password in constant time.

func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(plain))
}

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), PasswordCost)
	return h
})

// BurnCompare runs one bcrypt comparison against a throwaway hash so that a
// login for an unknown email costs about as much as a wrong password.
func BurnCompare(plain string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), passwordBytes(plain))
}
