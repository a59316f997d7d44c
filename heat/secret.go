package heat

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/256dpi/xo"
	"golang.org/x/crypto/pbkdf2"
)

// Secret wraps a bytes secret to allow key derivation.
type Secret []byte

// RandomSecret will return a secret of n secure random bytes.
func RandomSecret(n int) (Secret, error) {
	// read from random generator
	bytes := make([]byte, n)
	_, err := io.ReadFull(rand.Reader, bytes)
	if err != nil {
		return nil, xo.W(err)
	}

	return bytes, nil
}

// MustRandomSecret will call RandomSecret and panic on errors.
func MustRandomSecret(n int) Secret {
	// generate secret
	secret, err := RandomSecret(n)
	if err != nil {
		panic(err.Error())
	}

	return secret
}

// Derive will derive a key using the provided string.
func (s Secret) Derive(str string) Secret {
	return pbkdf2.Key(s, []byte(str), 4096, 32, sha256.New)
}
