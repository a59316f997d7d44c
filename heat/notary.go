// Package heat issues and verifies the signed credentials used to
// authenticate API requests.
package heat

import (
	"time"

	"github.com/256dpi/xo"
	"github.com/asaskevich/govalidator"

	"github.com/threadnexus/nexus/coal"
)

// Lifespan is the validity of issued credentials. There is no revocation, a
// credential stays valid until it expires.
const Lifespan = 365 * 24 * time.Hour

// Identity is the verified identity asserted by a credential.
type Identity struct {
	ID     string
	Email  string
	Expiry time.Time
}

// Notary is used to issue and verify credentials.
type Notary struct {
	issuer   string
	secret   []byte
	lifespan time.Duration
}

// NewNotary creates a new notary with the specified name and secret. The
// signing key is derived from the secret using the name. It will panic if the
// name is missing or the specified secret is less that 16 bytes.
func NewNotary(name string, secret []byte) *Notary {
	// check name
	if name == "" {
		panic("heat: missing name")
	}

	// check secret
	if len(secret) < 16 {
		panic("heat: secret too small")
	}

	return &Notary{
		issuer:   name,
		secret:   Secret(secret).Derive(name),
		lifespan: Lifespan,
	}
}

// Issue will generate a credential for the specified email.
func (n *Notary) Issue(email string) (string, error) {
	// check email
	if !govalidator.IsEmail(email) {
		return "", xo.SF("invalid email")
	}

	// issue token
	token, err := Issue(n.secret, n.issuer, RawKey{
		ID:     coal.New().Hex(),
		Email:  email,
		Expiry: time.Now().Add(n.lifespan),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// Verify will verify the specified credential and return the asserted
// identity.
func (n *Notary) Verify(token string) (*Identity, error) {
	// verify token
	rawKey, err := Verify(n.secret, n.issuer, token)
	if err != nil {
		return nil, err
	}

	return &Identity{
		ID:     rawKey.ID,
		Email:  rawKey.Email,
		Expiry: rawKey.Expiry,
	}, nil
}
