package heat

import (
	"errors"
	"time"

	"github.com/256dpi/xo"
	"github.com/golang-jwt/jwt/v4"
)

var jwtSigningMethod = jwt.SigningMethodHS256

var jwtParser = jwt.NewParser(jwt.WithValidMethods([]string{jwtSigningMethod.Name}))

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// ErrInvalidToken is returned if a token is in some way invalid.
var ErrInvalidToken = errors.New("invalid token")

// ErrExpiredToken is returned if a token is expired but otherwise valid.
var ErrExpiredToken = errors.New("expired token")

// RawKey represents the decoded contents of a token.
type RawKey struct {
	ID     string
	Email  string
	Expiry time.Time
}

// Verify will verify the specified token and return the decoded raw key.
func Verify(secret []byte, issuer, token string) (*RawKey, error) {
	// parse token
	var claims jwtClaims
	tkn, err := jwtParser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if valErr, ok := err.(*jwt.ValidationError); ok && valErr != nil {
		if valErr.Errors == jwt.ValidationErrorExpired {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	} else if err != nil {
		return nil, ErrInvalidToken
	} else if !tkn.Valid {
		return nil, ErrInvalidToken
	}

	// check issuer
	if claims.Issuer != issuer {
		return nil, ErrInvalidToken
	}

	// check id and email
	if claims.ID == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	// check expiry
	if claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &RawKey{
		ID:     claims.ID,
		Email:  claims.Email,
		Expiry: claims.ExpiresAt.Time,
	}, nil
}

// Issue will sign a token from the specified raw key.
func Issue(secret []byte, issuer string, key RawKey) (string, error) {
	// check id
	if key.ID == "" {
		return "", xo.F("missing id")
	}

	// check email
	if key.Email == "" {
		return "", xo.F("missing email")
	}

	// check expiry
	if key.Expiry.IsZero() {
		return "", xo.F("missing expiry")
	}

	// create token
	token := jwt.NewWithClaims(jwtSigningMethod, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ID:        key.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(key.Expiry),
		},
		Email: key.Email,
	})

	// compute signature
	sig, err := token.SignedString(secret)
	if err != nil {
		return "", xo.W(err)
	}

	return sig, nil
}
