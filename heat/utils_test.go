package heat

import "github.com/golang-jwt/jwt/v4"

var testSecret = MustRandomSecret(32)

func makeToken(claims jwtClaims, secret []byte) string {
	token, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString(secret)
	if err != nil {
		panic(err)
	}

	return token
}
