package oauthtest

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// assertionKey signs test assertions. The fake server never checks signatures.
var assertionKey = []byte("oauthtest-assertion-key")

var ErrInvalidAssertion = errors.New("invalid assertion")

// MakeAssertion mints a JWT identity assertion for user, addressed to audience.
func MakeAssertion(user, audience string) (string, error) {
	now := time.Now()
	claims := jwtlib.RegisteredClaims{
		Subject:   user,
		Audience:  jwtlib.ClaimStrings{audience},
		Issuer:    "oauthtest",
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(5 * time.Minute)),
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(assertionKey)
}

// userFromAssertion extracts the subject without verifying the signature.
func userFromAssertion(assertion string) (string, error) {
	token, _, err := jwtlib.NewParser().ParseUnverified(assertion, &jwtlib.RegisteredClaims{})
	if err != nil {
		return "", ErrInvalidAssertion
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidAssertion
	}
	return sub, nil
}
