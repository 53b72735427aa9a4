package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type AccessClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

func SignAccessToken(claims AccessClaims, secret []byte, ttl time.Duration, now time.Time) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(exp)

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tkn.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func AccessClaimsFromToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
