package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/rideaway/vehicle-rental/internal/apperr"
	"github.com/rideaway/vehicle-rental/internal/domain"
)

// Claims is the bearer-token payload: email, role and the user id in Subject.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func IssueToken(user *domain.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseToken(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, apperr.Wrap(apperr.Unauthenticated, "Unauthorized", err)
	}
	claims, _ := tok.Claims.(*Claims)
	if claims == nil || claims.Subject == "" || !claims.Role.Valid() {
		return nil, apperr.New(apperr.Unauthenticated, "Unauthorized")
	}
	return claims, nil
}

// TokenFromHeader extracts the raw token from an "Authorization: Bearer <token>"
// header value.
func TokenFromHeader(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperr.New(apperr.Unauthenticated, "You are not authorized!")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", apperr.New(apperr.Unauthenticated, "You are not authorized!")
	}
	return token, nil
}
