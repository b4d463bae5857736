package jwt

import (
	"fmt"
	"time"

	"watch-party-backend/internal/env"

	"github.com/golang-jwt/jwt"
)

const AccessTokenTTL = 24 * time.Hour

func roleSecret(role Role) (string, error) {
	switch role {
	case RoleUser:
		if s := env.Get(env.UserSecretKey); s != "" {
			return s, nil
		}
	case RoleAdmin:
		if s := env.Get(env.AdminSecretKey); s != "" {
			return s, nil
		}
	}
	return "", fmt.Errorf("no signing secret configured for role %d", role)
}

func CreateToken(user User, role Role, validUntil int64) (string, error) {
	secret, err := roleSecret(role)
	if err != nil {
		return "", err
	}

	if validUntil == 0 {
		validUntil = time.Now().Add(AccessTokenTTL).Unix()
	}

	claims := jwt.MapClaims{
		"id":    user.Id,
		"email": user.Email,
		"exp":   validUntil,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(tokenString string, role Role) (jwt.MapClaims, error) {
	if len(tokenString) == 0 {
		return nil, fmt.Errorf("token string is empty")
	}

	secret, err := roleSecret(role)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %v", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid - unauthorized")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("claims of unauthorized type")
	}

	return claims, nil
}
