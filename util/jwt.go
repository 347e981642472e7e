package util

import (
	"fmt"
	"movie_tracker/configs"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionDuration = 30 * 24 * time.Hour

type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CreateSessionToken signs an HS256 session token for the given (normalized)
// username. The token is stored in the "session" cookie and its jti is used
// as the blacklist key on logout.
func CreateSessionToken(username string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.GetConfigs().SessionSecret))
}

func VerifySessionToken(tokenString string) (*jwt.Token, *SessionClaims, error) {
	claims := SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signature method")
		}
		return []byte(configs.GetConfigs().SessionSecret), nil
	})

	if err != nil {
		return nil, nil, err
	}

	return token, &claims, nil
}
