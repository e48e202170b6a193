package services

import (
	"time"

	"keeper/utils"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT issues a bearer token carrying the user's id, email and role.
func GenerateJWT(userID, email, role string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(utils.JWTExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}
