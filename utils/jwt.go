package utils

import (
	"log"
	"os"
)

var (
	JWTSecretKey      string
	JWTExpirationTime int64
)

// InitJWT loads the signing secret and token lifetime from the environment.
// Called once from the process entry point, before any token is issued.
func InitJWT() {
	// For tests, fall back to a fixed secret so handlers can run standalone
	if os.Getenv("GO_ENV") == "test" && os.Getenv("JWT_SECRET_KEY") == "" {
		os.Setenv("JWT_SECRET_KEY", "test_secret_key")
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT Secret Key not set")
	}

	// Token lifetime in seconds, 24h by default
	JWTExpirationTime = int64(GetEnvAsInt("JWT_EXPIRATION_TIME", 86400))
}
