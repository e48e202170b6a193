package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"keeper/services"
	"keeper/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.JWTSecretKey = "test_secret_key"
	utils.JWTExpirationTime = 3600
}

func protectedRouter() (*gin.Engine, *gin.H) {
	seen := &gin.H{}
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/me", func(c *gin.Context) {
		(*seen)["userID"] = c.GetString("userID")
		(*seen)["email"] = c.GetString("email")
		(*seen)["role"] = c.GetString("role")
		c.Status(http.StatusOK)
	})
	return router, seen
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsIssuedToken(t *testing.T) {
	router, seen := protectedRouter()

	token, err := services.GenerateJWT("u1", "alice@example.com", "Student")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := request(router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if (*seen)["userID"] != "u1" || (*seen)["email"] != "alice@example.com" || (*seen)["role"] != "Student" {
		t.Errorf("claims not propagated to context: %+v", *seen)
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	signed := func(claims jwt.MapClaims, secret string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, err := token.SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}

	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		header string
	}{
		{"MissingHeader", ""},
		{"NotBearer", "Basic abcdef"},
		{"Garbage", "Bearer not-a-token"},
		{"WrongSecret", "Bearer " + signed(jwt.MapClaims{"user_id": "u1", "exp": exp}, "other_secret")},
		{"Expired", "Bearer " + signed(jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(-time.Hour).Unix()}, "test_secret_key")},
		{"NoUserID", "Bearer " + signed(jwt.MapClaims{"email": "a@b.c", "exp": exp}, "test_secret_key")},
		{"EmptyUserID", "Bearer " + signed(jwt.MapClaims{"user_id": "", "exp": exp}, "test_secret_key")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := protectedRouter()
			w := request(router, tc.header)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401, body %s", w.Code, w.Body.String())
			}
		})
	}
}
