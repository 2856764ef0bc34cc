package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "unit-test-secret"

func signedToken(t *testing.T, userID, userType, secret string) string {
	t.Helper()
	claims := JWTClaims{
		UserID:   userID,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func protectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthRequired(testSecret)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/protected", chain...)
	return r
}

func TestAuthRequired(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not a bearer token", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signedToken(t, userID, "customer", "other-secret"), http.StatusUnauthorized},
		{"bad user id in claims", "Bearer " + signedToken(t, "not-an-object-id", "customer", testSecret), http.StatusUnauthorized},
		{"valid token", "Bearer " + signedToken(t, userID, "customer", testSecret), http.StatusOK},
	}

	router := protectedRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthRequiredSetsUserContext(t *testing.T) {
	userID := primitive.NewObjectID()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthRequired(testSecret), func(c *gin.Context) {
		got, exists := c.Get("user_id")
		if !exists {
			t.Error("user_id not set")
		}
		if id, ok := got.(primitive.ObjectID); !ok || id != userID {
			t.Errorf("user_id = %v, want %v", got, userID)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, userID.Hex(), "customer", testSecret))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestProviderRequired(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	router := protectedRouter(ProviderRequired())

	tests := []struct {
		name       string
		userType   string
		wantStatus int
	}{
		{"provider allowed", "provider", http.StatusOK},
		{"customer forbidden", "customer", http.StatusForbidden},
		{"admin forbidden", "admin", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+signedToken(t, userID, tt.userType, testSecret))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
