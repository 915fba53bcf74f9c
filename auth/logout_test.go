package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"neonpet/cart"
	"neonpet/globals"
	"neonpet/middleware"
	"neonpet/models"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, userID string) string {
	t.Helper()
	claims := &middleware.Claims{
		Username: "tester",
		UserID:   userID,
		Role:     []string{"user"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLogoutDropsCartStore(t *testing.T) {
	reg := cart.NewRegistry()
	reg.Get("u1").AddItem(models.CartItem{ProductID: "p1", Name: "Dog Food", Price: 80, OriginalPrice: 100, Discount: 20})

	r := httptest.NewRequest("POST", "/api/auth/logout", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
	w := httptest.NewRecorder()

	// The Redis token removal may fail in a test environment; the session
	// cart must be discarded regardless.
	LogoutUser(reg)(w, r, nil)

	if got := reg.Get("u1").TotalItems(); got != 0 {
		t.Fatalf("cart survived logout: %d items", got)
	}
}

func TestLogoutRejectsInvalidToken(t *testing.T) {
	reg := cart.NewRegistry()
	reg.Get("u1").AddItem(models.CartItem{ProductID: "p1", Name: "Dog Food", Price: 80, OriginalPrice: 100})

	r := httptest.NewRequest("POST", "/api/auth/logout", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()

	LogoutUser(reg)(w, r, nil)

	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got := reg.Get("u1").TotalItems(); got != 1 {
		t.Fatal("cart dropped for a rejected logout")
	}
}
