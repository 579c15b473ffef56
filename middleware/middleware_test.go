package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signedToken(t *testing.T, secret []byte, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		Username: "admin",
		AdminID:  "a-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestValidateToken(t *testing.T) {
	a := New([]byte("test-secret"))

	claims, err := a.ValidateToken(signedToken(t, a.Secret, time.Hour))
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if claims.AdminID != "a-1" || claims.Username != "admin" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := a.ValidateToken(signedToken(t, []byte("other-secret"), time.Hour)); err == nil {
		t.Error("token signed with a different secret should fail")
	}
	if _, err := a.ValidateToken(signedToken(t, a.Secret, -time.Minute)); err == nil {
		t.Error("expired token should fail")
	}
	if _, err := a.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token should fail")
	}
}

func TestAuthenticate_CookieAndHeader(t *testing.T) {
	a := New([]byte("test-secret"))
	token := signedToken(t, a.Secret, time.Hour)

	handler := a.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if AdminID(r) != "a-1" {
			t.Errorf("AdminID = %q, want a-1", AdminID(r))
		}
		w.WriteHeader(http.StatusOK)
	})

	// cookie
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusOK {
		t.Errorf("cookie auth status = %d", w.Code)
	}

	// bearer header
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusOK {
		t.Errorf("header auth status = %d", w.Code)
	}

	// no credentials
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing token status = %d, want 401", w.Code)
	}
}
