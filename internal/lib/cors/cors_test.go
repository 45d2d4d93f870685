package cors_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linemk/user-service/internal/lib/cors"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_SetsHeaders(t *testing.T) {
	handler := cors.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/users", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestMiddleware_OptionsShortCircuits(t *testing.T) {
	nextCalled := false
	handler := cors.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest("OPTIONS", "/users", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "Preflight should answer 200")
	assert.Empty(t, rr.Body.String(), "Preflight body must be empty")
	assert.False(t, nextCalled, "Preflight must not reach the next handler")
}
