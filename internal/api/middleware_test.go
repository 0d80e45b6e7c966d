package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jogoraa/Woliso-Rentals/internal/user"
)

type stubVerifier struct {
	userID string
	err    error
}

func (s stubVerifier) Verify(string) (string, error) { return s.userID, s.err }

type stubLoader struct {
	u   *user.User
	err error
}

func (s stubLoader) FindByID(context.Context, string) (*user.User, error) { return s.u, s.err }

func okHandler(t *testing.T, want *user.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := UserFromContext(r.Context())
		assert.Equal(t, want, got)
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuth_AttachesUser(t *testing.T) {
	u := &user.User{ID: "u1", Role: user.RoleTenant}
	mw := BearerAuth(stubVerifier{userID: "u1"}, stubLoader{u: u})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	mw(okHandler(t, u)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerAuth_MissingHeader(t *testing.T) {
	mw := BearerAuth(stubVerifier{}, stubLoader{})

	rec := httptest.NewRecorder()
	mw(okHandler(t, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuth_InvalidToken(t *testing.T) {
	mw := BearerAuth(stubVerifier{err: errors.New("bad token")}, stubLoader{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()

	mw(okHandler(t, nil)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuth_UnknownUser(t *testing.T) {
	mw := BearerAuth(stubVerifier{userID: "ghost"}, stubLoader{err: errors.New("no rows")})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	mw(okHandler(t, nil)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth_AttachesUserWhenTokenValid(t *testing.T) {
	u := &user.User{ID: "u1", Role: user.RoleAdmin}
	mw := OptionalAuth(stubVerifier{userID: "u1"}, stubLoader{u: u})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	mw(okHandler(t, u)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuth_AnonymousWithoutHeader(t *testing.T) {
	mw := OptionalAuth(stubVerifier{}, stubLoader{})

	rec := httptest.NewRecorder()
	mw(okHandler(t, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuth_AnonymousOnBadToken(t *testing.T) {
	mw := OptionalAuth(stubVerifier{err: errors.New("bad token")}, stubLoader{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()

	mw(okHandler(t, nil)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(u *user.User, roles ...string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if u != nil {
			req = req.WithContext(WithUser(req.Context(), u))
		}
		rec := httptest.NewRecorder()
		RequireRole(roles...)(next).ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(&user.User{Role: user.RoleAdmin}, user.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, serve(&user.User{Role: user.RoleTenant}, user.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, serve(nil, user.RoleAdmin))
}
