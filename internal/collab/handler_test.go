package collab

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	userID string
	err    error
}

func (f *fakeVerifier) VerifyToken(token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.userID, nil
}

func TestServeHTTP_RejectsNonGET(t *testing.T) {
	h := NewHandler(NewHub(), &fakeVerifier{userID: "u1"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ws", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeHTTP_RequiresToken(t *testing.T) {
	h := NewHandler(NewHub(), &fakeVerifier{userID: "u1"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServeHTTP_RejectsBadToken(t *testing.T) {
	h := NewHandler(NewHub(), &fakeVerifier{err: errors.New("bad token")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws?token=nope", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws?token=query-token", nil)
	require.Equal(t, "query-token", tokenFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	require.Equal(t, "header-token", tokenFromRequest(r))

	// Query parameter wins over the header.
	r = httptest.NewRequest(http.MethodGet, "/ws?token=query-token", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	require.Equal(t, "query-token", tokenFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Authorization", "Basic abc")
	require.Equal(t, "", tokenFromRequest(r))
}
