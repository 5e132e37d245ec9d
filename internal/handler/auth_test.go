package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/researchpartner/api/internal/ctxkeys"
	"github.com/researchpartner/api/internal/model"
	"github.com/researchpartner/api/internal/repository"
	"github.com/researchpartner/api/internal/service"
)

// ---- fakes ----

type memUserRepo struct {
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (m *memUserRepo) Create(user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserRepo) ByID(id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUserRepo) ByEmail(email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUserRepo) Update(user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserRepo) Delete(id string) error {
	delete(m.users, id)
	return nil
}

type memSender struct {
	codes []string
}

func (m *memSender) SendOTPEmail(email, code string, purpose service.OTPPurpose) error {
	m.codes = append(m.codes, code)
	return nil
}

// memPaperRepo only supports ByOwner; the /auth/me handler needs nothing
// else. Unused methods panic via the embedded nil interface.
type memPaperRepo struct {
	repository.PaperRepository
	papers []model.Paper
}

func (m *memPaperRepo) ByOwner(ownerID string) ([]model.Paper, error) {
	var out []model.Paper
	for _, p := range m.papers {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type authFixture struct {
	handler   *AuthHandler
	users     *memUserRepo
	sender    *memSender
	paperRepo *memPaperRepo
}

func newAuthFixture() *authFixture {
	users := newMemUserRepo()
	sender := &memSender{}
	paperRepo := &memPaperRepo{}

	authService := service.NewAuthService(users, sender, "test-secret", time.Hour, 10*time.Minute)
	paperService := service.NewPaperService(paperRepo, users, nil, nil, nil, nil, nil, nil, nil)

	return &authFixture{
		handler:   NewAuthHandler(authService, paperService),
		users:     users,
		sender:    sender,
		paperRepo: paperRepo,
	}
}

func (fx *authFixture) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, fx.sender.codes)
	return fx.sender.codes[len(fx.sender.codes)-1]
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// ---- register ----

func TestRegisterEndpoint(t *testing.T) {
	fx := newAuthFixture()

	rec := postJSON(t, fx.handler.Register, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	body := decodeResponse(t, rec)
	require.Equal(t, true, body["success"])
	require.Equal(t, true, body["requiresOTP"])
	require.Equal(t, "alice@example.com", body["email"])
	require.Len(t, fx.sender.codes, 1)
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	fx := newAuthFixture()

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `not json`},
		{"missing name", `{"email":"a@b.com","password":"secret1"}`},
		{"bad email", `{"name":"A","email":"nope","password":"secret1"}`},
		{"short password", `{"name":"A","email":"a@b.com","password":"abc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, fx.handler.Register, "/auth/register", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, false, decodeResponse(t, rec)["success"])
		})
	}
}

func TestRegisterEndpoint_VerifiedConflict(t *testing.T) {
	fx := newAuthFixture()

	rec := postJSON(t, fx.handler.Register, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = postJSON(t, fx.handler.VerifyRegisterOTP, "/auth/verify-register-otp",
		`{"email":"alice@example.com","otp":"`+fx.lastCode(t)+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, fx.handler.Register, "/auth/register",
		`{"name":"Impostor","email":"alice@example.com","password":"secret2"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "already exists")
}

// ---- verify ----

func TestVerifyRegisterOTPEndpoint(t *testing.T) {
	fx := newAuthFixture()

	postJSON(t, fx.handler.Register, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)

	rec := postJSON(t, fx.handler.VerifyRegisterOTP, "/auth/verify-register-otp",
		`{"email":"alice@example.com","otp":"`+fx.lastCode(t)+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, data["token"])
	require.NotEmpty(t, data["_id"])
	require.Equal(t, "alice@example.com", data["email"])
}

func TestVerifyRegisterOTPEndpoint_Errors(t *testing.T) {
	fx := newAuthFixture()

	postJSON(t, fx.handler.Register, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)

	// Missing fields.
	rec := postJSON(t, fx.handler.VerifyRegisterOTP, "/auth/verify-register-otp",
		`{"email":"alice@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Wrong code.
	rec = postJSON(t, fx.handler.VerifyRegisterOTP, "/auth/verify-register-otp",
		`{"email":"alice@example.com","otp":"000000"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid OTP")

	// Unknown identity.
	rec = postJSON(t, fx.handler.VerifyRegisterOTP, "/auth/verify-register-otp",
		`{"email":"ghost@example.com","otp":"000000"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- login ----

func TestLoginEndpoint(t *testing.T) {
	fx := newAuthFixture()

	postJSON(t, fx.handler.Register, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)
	postJSON(t, fx.handler.VerifyRegisterOTP, "/auth/verify-register-otp",
		`{"email":"alice@example.com","otp":"`+fx.lastCode(t)+`"}`)

	rec := postJSON(t, fx.handler.Login, "/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decodeResponse(t, rec)["requiresOTP"])

	rec = postJSON(t, fx.handler.VerifyLoginOTP, "/auth/verify-login-otp",
		`{"email":"alice@example.com","otp":"`+fx.lastCode(t)+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Login successful!")
}

func TestLoginEndpoint_StatusMapping(t *testing.T) {
	fx := newAuthFixture()

	// Unknown user.
	rec := postJSON(t, fx.handler.Login, "/auth/login",
		`{"email":"ghost@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Unverified user.
	postJSON(t, fx.handler.Register, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)
	rec = postJSON(t, fx.handler.Login, "/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Wrong password after verification.
	postJSON(t, fx.handler.VerifyRegisterOTP, "/auth/verify-register-otp",
		`{"email":"alice@example.com","otp":"`+fx.lastCode(t)+`"}`)
	rec = postJSON(t, fx.handler.Login, "/auth/login",
		`{"email":"alice@example.com","password":"wrong00"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---- resend ----

func TestResendOTPEndpoint(t *testing.T) {
	fx := newAuthFixture()

	postJSON(t, fx.handler.Register, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)

	rec := postJSON(t, fx.handler.ResendOTP, "/auth/resend-otp",
		`{"email":"alice@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, fx.sender.codes, 2)

	rec = postJSON(t, fx.handler.ResendOTP, "/auth/resend-otp",
		`{"email":"ghost@example.com"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- me ----

func TestMeEndpoint(t *testing.T) {
	fx := newAuthFixture()
	user := &model.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Verified: true}
	fx.users.users["u1"] = user
	fx.paperRepo.papers = []model.Paper{
		{ID: "p1", OwnerID: "u1", Title: "Mine"},
		{ID: "p2", OwnerID: "someone-else", Title: "Theirs"},
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	fx.handler.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Alice", data["name"])

	papers, ok := data["papers"].([]any)
	require.True(t, ok)
	require.Len(t, papers, 1, "only owned papers are attached")
}
