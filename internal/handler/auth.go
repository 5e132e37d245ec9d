package handler

import (
	"net/http"

	"github.com/researchpartner/api/internal/apperror"
	"github.com/researchpartner/api/internal/ctxkeys"
	"github.com/researchpartner/api/internal/model"
	"github.com/researchpartner/api/internal/service"
	"github.com/researchpartner/api/internal/validation"
)

type AuthHandler struct {
	authService  *service.AuthService
	paperService *service.PaperService
}

func NewAuthHandler(authService *service.AuthService, paperService *service.PaperService) *AuthHandler {
	return &AuthHandler{authService: authService, paperService: paperService}
}

// sessionData is the client session payload returned after OTP success.
type sessionData struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
	Token  string `json:"token"`
}

func session(user *model.User, token string) sessionData {
	return sessionData{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
		Token:  token,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Avatar   string `json:"avatar"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := validation.ValidateName(req.Name); err != nil {
		writeError(w, apperror.Validation(err.Error()))
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		writeError(w, apperror.Validation(err.Error()))
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		writeError(w, apperror.Validation(err.Error()))
		return
	}

	user, err := h.authService.Register(req.Name, req.Email, req.Password, req.Avatar)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"success":     true,
		"message":     "Registration initiated. Please verify your email with the OTP sent.",
		"email":       user.Email,
		"requiresOTP": true,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "OTP sent to your email. Please verify to complete login.",
		"email":       user.Email,
		"requiresOTP": true,
	})
}

// VerifyRegisterOTP handles POST /auth/verify-register-otp
func (h *AuthHandler) VerifyRegisterOTP(w http.ResponseWriter, r *http.Request) {
	email, code, err := decodeOTPRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, token, err := h.authService.VerifyRegistrationOTP(email, code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Email verified successfully!",
		Data:    session(user, token),
	})
}

// VerifyLoginOTP handles POST /auth/verify-login-otp
func (h *AuthHandler) VerifyLoginOTP(w http.ResponseWriter, r *http.Request) {
	email, code, err := decodeOTPRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, token, err := h.authService.VerifyLoginOTP(email, code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Login successful!",
		Data:    session(user, token),
	})
}

// ResendOTP handles POST /auth/resend-otp
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.authService.ResendOTP(req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "A new OTP has been sent to your email.")
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	papers, err := h.paperService.Owned(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	user.Papers = papers

	writeData(w, http.StatusOK, user)
}

func decodeOTPRequest(r *http.Request) (string, string, error) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := decodeBody(r, &req); err != nil {
		return "", "", err
	}
	if req.Email == "" || req.OTP == "" {
		return "", "", apperror.Validation("Email and OTP are required")
	}
	return req.Email, req.OTP, nil
}
