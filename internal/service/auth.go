package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/researchpartner/api/internal/apperror"
	"github.com/researchpartner/api/internal/model"
	"github.com/researchpartner/api/internal/repository"
)

// OTPSender delivers one-time codes. Satisfied by EmailService.
type OTPSender interface {
	SendOTPEmail(email, code string, purpose OTPPurpose) error
}

// AuthService implements the OTP-gated registration and login flow.
// Each identity carries at most one live code: every issuance overwrites the
// previous pair, and a verified code stays valid until it expires or is
// replaced.
type AuthService struct {
	userRepo  repository.UserRepository
	sender    OTPSender
	jwtSecret []byte
	jwtExpiry time.Duration
	otpExpiry time.Duration
	now       func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, sender OTPSender, jwtSecret string, jwtExpiry, otpExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		sender:    sender,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
		otpExpiry: otpExpiry,
		now:       time.Now,
	}
}

// Register creates a new unverified identity, or overwrites an existing
// unverified one with the resubmitted fields. A verified identity on the
// same email is a conflict.
func (s *AuthService) Register(name, email, password, avatar string) (*model.User, error) {
	email = model.NormalizeEmail(email)

	if avatar == "" {
		avatar = fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code := s.generateOTP()
	expiry := s.now().Add(s.otpExpiry)

	existing, err := s.userRepo.ByEmail(email)
	switch {
	case err == nil:
		if existing.Verified {
			return nil, apperror.Conflict("User already exists with this email")
		}
		existing.Name = name
		existing.PasswordHash = string(hash)
		existing.Avatar = avatar
		existing.OTP = &code
		existing.OTPExpiry = &expiry
		if err := s.userRepo.Update(existing); err != nil {
			return nil, err
		}
		s.deliverOTP(email, code, OTPPurposeVerification)
		return existing, nil

	case errors.Is(err, repository.ErrUserNotFound):
		user := &model.User{
			ID:           uuid.NewString(),
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Avatar:       avatar,
			OTP:          &code,
			OTPExpiry:    &expiry,
			Verified:     false,
			CreatedAt:    s.now().UTC(),
		}
		if err := s.userRepo.Create(user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return nil, apperror.Conflict("User already exists with this email")
			}
			return nil, err
		}
		s.deliverOTP(email, code, OTPPurposeVerification)
		return user, nil

	default:
		return nil, err
	}
}

// Login checks the password and issues a fresh login code. The session is
// only granted after OTP verification.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = model.NormalizeEmail(email)

	user, err := s.userRepo.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound("User")
		}
		return nil, err
	}

	if !user.Verified {
		return nil, apperror.Unverified("Email not verified. Please register again.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.InvalidCredential("Invalid email or password")
	}

	code := s.generateOTP()
	expiry := s.now().Add(s.otpExpiry)
	user.OTP = &code
	user.OTPExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	s.deliverOTP(email, code, OTPPurposeLogin)
	return user, nil
}

// VerifyRegistrationOTP checks the pending code and marks the identity
// verified. The code is not cleared: it stays usable until expiry or
// replacement, so a retried verification with the same code succeeds.
func (s *AuthService) VerifyRegistrationOTP(email, code string) (*model.User, string, error) {
	user, err := s.verifyOTP(email, code)
	if err != nil {
		return nil, "", err
	}

	if !user.Verified {
		user.Verified = true
		if err := s.userRepo.Update(user); err != nil {
			return nil, "", err
		}
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// VerifyLoginOTP checks the pending code and mints a session token.
func (s *AuthService) VerifyLoginOTP(email, code string) (*model.User, string, error) {
	user, err := s.verifyOTP(email, code)
	if err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) verifyOTP(email, code string) (*model.User, error) {
	email = model.NormalizeEmail(email)

	user, err := s.userRepo.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound("User")
		}
		return nil, err
	}

	if user.OTP == nil {
		return nil, apperror.NoCodeIssued("No OTP was requested for this account")
	}

	if user.CodeExpired(s.now()) {
		return nil, apperror.Expired("OTP has expired. Please request a new one.")
	}

	if !user.CodeMatches(code) {
		return nil, apperror.InvalidCode("Invalid OTP")
	}

	return user, nil
}

// ResendOTP mints a fresh code, replacing any previous one. The email
// wording is picked from the identity's current verified flag.
func (s *AuthService) ResendOTP(email string) error {
	email = model.NormalizeEmail(email)

	user, err := s.userRepo.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperror.NotFound("User")
		}
		return err
	}

	code := s.generateOTP()
	expiry := s.now().Add(s.otpExpiry)
	user.OTP = &code
	user.OTPExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	purpose := OTPPurposeVerification
	if user.Verified {
		purpose = OTPPurposeLogin
	}
	s.deliverOTP(email, code, purpose)
	return nil
}

// GenerateToken mints a 30-day session token bound to the user ID. There is
// no refresh mechanism and no revocation; expiry is the only termination.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a session token and returns the user ID it carries.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return "", apperror.InvalidCredential("Invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperror.InvalidCredential("Invalid or expired token")
	}

	return claims.Subject, nil
}

// UserByID loads a user for an authenticated request.
func (s *AuthService) UserByID(id string) (*model.User, error) {
	user, err := s.userRepo.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound("User")
		}
		return nil, err
	}
	return user, nil
}

// deliverOTP sends the code best-effort. The store write is the
// authoritative success signal; a delivery failure is logged and swallowed.
func (s *AuthService) deliverOTP(email, code string, purpose OTPPurpose) {
	if err := s.sender.SendOTPEmail(email, code, purpose); err != nil {
		slog.Error("failed to deliver OTP email", "email", email, "purpose", string(purpose), "error", err)
	}
}

func (s *AuthService) generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failure means the process is in a bad state
		panic(fmt.Sprintf("failed to generate OTP: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
