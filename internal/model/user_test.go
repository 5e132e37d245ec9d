package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserState(t *testing.T) {
	u := &User{}
	require.Equal(t, StatePendingVerification, u.State())

	u.Verified = true
	require.Equal(t, StateVerified, u.State())
}

func TestHasPendingCode(t *testing.T) {
	expiry := time.Now().Add(10 * time.Minute)

	u := &User{}
	require.False(t, u.HasPendingCode())

	u.OTP = strPtr("123456")
	require.False(t, u.HasPendingCode(), "code without expiry is not pending")

	u.OTPExpiry = &expiry
	require.True(t, u.HasPendingCode())

	u.OTP = strPtr("")
	require.False(t, u.HasPendingCode())
}

func TestCodeExpired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	u := &User{}
	require.True(t, u.CodeExpired(now), "no expiry counts as expired")

	future := now.Add(time.Minute)
	u.OTPExpiry = &future
	require.False(t, u.CodeExpired(now))

	// The expiry instant itself is expired.
	u.OTPExpiry = &now
	require.True(t, u.CodeExpired(now))

	past := now.Add(-time.Minute)
	u.OTPExpiry = &past
	require.True(t, u.CodeExpired(now))
}

func TestCodeMatches(t *testing.T) {
	u := &User{}
	require.False(t, u.CodeMatches("123456"), "nil stored code never matches")

	u.OTP = strPtr("123456")
	require.True(t, u.CodeMatches("123456"))
	require.True(t, u.CodeMatches("  123456\n"), "submitted code is trimmed")
	require.False(t, u.CodeMatches("654321"))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}
