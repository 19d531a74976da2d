package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authdemo.org/internal/directory"
)

func testUser() directory.User {
	return directory.User{
		ID:       1,
		Username: "admin",
		Role:     directory.RoleAdmin,
	}
}

func TestIssueThenVerifyRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-secret")
	require.NoError(t, err)

	token, expiresAt, err := codec.Issue(testUser())
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, directory.RoleAdmin, claims.Role)
	assert.Equal(t, "auth-api-example", claims.Issuer)
	assert.Contains(t, claims.Audience, "auth-api-users")

	id, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestVerifyExpiredClassifiedAsExpiry(t *testing.T) {
	issuedAt := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	issuing, err := NewCodec("test-secret", WithClock(func() time.Time { return issuedAt }))
	require.NoError(t, err)

	token, _, err := issuing.Issue(testUser())
	require.NoError(t, err)

	verifying, err := NewCodec("test-secret",
		WithClock(func() time.Time { return issuedAt.Add(2 * time.Hour) }))
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTamperedSignature(t *testing.T) {
	codec, err := NewCodec("test-secret")
	require.NoError(t, err)

	token, _, err := codec.Issue(testUser())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTamperedClaims(t *testing.T) {
	codec, err := NewCodec("test-secret")
	require.NoError(t, err)

	token, _, err := codec.Issue(testUser())
	require.NoError(t, err)

	// Swapping the payload segment invalidates the signature even though the
	// signature bytes themselves are untouched.
	other, _, err := codec.Issue(directory.User{ID: 2, Username: "user", Role: directory.RoleBasic})
	require.NoError(t, err)

	a := strings.Split(token, ".")
	b := strings.Split(other, ".")
	spliced := a[0] + "." + b[1] + "." + a[2]

	_, err = codec.Verify(spliced)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyIssuerAndAudienceMismatch(t *testing.T) {
	issuing, err := NewCodec("test-secret", WithIssuer("someone-else"))
	require.NoError(t, err)
	token, _, err := issuing.Issue(testUser())
	require.NoError(t, err)

	verifying, err := NewCodec("test-secret")
	require.NoError(t, err)
	_, err = verifying.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	issuing, err = NewCodec("test-secret", WithAudience("another-app"))
	require.NoError(t, err)
	token, _, err = issuing.Issue(testUser())
	require.NoError(t, err)
	_, err = verifying.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongKey(t *testing.T) {
	issuing, err := NewCodec("test-secret")
	require.NoError(t, err)
	token, _, err := issuing.Issue(testUser())
	require.NoError(t, err)

	verifying, err := NewCodec("a-different-secret")
	require.NoError(t, err)
	_, err = verifying.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	codec, err := NewCodec("test-secret")
	require.NoError(t, err)

	for _, raw := range []string{"", "   ", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}

func TestNewCodecRequiresSecret(t *testing.T) {
	_, err := NewCodec("")
	assert.Error(t, err)
	_, err = NewCodec("   ")
	assert.Error(t, err)
}

func TestCodecTTL(t *testing.T) {
	codec, err := NewCodec("test-secret", WithTTL(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, codec.TTL())

	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	codec, err = NewCodec("test-secret", WithTTL(30*time.Minute), WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	_, expiresAt, err := codec.Issue(testUser())
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*time.Minute), expiresAt)
}
