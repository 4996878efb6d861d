package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(Config{SecretKey: testSecret, Duration: 30 * time.Minute})
	require.NoError(t, err)
	return s
}

func TestNewService_Validation(t *testing.T) {
	_, err := NewService(Config{Duration: time.Hour})
	assert.ErrorIs(t, err, ErrEmptySecretKey)
	_, err = NewService(Config{SecretKey: "short", Duration: time.Hour})
	assert.ErrorIs(t, err, ErrWeakSecretKey)
	_, err = NewService(Config{SecretKey: testSecret})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerateAndValidate(t *testing.T) {
	s := newService(t)
	tok, issued, err := s.GenerateToken(42, "asha@example.com", "farmer")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)
	assert.Equal(t, "42", issued.Subject)

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "farmer", claims.Role)
	assert.Equal(t, issued.ID, claims.ID)

	// every token gets its own id
	_, other, err := s.GenerateToken(42, "asha@example.com", "farmer")
	require.NoError(t, err)
	assert.NotEqual(t, issued.ID, other.ID)
}

func TestValidate_Expired(t *testing.T) {
	s := newService(t)
	past := time.Now().Add(-time.Hour)
	timeNow = func() time.Time { return past }
	tok, _, err := s.GenerateToken(1, "a@b.c", "admin")
	timeNow = time.Now
	require.NoError(t, err)

	claims, err := s.ValidateToken(tok)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidate_Invalid(t *testing.T) {
	s := newService(t)

	_, err := s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewService(Config{SecretKey: testSecret + "-other", Duration: time.Hour})
	require.NoError(t, err)
	tok, _, err := other.GenerateToken(1, "a@b.c", "admin")
	require.NoError(t, err)
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// HS512 is rejected even with the right key
	claims := &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ID: "x", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = s.ValidateToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// tokens without an id cannot be revoked and are refused
	claims.ID = ""
	raw, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = s.ValidateToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
