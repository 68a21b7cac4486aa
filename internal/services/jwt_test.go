package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtTestPhone = "+15550100"

func newClockedJWTService(secret string, now time.Time) *JWTService {
	svc := NewJWTService(secret, 15*time.Minute, 24*time.Hour)
	svc.now = func() time.Time { return now }
	return svc
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	pair, err := svc.GenerateTokenPair(uuid.New(), jwtTestPhone)

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)
	assert.Equal(t, 24*time.Hour, svc.RefreshExpiry())
}

func TestJWTService_AccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, jwtTestPhone)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, jwtTestPhone, claims.Phone)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_RefreshToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, jwtTestPhone)
	require.NoError(t, err)

	got, err := svc.ValidateRefreshToken(pair.RefreshToken)

	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_KindsAreNotInterchangeable(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	pair, err := svc.GenerateTokenPair(uuid.New(), jwtTestPhone)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-1", 15*time.Minute, 24*time.Hour)
	other := NewJWTService("secret-2", 15*time.Minute, 24*time.Hour)

	pair, err := issuer.GenerateTokenPair(uuid.New(), jwtTestPhone)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = other.ValidateRefreshToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Expired(t *testing.T) {
	issued := time.Now().Add(-48 * time.Hour)
	svc := newClockedJWTService("test-secret", issued)

	pair, err := svc.GenerateTokenPair(uuid.New(), jwtTestPhone)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	sign := func(method jwt.SigningMethod, key any, claims Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt-token"},
		{"partial", "eyJhbGciOiJIUzI1NiJ9."},
		{"hs512", sign(jwt.SigningMethodHS512, []byte("test-secret"), Claims{
			UserID: userID, Kind: accessKind,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, ExpiresAt: exp},
		})},
		{"other issuer", sign(jwt.SigningMethodHS256, []byte("test-secret"), Claims{
			UserID: userID, Kind: accessKind,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: exp},
		})},
		{"no expiry", sign(jwt.SigningMethodHS256, []byte("test-secret"), Claims{
			UserID: userID, Kind: accessKind,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer},
		})},
		{"no user", sign(jwt.SigningMethodHS256, []byte("test-secret"), Claims{
			Kind:             accessKind,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, ExpiresAt: exp},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTService_RefreshTokensAreUnique(t *testing.T) {
	svc := newClockedJWTService("test-secret", time.Now())
	userID := uuid.New()

	first, err := svc.GenerateTokenPair(userID, jwtTestPhone)
	require.NoError(t, err)
	second, err := svc.GenerateTokenPair(userID, jwtTestPhone)
	require.NoError(t, err)

	assert.Equal(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestHashToken(t *testing.T) {
	hash := HashToken("my-refresh-token")

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken("my-refresh-token"))
	assert.NotEqual(t, hash, HashToken("other-token"))
}
