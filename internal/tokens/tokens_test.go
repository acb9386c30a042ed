package tokens

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RefreshToken{}))
	return db
}

func TestSignAccessToken_Claims(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	raw, err := SignAccessToken(42, "admin", secret)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestValidateRefresh_RoundTrip(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	secret := []byte("refresh-secret")

	raw, err := SignRefreshToken(42, "user", secret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(db, raw, 42))

	claims, err := ValidateRefresh(raw, secret, db)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "refresh", claims["typ"])
}

func TestValidateRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	secret := []byte("same-secret")

	raw, err := SignAccessToken(42, "user", secret)
	require.NoError(t, err)

	_, err = ValidateRefresh(raw, secret, db)
	require.Error(t, err)
}

func TestValidateRefresh_RejectsRevoked(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	secret := []byte("refresh-secret")

	raw, err := SignRefreshToken(42, "user", secret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(db, raw, 42))

	ts := TokenService{DB: db, RefreshSecret: secret}
	require.NoError(t, ts.RevokeRefresh(raw))

	_, err = ValidateRefresh(raw, secret, db)
	require.Error(t, err)
}

func TestValidateRefresh_RejectsUnknownToken(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	secret := []byte("refresh-secret")

	raw, err := SignRefreshToken(42, "user", secret)
	require.NoError(t, err)

	_, err = ValidateRefresh(raw, secret, db)
	require.Error(t, err)
}

func TestCreateCookie(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour)
	ck := CreateCookie("accessToken", "value", "/", exp)
	assert.Equal(t, "accessToken", ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.WithinDuration(t, exp, ck.Expires, time.Second)
}
