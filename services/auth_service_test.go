package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/messaging/config"
	"github.com/techagentng/messaging/models"
	"github.com/techagentng/messaging/services/jwt"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret"}
}

func userWithPassword(t *testing.T, email, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := regularUser("alice", email)
	u.HashedPassword = string(hashed)
	return u
}

func TestLoginUser(t *testing.T) {
	alice := userWithPassword(t, "alice@example.com", "s3cret-pass")
	svc := NewAuthService(newFakeAuthRepo(alice), testConfig())

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		resp, apiErr := svc.LoginUser(&models.LoginRequest{
			Email:    "alice@example.com",
			Password: "s3cret-pass",
		})
		require.Nil(t, apiErr)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, alice.ID.String(), resp.ID)

		claims, err := jwt.ValidateAndGetClaims(resp.AccessToken, "test-secret")
		require.NoError(t, err)
		id, err := jwt.UserIDFromClaims(claims)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, id)
	})

	t.Run("wrong password and unknown email fail alike", func(t *testing.T) {
		_, wrongPassword := svc.LoginUser(&models.LoginRequest{
			Email:    "alice@example.com",
			Password: "not-it",
		})
		_, unknownEmail := svc.LoginUser(&models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "s3cret-pass",
		})
		require.NotNil(t, wrongPassword)
		require.NotNil(t, unknownEmail)
		assert.Equal(t, wrongPassword.Message, unknownEmail.Message)
		assert.Equal(t, wrongPassword.Status, unknownEmail.Status)
	})
}

func TestRefreshAccessToken(t *testing.T) {
	alice := userWithPassword(t, "alice@example.com", "s3cret-pass")
	repo := newFakeAuthRepo(alice)
	svc := NewAuthService(repo, testConfig())

	login, apiErr := svc.LoginUser(&models.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.Nil(t, apiErr)

	t.Run("refresh token mints a fresh access token", func(t *testing.T) {
		access, apiErr := svc.RefreshAccessToken(login.RefreshToken)
		require.Nil(t, apiErr)
		claims, err := jwt.ValidateAndGetClaims(access, "test-secret")
		require.NoError(t, err)
		id, err := jwt.UserIDFromClaims(claims)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, id)
	})

	t.Run("access token cannot be used as refresh token", func(t *testing.T) {
		_, apiErr := svc.RefreshAccessToken(login.AccessToken)
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	})

	t.Run("deleted user cannot refresh", func(t *testing.T) {
		require.NoError(t, repo.DeleteUser(alice.ID))
		_, apiErr := svc.RefreshAccessToken(login.RefreshToken)
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	})
}

func TestLogout(t *testing.T) {
	alice := userWithPassword(t, "alice@example.com", "s3cret-pass")
	repo := newFakeAuthRepo(alice)
	svc := NewAuthService(repo, testConfig())

	require.Nil(t, svc.Logout("some-access-token"))
	assert.True(t, repo.IsTokenInBlacklist("some-access-token"))
	assert.False(t, repo.IsTokenInBlacklist("another-token"))
}
