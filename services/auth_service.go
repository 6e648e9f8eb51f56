package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/techagentng/messaging/config"
	"github.com/techagentng/messaging/db"
	apiError "github.com/techagentng/messaging/errors"
	"github.com/techagentng/messaging/models"
	"github.com/techagentng/messaging/services/jwt"
	"gorm.io/gorm"
)

// AuthService exchanges credentials for token pairs and rotates access
// tokens. Everything after issuance is the middleware's problem.
type AuthService interface {
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	RefreshAccessToken(refreshToken string) (string, *apiError.Error)
	Logout(accessToken string) *apiError.Error
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

// LoginUser verifies the credential and returns the access/refresh pair. The
// failure message never reveals whether the email exists.
func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrInvalidPassword
		}
		log.Printf("Error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		log.Printf("Invalid password for user %s", foundUser.Email)
		return nil, apiError.ErrInvalidPassword
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(foundUser.Email, a.Config.JWTSecret, foundUser.IsStaff, foundUser.ID)
	if err != nil {
		log.Printf("Error generating token pair for user %s: %v", foundUser.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: foundUser.Response(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshAccessToken validates a refresh token and mints a new access token
// for the same user. The user must still exist.
func (a *authService) RefreshAccessToken(refreshToken string) (string, *apiError.Error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, a.Config.JWTSecret)
	if err != nil {
		return "", apiError.ErrUnauthorized
	}

	userID, err := jwt.UserIDFromClaims(claims)
	if err != nil {
		return "", apiError.ErrUnauthorized
	}

	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apiError.ErrUnauthorized
		}
		log.Printf("Error loading user %s during refresh: %v", userID, err)
		return "", apiError.ErrInternalServerError
	}

	accessToken, err := jwt.GenerateAccessToken(user.Email, a.Config.JWTSecret, user.IsStaff, user.ID)
	if err != nil {
		log.Printf("Error generating access token for user %s: %v", user.Email, err)
		return "", apiError.ErrInternalServerError
	}
	return accessToken, nil
}

// Logout blacklists the presented access token so the middleware rejects it
// from now on.
func (a *authService) Logout(accessToken string) *apiError.Error {
	entry := &models.Blacklist{Token: accessToken}
	if err := a.authRepo.AddToBlackList(entry); err != nil {
		log.Printf("Error adding access token to blacklist: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
