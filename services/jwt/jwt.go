package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// AccessTokenDuration bounds how long a bearer token authenticates requests
// before the client must refresh.
var AccessTokenDuration = 15 * time.Minute

var RefreshTokenDuration = 7 * 24 * time.Hour

// GenerateTokenPair returns the signed access and refresh tokens for a user.
// Both carry the user id; only the access token is accepted by the auth
// middleware and only the refresh token by the refresh endpoint.
func GenerateTokenPair(email string, secret string, isStaff bool, userID uuid.UUID) (string, string, error) {
	accessToken, err := generateToken(email, secret, isStaff, userID, "access", AccessTokenDuration)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := generateToken(email, secret, isStaff, userID, "refresh", RefreshTokenDuration)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// GenerateAccessToken issues a fresh access token, used on refresh.
func GenerateAccessToken(email string, secret string, isStaff bool, userID uuid.UUID) (string, error) {
	return generateToken(email, secret, isStaff, userID, "access", AccessTokenDuration)
}

func generateToken(email, secret string, isStaff bool, userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":       userID.String(),
		"email":    email,
		"is_staff": isStaff,
		"type":     tokenType,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateAndGetClaims verifies the signature and expiry of an access token
// and returns its claims.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	return validateToken(tokenString, secret, "access")
}

// ValidateRefreshToken accepts only tokens minted as refresh tokens.
func ValidateRefreshToken(tokenString string, secret string) (jwt.MapClaims, error) {
	return validateToken(tokenString, secret, "refresh")
}

func validateToken(tokenString, secret, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return nil, fmt.Errorf("token is not an %s token", wantType)
	}
	return claims, nil
}

// UserIDFromClaims extracts the user identifier claim.
func UserIDFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	idValue, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("id claim missing or malformed")
	}
	return uuid.Parse(idValue)
}
