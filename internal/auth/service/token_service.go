package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/GowthamBk/student-management-api/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenGenerator issues and verifies the signed credentials: stateless
// session tokens and password-reset tokens. Both use the same signing secret
// and algorithm; reset tokens additionally have a persisted copy checked by
// UserService.
type TokenGenerator interface {
	GenerateSession(username string) (string, error)
	VerifySession(tokenString string) (string, error)
	GenerateReset(userID string) (string, time.Time, error)
	DecodeReset(tokenString string) (string, error)
}

type TokenService struct {
	Secret        string
	SessionExpiry time.Duration
	ResetExpiry   time.Duration
}

type SessionClaims struct {
	jwt.RegisteredClaims
}

type ResetClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, sessionMinutes, resetMinutes int) *TokenService {
	return &TokenService{
		Secret:        secret,
		SessionExpiry: time.Duration(sessionMinutes) * time.Minute,
		ResetExpiry:   time.Duration(resetMinutes) * time.Minute,
	}
}

// GenerateSession issues a session token with the username as subject.
func (ts *TokenService) GenerateSession(username string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.SessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
}

// VerifySession parses and validates a session token and returns its subject.
// It fails on a bad signature, malformed payload, elapsed expiry, or a
// missing subject claim.
func (ts *TokenService) VerifySession(tokenString string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

// GenerateReset issues a password-reset token carrying the user id, and
// returns the expiry instant so the caller can persist the shadow copy.
func (ts *TokenService) GenerateReset(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.ResetExpiry)
	claims := ResetClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// DecodeReset validates the signature and expiry of a reset token and
// returns the embedded user id. Signature validity alone does not make the
// token usable: the caller must also match it against the copy persisted on
// the user record.
func (ts *TokenService) DecodeReset(tokenString string) (string, error) {
	claims := &ResetClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("token has no user id")
	}
	return claims.UserID, nil
}
