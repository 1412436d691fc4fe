package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gummy-store/models"

	"github.com/golang-jwt/jwt/v5"
)

type SessionClaims struct {
	SessionID string `json:"sid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(secret, sessionID string, ttl time.Duration) (string, time.Time, error) {
	return generateToken(secret, sessionID, models.RoleSession, ttl)
}

func GenerateAdminToken(secret, email string, ttl time.Duration) (string, time.Time, error) {
	return generateToken(secret, email, models.RoleAdmin, ttl)
}

func generateToken(secret, subject, role string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := SessionClaims{
		SessionID: subject,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func ValidateToken(secret, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// NewSessionID returns an opaque random session identifier.
func NewSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return "sess_" + hex.EncodeToString(buf), nil
}

// Older clients built their own id as random base36 digits followed by the
// base36 millisecond clock. Server ids carry the sess_ prefix and never match.
var legacyIDPattern = regexp.MustCompile(`^[0-9a-z]{8,24}$`)

// ValidLegacySessionID reports whether id has the client-generated shape
// that can be adopted.
func ValidLegacySessionID(id string) bool {
	return legacyIDPattern.MatchString(id)
}
