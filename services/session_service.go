package services

import (
	"strings"
	"time"

	"gummy-store/models"
	"gummy-store/utils"
)

type SessionService struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return &SessionService{secret: secret, ttl: ttl, now: time.Now}
}

// Create mints a session. A well-formed legacyID from an older client is
// adopted so its cart and likes carry over; anything else gets a fresh id.
func (s *SessionService) Create(legacyID string) (*models.SessionResponse, error) {
	sessionID := strings.TrimSpace(legacyID)
	if sessionID == "" {
		id, err := utils.NewSessionID()
		if err != nil {
			return nil, err
		}
		sessionID = id
	} else if !utils.ValidLegacySessionID(sessionID) {
		return nil, models.ErrInvalidSession
	}

	token, expiresAt, err := utils.GenerateSessionToken(s.secret, sessionID, s.ttl)
	if err != nil {
		return nil, err
	}

	return &models.SessionResponse{SessionID: sessionID, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *SessionService) Resolve(token string) (*models.Session, error) {
	claims, err := utils.ValidateToken(s.secret, token)
	if err != nil || claims.Role != models.RoleSession {
		return nil, models.ErrInvalidSession
	}
	return &models.Session{ID: claims.SessionID, ExpiresAt: claims.ExpiresAt.Time}, nil
}
