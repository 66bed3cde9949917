package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"revu/internal/models"
	"revu/internal/repository"

	"gorm.io/gorm"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionService issues opaque tokens and resolves them back to users.
// Records are persistent, expire a fixed TTL after issuance and are removed
// eagerly on logout or lazily when a stale token is presented.
type SessionService struct {
	sessions *repository.SessionRepository
	users    *repository.UserRepository
	ttl      time.Duration
}

func NewSessionService(sessions *repository.SessionRepository, users *repository.UserRepository, ttl time.Duration) *SessionService {
	return &SessionService{sessions: sessions, users: users, ttl: ttl}
}

func (s *SessionService) TTL() time.Duration { return s.ttl }

// Issue creates a session for the user and returns it with a fresh token.
func (s *SessionService) Issue(userID uint) (*models.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	sess := &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.sessions.Create(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Resolve maps a token to its user. Expired or unknown tokens resolve to
// ErrInvalidSession; expired records are deleted on the way out.
func (s *SessionService) Resolve(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	sess, err := s.sessions.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if sess.Expired(time.Now()) {
		_ = s.sessions.Delete(token)
		return nil, ErrInvalidSession
	}
	u, err := s.users.GetByID(sess.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return u, nil
}

// Invalidate removes the session record; the token is dead immediately.
func (s *SessionService) Invalidate(token string) error {
	return s.sessions.Delete(token)
}

// PruneExpired clears expired session rows. Wired to a cron schedule at
// startup.
func (s *SessionService) PruneExpired() (int64, error) {
	return s.sessions.DeleteExpired(time.Now())
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
