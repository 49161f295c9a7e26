package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/kahraba/internal/clock"
	"github.com/smallbiznis/kahraba/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// SessionTTL is how long a login stays valid.
const SessionTTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid_credentials")

type Params struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	Clock clock.Clock
}

// Service implements the single hardcoded credential check. There is no user
// store; the one operator account comes from configuration and sessions live
// in memory, so a restart logs everyone out.
type Service struct {
	mu    sync.Mutex
	cfg   config.Config
	log   *zap.Logger
	clock clock.Clock

	sessions map[string]time.Time
}

func New(p Params) *Service {
	return &Service{
		cfg:      p.Cfg,
		log:      p.Log.Named("auth.service"),
		clock:    p.Clock,
		sessions: make(map[string]time.Time),
	}
}

func (s *Service) Login(username, password string) (string, time.Time, error) {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token := uuid.NewString()
	expiresAt := s.clock.Now().Add(SessionTTL)

	s.mu.Lock()
	s.sessions[token] = expiresAt
	s.mu.Unlock()

	s.log.Info("operator logged in")
	return token, expiresAt, nil
}

func (s *Service) Validate(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.sessions[token]
	if !ok {
		return false
	}
	if s.clock.Now().After(expiresAt) {
		delete(s.sessions, token)
		return false
	}
	return true
}

func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
