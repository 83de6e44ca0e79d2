package admin

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/waitlyst/waitlyst/internal/log"
	"github.com/waitlyst/waitlyst/internal/session"
)

const (
	adminSessionPrefix = "admin:"
	adminSessionTTL    = 12 * time.Hour
)

// AdminService gates the dashboard behind a single shared password. This is
// not a security boundary: one plaintext compare and a TTL'd session flag,
// exactly as strong as the landing page needs.
type AdminService interface {
	// Login checks the password and mints an admin session token.
	Login(ctx context.Context, password string) (string, error)

	// Logout discards a session token.
	Logout(ctx context.Context, token string) error

	// IsAuthenticated reports whether the token holds a live admin session.
	IsAuthenticated(ctx context.Context, token string) bool
}

type adminService struct {
	logger   *log.Logger
	sessions session.Store
	password string
}

func NewAdminService(logger *log.Logger, sessions session.Store, password string) AdminService {
	return &adminService{logger: logger, sessions: sessions, password: password}
}

func (s *adminService) Login(ctx context.Context, password string) (string, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(password)), []byte(s.password)) != 1 {
		logger.Warn("Admin login rejected")
		return "", NewInvalidPasswordError()
	}

	token := session.NewToken()
	if err := s.sessions.Set(ctx, adminSessionPrefix+token, "1", adminSessionTTL); err != nil {
		logger.Error("Failed to store admin session", "error", err)
		return "", err
	}

	logger.Info("Admin login accepted")
	return token, nil
}

func (s *adminService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, adminSessionPrefix+token)
}

func (s *adminService) IsAuthenticated(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	flag, err := s.sessions.Get(ctx, adminSessionPrefix+token)
	if err != nil {
		log.GetLoggerInstanceFromContext(ctx, s.logger).Error("Failed to read admin session", "error", err)
		return false
	}

	return flag != ""
}
