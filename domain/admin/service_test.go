package admin

import (
	"context"
	"testing"

	"github.com/waitlyst/waitlyst/internal/log"
	"github.com/waitlyst/waitlyst/internal/session"
	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestAdminService() AdminService {
	return NewAdminService(log.NewLoggerWithJSONOutput(), session.NewMemoryStore(), "letmein")
}

func TestLogin_CorrectPassword(t *testing.T) {
	service := newTestAdminService()

	token, err := service.Login(context.Background(), "letmein")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, service.IsAuthenticated(context.Background(), token))
}

func TestLogin_TrimsWhitespace(t *testing.T) {
	service := newTestAdminService()

	token, err := service.Login(context.Background(), "  letmein  ")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	service := newTestAdminService()

	token, err := service.Login(context.Background(), "guess")
	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.GetErrorType(err))
}

func TestLogin_EachLoginMintsDistinctToken(t *testing.T) {
	service := newTestAdminService()

	first, err := service.Login(context.Background(), "letmein")
	assert.NoError(t, err)
	second, err := service.Login(context.Background(), "letmein")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, service.IsAuthenticated(context.Background(), first))
	assert.True(t, service.IsAuthenticated(context.Background(), second))
}

func TestIsAuthenticated_UnknownToken(t *testing.T) {
	service := newTestAdminService()

	assert.False(t, service.IsAuthenticated(context.Background(), "bogus"))
	assert.False(t, service.IsAuthenticated(context.Background(), ""))
}

func TestLogout(t *testing.T) {
	service := newTestAdminService()

	token, err := service.Login(context.Background(), "letmein")
	assert.NoError(t, err)

	assert.NoError(t, service.Logout(context.Background(), token))
	assert.False(t, service.IsAuthenticated(context.Background(), token))
}

func TestLogout_EmptyTokenIsNoop(t *testing.T) {
	service := newTestAdminService()

	assert.NoError(t, service.Logout(context.Background(), ""))
}
