package waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/waitlyst/waitlyst/internal/log"
	"github.com/waitlyst/waitlyst/internal/models"
	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*MockWaitlistRepository, WaitlistService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo, "http://localhost:3000")
	return mockRepo, service
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.COM  "))
	assert.Equal(t, "jane.doe@example.com", NormalizeEmail("Jane.Doe@Example.com"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestSignup_Success(t *testing.T) {
	mockRepo, service := newTestService(t)

	req := &SignupRequest{Email: "alice@example.com"}

	mockRepo.EXPECT().Signup(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
			assert.Equal(t, "alice@example.com", entry.Email)
			entry.ID = "id-1"
			entry.ReferralCode = "ABCD2345"
			entry.Position = 1
			entry.CreatedAt = time.Now()
			return entry, nil
		},
	)

	result, err := service.Signup(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", result.Email)
	assert.Equal(t, 1, result.Position)
	assert.Equal(t, "http://localhost:3000?ref=ABCD2345", result.ReferralLink)
}

func TestSignup_NormalizesEmailBeforeStorage(t *testing.T) {
	mockRepo, service := newTestService(t)

	req := &SignupRequest{Email: "  Bob@Example.COM "}

	mockRepo.EXPECT().Signup(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
			assert.Equal(t, "bob@example.com", entry.Email)
			entry.Position = 1
			return entry, nil
		},
	)

	result, err := service.Signup(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "bob@example.com", result.Email)
}

func TestSignup_NilRequest(t *testing.T) {
	_, service := newTestService(t)

	result, err := service.Signup(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
}

func TestSignup_InvalidEmail(t *testing.T) {
	_, service := newTestService(t)

	for _, email := range []string{"", "   ", "not-an-email", "missing@tld@twice"} {
		result, err := service.Signup(context.Background(), &SignupRequest{Email: email})
		assert.Error(t, err, email)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	mockRepo, service := newTestService(t)

	mockRepo.EXPECT().Signup(gomock.Any(), gomock.Any()).Return(nil, NewDuplicateEmailError())

	result, err := service.Signup(context.Background(), &SignupRequest{Email: "taken@example.com"})
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsDuplicateEmail(err))
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
}

func TestSignup_PassesReferralCodeThrough(t *testing.T) {
	mockRepo, service := newTestService(t)

	req := &SignupRequest{Email: "carol@example.com", ReferredBy: " FRIENDCD "}

	mockRepo.EXPECT().Signup(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
			assert.Equal(t, "FRIENDCD", entry.ReferredBy)
			entry.Position = 2
			return entry, nil
		},
	)

	result, err := service.Signup(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "FRIENDCD", result.ReferredBy)
}

func TestGetAllEntries_Success(t *testing.T) {
	mockRepo, service := newTestService(t)

	entries := []*models.WaitlistEntry{
		{ID: "1", Email: "a@x.com", ReferralCode: "AAAA2222", Position: 1, CreatedAt: time.Now()},
		{ID: "2", Email: "b@x.com", ReferralCode: "BBBB3333", Position: 2, CreatedAt: time.Now()},
	}
	mockRepo.EXPECT().GetAllEntries(gomock.Any()).Return(entries, nil)

	result, err := service.GetAllEntries(context.Background())
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "a@x.com", result[0].Email)
	assert.Equal(t, "http://localhost:3000?ref=BBBB3333", result[1].ReferralLink)
}

func TestGetEntryByEmail_NormalizesLookup(t *testing.T) {
	mockRepo, service := newTestService(t)

	entry := &models.WaitlistEntry{ID: "1", Email: "a@x.com", ReferralCode: "AAAA2222", Position: 1}
	mockRepo.EXPECT().FindEntryByEmail(gomock.Any(), "a@x.com").Return(entry, nil)

	result, err := service.GetEntryByEmail(context.Background(), " A@X.com ")
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", result.Email)
}

func TestFindByReferralCode_NotFound(t *testing.T) {
	mockRepo, service := newTestService(t)

	mockRepo.EXPECT().FindEntryByReferralCode(gomock.Any(), "NOSUCHCD").Return(nil, NewEntryNotFoundError())

	result, err := service.FindByReferralCode(context.Background(), "NOSUCHCD")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))
}

func TestFindByReferralCode_EmptyCode(t *testing.T) {
	_, service := newTestService(t)

	result, err := service.FindByReferralCode(context.Background(), "  ")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
}

func TestTotalSignups(t *testing.T) {
	mockRepo, service := newTestService(t)

	mockRepo.EXPECT().CountEntries(gomock.Any()).Return(int64(42), nil)

	total, err := service.TotalSignups(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(42), total)
}

func TestGetStats_WithTopReferrer(t *testing.T) {
	mockRepo, service := newTestService(t)

	top := &models.WaitlistEntry{ID: "1", Email: "a@x.com", ReferralCode: "AAAA2222", ReferralCount: 9, Position: 1}
	mockRepo.EXPECT().GetStats(gomock.Any()).Return(&WaitlistStats{
		TotalSignups:   10,
		TodaySignups:   3,
		TotalReferrals: 9,
		TopReferrer:    top,
	}, nil)

	result, err := service.GetStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(10), result.TotalSignups)
	assert.Equal(t, int64(3), result.TodaySignups)
	assert.Equal(t, int64(9), result.TotalReferrals)
	assert.NotNil(t, result.TopReferrer)
	assert.Equal(t, "a@x.com", result.TopReferrer.Email)
}

func TestGetStats_NoTopReferrer(t *testing.T) {
	mockRepo, service := newTestService(t)

	mockRepo.EXPECT().GetStats(gomock.Any()).Return(&WaitlistStats{TotalSignups: 2}, nil)

	result, err := service.GetStats(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, result.TopReferrer)
}
