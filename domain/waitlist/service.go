package waitlist

import (
	"context"
	"net/mail"
	"strings"

	"github.com/waitlyst/waitlyst/internal/log"
	"github.com/waitlyst/waitlyst/internal/models"
	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
)

type WaitlistService interface {
	// Signup creates a new waitlist entry, crediting the referrer when the
	// supplied referral code resolves. Fails with a conflict error when the
	// normalized email is already registered; nothing changes in that case.
	Signup(ctx context.Context, req *SignupRequest) (*WaitlistEntryResponse, error)

	// GetAllEntries retrieves all entries in signup order.
	GetAllEntries(ctx context.Context) ([]WaitlistEntryResponse, error)

	// GetEntryByEmail resolves a (possibly unnormalized) email to its entry.
	GetEntryByEmail(ctx context.Context, email string) (*WaitlistEntryResponse, error)

	// FindByReferralCode retrieves the unique entry holding the given code.
	FindByReferralCode(ctx context.Context, code string) (*WaitlistEntryResponse, error)

	// TotalSignups returns the number of entries on the waitlist.
	TotalSignups(ctx context.Context) (int64, error)

	// GetStats computes the admin dashboard aggregates.
	GetStats(ctx context.Context) (*WaitlistStatsResponse, error)

	// ExportCSV renders every entry as comma-separated rows with a header.
	ExportCSV(ctx context.Context) (string, error)

	// SeedDemoData populates an empty waitlist with generated fixture
	// entries. Demo convenience, not part of the production signup path.
	SeedDemoData(ctx context.Context, count int) error
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	linkBase   string
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, linkBase string) WaitlistService {
	return &waitlistService{logger: logger, repository: repository, linkBase: linkBase}
}

// NormalizeEmail applies the canonical form used for the uniqueness check:
// surrounding whitespace stripped, lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *waitlistService) Signup(ctx context.Context, req *SignupRequest) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Signup received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	email := NormalizeEmail(req.Email)
	if email == "" {
		return nil, apperrors.NewInvalidRequestError("email is required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		logger.Error("Signup received invalid email format", "email", email)
		return nil, apperrors.NewInvalidRequestError("invalid email format", nil)
	}

	entry := &models.WaitlistEntry{
		Email:      email,
		ReferredBy: strings.TrimSpace(req.ReferredBy),
	}

	created, err := s.repository.Signup(ctx, entry)
	if err != nil {
		if IsDuplicateEmail(err) {
			logger.Info("Duplicate signup rejected", "email", email)
		} else {
			logger.Error("Failed to create waitlist entry", "error", err)
		}
		return nil, err
	}

	logger.Info("Waitlist signup",
		"position", created.Position,
		"referred", created.ReferredBy != "",
	)

	response := ToWaitlistEntryResponse(created, s.linkBase)
	return &response, nil
}

func (s *waitlistService) GetAllEntries(ctx context.Context) ([]WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, err := s.repository.GetAllEntries(ctx)
	if err != nil {
		logger.Error("Failed to get all waitlist entries", "error", err)
		return nil, err
	}

	responses := make([]WaitlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToWaitlistEntryResponse(entry, s.linkBase))
	}

	return responses, nil
}

func (s *waitlistService) GetEntryByEmail(ctx context.Context, email string) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewInvalidRequestError("email is required", nil)
	}

	entry, err := s.repository.FindEntryByEmail(ctx, email)
	if err != nil {
		logger.Error("Failed to find waitlist entry by email", "error", err)
		return nil, err
	}

	response := ToWaitlistEntryResponse(entry, s.linkBase)
	return &response, nil
}

func (s *waitlistService) FindByReferralCode(ctx context.Context, code string) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.NewInvalidRequestError("referral code is required", nil)
	}

	entry, err := s.repository.FindEntryByReferralCode(ctx, code)
	if err != nil {
		logger.Error("Failed to find waitlist entry by referral code", "code", code, "error", err)
		return nil, err
	}

	response := ToWaitlistEntryResponse(entry, s.linkBase)
	return &response, nil
}

func (s *waitlistService) TotalSignups(ctx context.Context) (int64, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	total, err := s.repository.CountEntries(ctx)
	if err != nil {
		logger.Error("Failed to count signups", "error", err)
		return 0, err
	}

	return total, nil
}

func (s *waitlistService) GetStats(ctx context.Context) (*WaitlistStatsResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	stats, err := s.repository.GetStats(ctx)
	if err != nil {
		logger.Error("Failed to compute waitlist stats", "error", err)
		return nil, err
	}

	response := &WaitlistStatsResponse{
		TotalSignups:   stats.TotalSignups,
		TodaySignups:   stats.TodaySignups,
		TotalReferrals: stats.TotalReferrals,
	}
	if stats.TopReferrer != nil {
		top := ToWaitlistEntryResponse(stats.TopReferrer, s.linkBase)
		response.TopReferrer = &top
	}

	return response, nil
}
