package waitlist

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/waitlyst/waitlyst/internal/models"
	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
	"gorm.io/gorm"
)

type WaitlistRepository interface {
	// Signup runs the whole signup sequence as a single transaction:
	// duplicate-email check, position assignment, referrer counter bump, insert.
	// The entry must arrive with a normalized email.
	Signup(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error)
	// GetAllEntries returns every entry in creation order.
	GetAllEntries(ctx context.Context) ([]*models.WaitlistEntry, error)
	// FindEntryByEmail retrieves an entry by its normalized email.
	FindEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error)
	// FindEntryByReferralCode retrieves the unique entry holding the given code.
	FindEntryByReferralCode(ctx context.Context, code string) (*models.WaitlistEntry, error)
	// CountEntries returns the total number of signups.
	CountEntries(ctx context.Context) (int64, error)
	// GetStats computes the admin dashboard aggregates.
	GetStats(ctx context.Context) (*WaitlistStats, error)
	// SeedEntries bulk-inserts fixture entries into an empty waitlist.
	SeedEntries(ctx context.Context, entries []*models.WaitlistEntry) error
}

// WaitlistStats holds the aggregates shown on the admin dashboard.
type WaitlistStats struct {
	TotalSignups   int64                 `json:"total_signups"`
	TodaySignups   int64                 `json:"today_signups"`
	TotalReferrals int64                 `json:"total_referrals"`
	TopReferrer    *models.WaitlistEntry `json:"top_referrer,omitempty"`
}

type waitlistRepository struct {
	db *gorm.DB

	// Serializes the read-modify-write signup sequence. The storage model
	// assumes a single logical writer; SQLite in particular cannot tolerate
	// two interleaved write transactions from one process.
	mu sync.Mutex
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) Signup(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	err := wr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.WaitlistEntry{}).
			Where("email = ?", entry.Email).
			Count(&existing).Error; err != nil {
			return apperrors.NewDatabaseError("failed to check email uniqueness", err)
		}
		if existing > 0 {
			return NewDuplicateEmailError()
		}

		var total int64
		if err := tx.Model(&models.WaitlistEntry{}).Count(&total).Error; err != nil {
			return apperrors.NewDatabaseError("failed to count waitlist entries", err)
		}
		entry.Position = int(total) + 1

		// Bump the referrer's counter by exactly one. A code that matches no
		// entry is silently ignored; referred_by is still recorded below.
		if entry.ReferredBy != "" {
			if err := tx.Model(&models.WaitlistEntry{}).
				Where("referral_code = ?", entry.ReferredBy).
				UpdateColumn("referral_count", gorm.Expr("referral_count + 1")).Error; err != nil {
				return apperrors.NewDatabaseError("failed to credit referrer", err)
			}
		}

		if err := tx.Create(entry).Error; err != nil {
			if isDuplicateKey(err) {
				return NewDuplicateEmailError()
			}
			return apperrors.NewDatabaseError("unable to create waitlist entry", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (wr *waitlistRepository) GetAllEntries(ctx context.Context) ([]*models.WaitlistEntry, error) {
	var entries []*models.WaitlistEntry

	if err := wr.db.WithContext(ctx).Order("position ASC").Find(&entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to fetch waitlist entries", err)
	}

	return entries, nil
}

func (wr *waitlistRepository) FindEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry

	if err := wr.db.WithContext(ctx).First(&entry, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewEntryNotFoundError()
		}
		return nil, apperrors.NewDatabaseError("failed to fetch waitlist entry", err)
	}

	return &entry, nil
}

func (wr *waitlistRepository) FindEntryByReferralCode(ctx context.Context, code string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry

	if err := wr.db.WithContext(ctx).First(&entry, "referral_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewEntryNotFoundError()
		}
		return nil, apperrors.NewDatabaseError("failed to fetch waitlist entry", err)
	}

	return &entry, nil
}

func (wr *waitlistRepository) CountEntries(ctx context.Context) (int64, error) {
	var total int64

	if err := wr.db.WithContext(ctx).Model(&models.WaitlistEntry{}).Count(&total).Error; err != nil {
		return 0, apperrors.NewDatabaseError("unable to count waitlist entries", err)
	}

	return total, nil
}

func (wr *waitlistRepository) GetStats(ctx context.Context) (*WaitlistStats, error) {
	stats := &WaitlistStats{}

	db := wr.db.WithContext(ctx).Model(&models.WaitlistEntry{})

	if err := db.Session(&gorm.Session{}).Count(&stats.TotalSignups).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to count signups", err)
	}

	startOfDay := time.Now().Truncate(24 * time.Hour)
	if err := db.Session(&gorm.Session{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.TodaySignups).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to count today's signups", err)
	}

	if err := db.Session(&gorm.Session{}).
		Select("COALESCE(SUM(referral_count), 0)").
		Scan(&stats.TotalReferrals).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to sum referrals", err)
	}

	var top models.WaitlistEntry
	err := wr.db.WithContext(ctx).
		Where("referral_count > 0").
		Order("referral_count DESC").
		First(&top).Error
	if err == nil {
		stats.TopReferrer = &top
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewDatabaseError("unable to find top referrer", err)
	}

	return stats, nil
}

func (wr *waitlistRepository) SeedEntries(ctx context.Context, entries []*models.WaitlistEntry) error {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	return wr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&models.WaitlistEntry{}).Count(&total).Error; err != nil {
			return apperrors.NewDatabaseError("failed to count waitlist entries", err)
		}
		if total > 0 {
			return NewWaitlistNotEmptyError()
		}

		if err := tx.Create(entries).Error; err != nil {
			return apperrors.NewDatabaseError("unable to seed waitlist entries", err)
		}
		return nil
	})
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
