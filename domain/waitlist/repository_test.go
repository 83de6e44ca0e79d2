package waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/waitlyst/waitlyst/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepository(t *testing.T) WaitlistRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.WaitlistEntry{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewWaitlistRepository(db)
}

func TestRepositorySignup_AssignsSequentialPositions(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		created, err := repo.Signup(ctx, &models.WaitlistEntry{Email: email})
		require.NoError(t, err)
		require.Equal(t, i+1, created.Position)
		require.NotEmpty(t, created.ID)
		require.Len(t, created.ReferralCode, models.ReferralCodeLength)
	}
}

func TestRepositorySignup_DuplicateEmailLeavesStateUntouched(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Signup(ctx, &models.WaitlistEntry{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = repo.Signup(ctx, &models.WaitlistEntry{Email: "a@x.com", ReferredBy: first.ReferralCode})
	require.Error(t, err)
	require.True(t, IsDuplicateEmail(err))

	// The duplicate attempt neither created an entry nor credited the
	// referrer named in it.
	total, err := repo.CountEntries(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	unchanged, err := repo.FindEntryByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, 0, unchanged.ReferralCount)
}

func TestRepositorySignup_CreditsReferrer(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	referrer, err := repo.Signup(ctx, &models.WaitlistEntry{Email: "a@x.com"})
	require.NoError(t, err)

	created, err := repo.Signup(ctx, &models.WaitlistEntry{Email: "b@x.com", ReferredBy: referrer.ReferralCode})
	require.NoError(t, err)
	require.Equal(t, referrer.ReferralCode, created.ReferredBy)

	credited, err := repo.FindEntryByReferralCode(ctx, referrer.ReferralCode)
	require.NoError(t, err)
	require.Equal(t, 1, credited.ReferralCount)
}

func TestRepositorySignup_UnknownReferralCodeIsRecordedNotCredited(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Signup(ctx, &models.WaitlistEntry{Email: "a@x.com", ReferredBy: "NOSUCHCD"})
	require.NoError(t, err)
	require.Equal(t, "NOSUCHCD", created.ReferredBy)
	require.Equal(t, 1, created.Position)
}

func TestRepositoryGetAllEntries_OrderedByPosition(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := repo.Signup(ctx, &models.WaitlistEntry{Email: email})
		require.NoError(t, err)
	}

	entries, err := repo.GetAllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, entry := range entries {
		require.Equal(t, i+1, entry.Position)
	}
}

func TestRepositoryFindEntry_NotFound(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.FindEntryByEmail(ctx, "nobody@x.com")
	require.Error(t, err)

	_, err = repo.FindEntryByReferralCode(ctx, "NOSUCHCD")
	require.Error(t, err)
}

func TestRepositoryGetStats(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	referrer, err := repo.Signup(ctx, &models.WaitlistEntry{Email: "a@x.com"})
	require.NoError(t, err)
	_, err = repo.Signup(ctx, &models.WaitlistEntry{Email: "b@x.com", ReferredBy: referrer.ReferralCode})
	require.NoError(t, err)
	_, err = repo.Signup(ctx, &models.WaitlistEntry{Email: "c@x.com", ReferredBy: referrer.ReferralCode})
	require.NoError(t, err)

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalSignups)
	require.Equal(t, int64(2), stats.TotalReferrals)
	require.NotNil(t, stats.TopReferrer)
	require.Equal(t, "a@x.com", stats.TopReferrer.Email)
}

func TestRepositoryGetStats_EmptyWaitlist(t *testing.T) {
	repo := newTestRepository(t)

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.TotalSignups)
	require.Equal(t, int64(0), stats.TotalReferrals)
	require.Nil(t, stats.TopReferrer)
}

func TestRepositorySeedEntries(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	entries := []*models.WaitlistEntry{
		{ID: "1", Email: "a@x.com", ReferralCode: "AAAA2222", Position: 1, CreatedAt: time.Now()},
		{ID: "2", Email: "b@x.com", ReferralCode: "BBBB3333", Position: 2, CreatedAt: time.Now()},
	}

	require.NoError(t, repo.SeedEntries(ctx, entries))

	total, err := repo.CountEntries(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
}

func TestRepositorySeedEntries_RefusesNonEmptyWaitlist(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Signup(ctx, &models.WaitlistEntry{Email: "a@x.com"})
	require.NoError(t, err)

	err = repo.SeedEntries(ctx, []*models.WaitlistEntry{
		{ID: "1", Email: "seed@x.com", ReferralCode: "CCCC4444", Position: 1, CreatedAt: time.Now()},
	})
	require.Error(t, err)
}
