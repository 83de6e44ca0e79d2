package waitlist

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/waitlyst/waitlyst/internal/log"
	"github.com/waitlyst/waitlyst/internal/models"
	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
)

// DefaultSeedCount matches the demo population the landing page ships with.
const DefaultSeedCount = 147

var seedFirstNames = []string{
	"sarah", "alex", "jordan", "casey", "taylor",
	"morgan", "riley", "avery", "quinn", "blake",
	"drew", "sage", "reese", "skylar", "charlie",
	"finley", "hayden", "jamie", "logan", "parker",
	"emery", "rowan", "dakota", "river", "phoenix",
	"kai", "milan", "remy", "eden", "arden",
	"blair", "campbell", "devon", "ellis", "frankie",
	"grey", "hollis", "indigo", "jules", "kit",
	"lane", "marlowe", "nico", "oakley", "peyton",
	"rain", "shea", "tatum", "uri", "vale",
}

var seedDomains = []string{
	"gmail.com", "outlook.com", "hey.com",
	"icloud.com", "proton.me", "yahoo.com",
	"fastmail.com", "me.com",
}

// GenerateSeedEntries builds count demo entries: a first-name-by-domain email
// grid, positions 1..count, referred_by sampled from the first ten entries for
// everything after the eleventh, creation times spread over the past 30 days
// and a handful of designated power referrers. Fixture data only: referral
// counts are decorative and not tied to referred_by back-links.
func GenerateSeedEntries(count int, now time.Time, rng *rand.Rand) ([]*models.WaitlistEntry, error) {
	if count <= 0 {
		count = DefaultSeedCount
	}

	entries := make([]*models.WaitlistEntry, 0, count)

	for i := 0; i < count; i++ {
		code, err := models.NewReferralCode()
		if err != nil {
			return nil, err
		}

		suffix := ""
		if i >= len(seedFirstNames) {
			suffix = fmt.Sprintf("%d", i/len(seedFirstNames))
		}

		referredBy := ""
		if i > 10 {
			referredBy = entries[rng.Intn(10)].ReferralCode
		}

		entries = append(entries, &models.WaitlistEntry{
			ID:            uuid.New().String(),
			Email:         fmt.Sprintf("%s%s@%s", seedFirstNames[i%len(seedFirstNames)], suffix, seedDomains[i%len(seedDomains)]),
			ReferralCode:  code,
			ReferredBy:    referredBy,
			ReferralCount: max(0, rng.Intn(6)-2),
			Position:      i + 1,
			CreatedAt:     now.Add(-time.Duration(rng.Int63n(int64(30 * 24 * time.Hour)))),
		})
	}

	powerReferrers := map[int]int{0: 23, 1: 15, 2: 11, 5: 8, 8: 6}
	for idx, referrals := range powerReferrers {
		if idx < len(entries) {
			entries[idx].ReferralCount = referrals
		}
	}

	return entries, nil
}

func (s *waitlistService) SeedDemoData(ctx context.Context, count int) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	entries, err := GenerateSeedEntries(count, time.Now(), rng)
	if err != nil {
		logger.Error("Failed to generate seed entries", "error", err)
		return apperrors.NewInternalServerError("failed to generate seed entries", err)
	}

	if err := s.repository.SeedEntries(ctx, entries); err != nil {
		logger.Error("Failed to seed waitlist", "error", err)
		return err
	}

	logger.Info("Seeded demo waitlist", "entries", len(entries))
	return nil
}
