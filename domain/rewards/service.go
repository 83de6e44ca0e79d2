package rewards

import (
	"context"

	"github.com/waitlyst/waitlyst/domain/waitlist"
	"github.com/waitlyst/waitlyst/internal/log"
)

type TierProgress struct {
	Tier
	Unlocked bool `json:"unlocked"`
	// Progress is the percentage toward unlocking, capped at 100.
	Progress int `json:"progress"`
}

type RewardsResponse struct {
	ReferralCode  string         `json:"referral_code"`
	ReferralCount int            `json:"referral_count"`
	Tiers         []TierProgress `json:"tiers"`
}

type RewardsService interface {
	// GetProgress resolves a referral code and reports how far its holder is
	// along the reward ladder.
	GetProgress(ctx context.Context, code string) (*RewardsResponse, error)
}

type rewardsService struct {
	logger  *log.Logger
	entries waitlist.WaitlistService
	tiers   []Tier
}

func NewRewardsService(logger *log.Logger, entries waitlist.WaitlistService, tiers []Tier) RewardsService {
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}
	return &rewardsService{logger: logger, entries: entries, tiers: tiers}
}

func (s *rewardsService) GetProgress(ctx context.Context, code string) (*RewardsResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entry, err := s.entries.FindByReferralCode(ctx, code)
	if err != nil {
		logger.Error("Failed to resolve referral code for rewards", "code", code, "error", err)
		return nil, err
	}

	return &RewardsResponse{
		ReferralCode:  entry.ReferralCode,
		ReferralCount: entry.ReferralCount,
		Tiers:         ProgressFor(s.tiers, entry.ReferralCount),
	}, nil
}

// ProgressFor computes unlock state and percentage for each tier at the given
// referral count.
func ProgressFor(tiers []Tier, referrals int) []TierProgress {
	progress := make([]TierProgress, 0, len(tiers))
	for _, tier := range tiers {
		percent := 100
		if referrals < tier.ReferralsNeeded {
			percent = referrals * 100 / tier.ReferralsNeeded
		}
		progress = append(progress, TierProgress{
			Tier:     tier,
			Unlocked: referrals >= tier.ReferralsNeeded,
			Progress: percent,
		})
	}
	return progress
}
