package waitlist

import (
	"github.com/waitlyst/waitlyst/internal/models"
	"github.com/waitlyst/waitlyst/pkg/constants"
)

type SignupRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	// ReferredBy carries the referral code from the ?ref= share link. Any
	// value is accepted and recorded; only codes that resolve to an existing
	// entry credit a referrer.
	ReferredBy string `json:"referred_by" binding:"omitempty,alphanum,max=64"`
}

type WaitlistEntryResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	ReferralCode  string `json:"referral_code"`
	ReferredBy    string `json:"referred_by,omitempty"`
	ReferralCount int    `json:"referral_count"`
	Position      int    `json:"position"`
	ReferralLink  string `json:"referral_link"`
	CreatedAt     string `json:"created_at"`
}

type SignupCountResponse struct {
	Total int64 `json:"total"`
}

type WaitlistStatsResponse struct {
	TotalSignups   int64                  `json:"total_signups"`
	TodaySignups   int64                  `json:"today_signups"`
	TotalReferrals int64                  `json:"total_referrals"`
	TopReferrer    *WaitlistEntryResponse `json:"top_referrer,omitempty"`
}

// ========================================
// Mappers
// ========================================

func ToWaitlistEntryResponse(entry *models.WaitlistEntry, linkBase string) WaitlistEntryResponse {
	if entry == nil {
		return WaitlistEntryResponse{}
	}
	return WaitlistEntryResponse{
		ID:            entry.ID,
		Email:         entry.Email,
		ReferralCode:  entry.ReferralCode,
		ReferredBy:    entry.ReferredBy,
		ReferralCount: entry.ReferralCount,
		Position:      entry.Position,
		ReferralLink:  ReferralLink(linkBase, entry.ReferralCode),
		CreatedAt:     entry.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}

// ReferralLink builds the share link a signup spreads: <base>?ref=<code>.
func ReferralLink(linkBase, code string) string {
	return linkBase + "?ref=" + code
}
