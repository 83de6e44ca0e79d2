package rewards

// Tier is one rung of the referral reward ladder.
type Tier struct {
	ReferralsNeeded int    `json:"referrals_needed"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
}

// DefaultTiers is the ladder the landing page ships with.
var DefaultTiers = []Tier{
	{
		ReferralsNeeded: 3,
		Title:           "Early Access",
		Description:     "Skip the line — get in before everyone else",
		Icon:            "🎯",
	},
	{
		ReferralsNeeded: 10,
		Title:           "30% Lifetime Discount",
		Description:     "Lock in a permanent discount, forever",
		Icon:            "💎",
	},
	{
		ReferralsNeeded: 25,
		Title:           "Founding Member",
		Description:     "Exclusive badge + early feature access",
		Icon:            "👑",
	},
	{
		ReferralsNeeded: 50,
		Title:           "VIP Launch Event",
		Description:     "Private invite to our launch celebration",
		Icon:            "🌟",
	},
}
