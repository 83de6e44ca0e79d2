package config

import (
	"time"

	"github.com/waitlyst/waitlyst/internal/log"
	"github.com/waitlyst/waitlyst/pkg/utils"
)

// SocialTemplates are the share-message templates; {product} and {link} are
// replaced when a share link is resolved for a referral code.
type SocialTemplates struct {
	Twitter      string `json:"twitter"`
	LinkedIn     string `json:"linkedin"`
	WhatsApp     string `json:"whatsapp"`
	EmailSubject string `json:"email_subject"`
	EmailBody    string `json:"email_body"`
}

// WaitlistSettings is the branding and behavior configuration the landing
// page consumes. Everything has a sensible default and an env override.
type WaitlistSettings struct {
	ProductName   string
	Tagline       string
	Description   string
	LaunchDate    time.Time
	LinkBase      string
	AdminPassword string
	Social        SocialTemplates
}

const launchDateLayout = "2006-01-02T15:04:05"

func NewWaitlistSettings(logger *log.Logger) *WaitlistSettings {
	settings := &WaitlistSettings{
		ProductName: utils.GetEnvTrimmedOrDefault("PRODUCT_NAME", "WaitLyst"),
		Tagline:     utils.GetEnvTrimmedOrDefault("PRODUCT_TAGLINE", "The future of product launches starts here"),
		Description: utils.GetEnvTrimmedOrDefault("PRODUCT_DESCRIPTION",
			"Be first in line. Join the waitlist for early access, exclusive perks, and rewards for spreading the word."),
		LinkBase:      utils.GetEnvTrimmedOrDefault("APP_BASE_URL", "http://localhost:3000"),
		AdminPassword: utils.GetEnvTrimmedOrDefault("ADMIN_PASSWORD", "admin123"),
		Social: SocialTemplates{
			Twitter:      "I just joined the {product} waitlist. Something big is coming.\n\n{link}",
			LinkedIn:     "Excited to join the {product} waitlist! Can't wait to see what they're building.\n\n{link}",
			WhatsApp:     "Hey! I just signed up for {product}. Looks really promising — thought you'd want in too: {link}",
			EmailSubject: "You're invited: {product} waitlist",
			EmailBody:    "Hey,\n\nI just joined the {product} waitlist and thought you'd be interested. They're building something pretty exciting.\n\nHere's my invite link: {link}\n\nSee you there!",
		},
	}

	launchDate := utils.GetEnvTrimmedOrDefault("LAUNCH_DATE", "2026-06-01T09:00:00")
	parsed, err := time.ParseInLocation(launchDateLayout, launchDate, time.Local)
	if err != nil {
		logger.Warn("Invalid LAUNCH_DATE, falling back to 90 days out", "value", launchDate, "error", err)
		parsed = time.Now().AddDate(0, 0, 90)
	}
	settings.LaunchDate = parsed

	if settings.AdminPassword == "admin123" {
		logger.Warn("ADMIN_PASSWORD is the default; set it before going live")
	}

	return settings
}
