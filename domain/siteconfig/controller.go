// Package siteconfig exposes the read-only branding and campaign
// configuration the landing page renders: product identity, launch date for
// the countdown, the reward ladder, and share-message templates.
package siteconfig

import (
	"strings"

	"github.com/waitlyst/waitlyst/config"
	"github.com/waitlyst/waitlyst/config/router"
	"github.com/waitlyst/waitlyst/domain/rewards"
	"github.com/waitlyst/waitlyst/domain/waitlist"
	"github.com/waitlyst/waitlyst/internal/log"
	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
	"github.com/waitlyst/waitlyst/pkg/constants"
	"gorm.io/gorm"
)

type SiteConfigResponse struct {
	ProductName string                 `json:"product_name"`
	Tagline     string                 `json:"tagline"`
	Description string                 `json:"description"`
	LaunchDate  string                 `json:"launch_date"`
	RewardTiers []rewards.Tier         `json:"reward_tiers"`
	Social      config.SocialTemplates `json:"social"`
}

type ShareLinksResponse struct {
	ReferralLink string `json:"referral_link"`
	Twitter      string `json:"twitter"`
	LinkedIn     string `json:"linkedin"`
	WhatsApp     string `json:"whatsapp"`
	EmailSubject string `json:"email_subject"`
	EmailBody    string `json:"email_body"`
}

func NewSiteConfigController(
	db *gorm.DB,
	logger *log.Logger,
	settings *config.WaitlistSettings,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"SiteConfigController",
		"v1",
		"/config",
		func(rs *router.RouterService, c *router.RESTController) {
			entries := waitlist.NewWaitlistService(logger, waitlist.NewWaitlistRepository(db), settings.LinkBase)

			rs.AddGetHandler(c, nil, "", getSiteConfigHandler(settings))
			rs.AddGetHandler(c, nil, "/share/:code", getShareLinksHandler(entries, settings))
		},
	)
}

func getSiteConfigHandler(settings *config.WaitlistSettings) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response := SiteConfigResponse{
			ProductName: settings.ProductName,
			Tagline:     settings.Tagline,
			Description: settings.Description,
			LaunchDate:  settings.LaunchDate.Format(constants.RFC3339DateTimeFormat),
			RewardTiers: rewards.DefaultTiers,
			Social:      settings.Social,
		}

		return router.OKResult(response, "Site config retrieved successfully")
	}
}

func getShareLinksHandler(entries waitlist.WaitlistService, settings *config.WaitlistSettings) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		entry, err := entries.FindByReferralCode(ctx.Request.Context(), ctx.Param("code"))
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		link := entry.ReferralLink
		response := ShareLinksResponse{
			ReferralLink: link,
			Twitter:      resolveTemplate(settings.Social.Twitter, settings.ProductName, link),
			LinkedIn:     resolveTemplate(settings.Social.LinkedIn, settings.ProductName, link),
			WhatsApp:     resolveTemplate(settings.Social.WhatsApp, settings.ProductName, link),
			EmailSubject: resolveTemplate(settings.Social.EmailSubject, settings.ProductName, link),
			EmailBody:    resolveTemplate(settings.Social.EmailBody, settings.ProductName, link),
		}

		return router.OKResult(response, "Share links retrieved successfully")
	}
}

func resolveTemplate(template, product, link string) string {
	resolved := strings.ReplaceAll(template, "{product}", product)
	return strings.ReplaceAll(resolved, "{link}", link)
}
