package waitlist

import (
	"net/http"
	"time"

	"github.com/waitlyst/waitlyst/config/router"
	"github.com/waitlyst/waitlyst/internal/log"
	"github.com/waitlyst/waitlyst/internal/session"
	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
	"github.com/waitlyst/waitlyst/pkg/ratelimit"
	"gorm.io/gorm"
)

const (
	// SessionCookieName carries the opaque token linking a browser to its
	// signup.
	SessionCookieName = "waitlyst_session"

	userSessionPrefix = "user:"
	userSessionTTL    = 30 * 24 * time.Hour
)

func NewWaitlistController(
	db *gorm.DB,
	logger *log.Logger,
	sessions session.Store,
	linkBase string,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"WaitlistController",
		"v1",
		"/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewWaitlistRepository(db)
			service := NewWaitlistService(logger, repository, linkBase)

			signupLimiter := createSignupRateLimiter()

			rs.AddPostHandler(c, signupLimiter, "", signupHandler(service, sessions))
			rs.AddGetHandler(c, nil, "/count", signupCountHandler(service))
			rs.AddGetHandler(c, nil, "/referral/:code", findByReferralCodeHandler(service))
			rs.AddGetHandler(c, nil, "/me", currentUserHandler(service, sessions))
			rs.AddDeleteHandler(c, nil, "/me/session", clearSessionHandler(sessions))
		},
	)
}

func createSignupRateLimiter() ratelimit.RateLimiter {
	const signupRequestsPerMinute = 30 // More permissive than monitoring (10/min)

	config := &ratelimit.RateLimitConfig{
		Requests: signupRequestsPerMinute,
		Window:   time.Minute,
		Redis:    nil,
		Logger:   nil,
	}

	return ratelimit.NewRateLimiter(config)
}

func signupHandler(service WaitlistService, sessions session.Store) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SignupRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		// Share links land on the page as ?ref=<code>; the query parameter is
		// the fallback when the body carries no code.
		if req.ReferredBy == "" {
			req.ReferredBy = ctx.Query("ref")
		}

		response, err := service.Signup(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		// Mark this browser session as the freshly signed-up user.
		token := session.NewToken()
		if err := sessions.Set(ctx.Request.Context(), userSessionPrefix+token, response.Email, userSessionTTL); err != nil {
			logger.Error("Failed to store signup session", "error", err)
		} else {
			setSessionCookie(ctx, token, int(userSessionTTL.Seconds()))
		}

		return router.CreatedResult(response, "Waitlist entry")
	}
}

func signupCountHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		total, err := service.TotalSignups(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(SignupCountResponse{Total: total}, "Signup count retrieved successfully")
	}
}

func findByReferralCodeHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.FindByReferralCode(ctx.Request.Context(), ctx.Param("code"))
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response, "Waitlist entry retrieved successfully")
	}
}

func currentUserHandler(service WaitlistService, sessions session.Store) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		email, ok := resolveSessionEmail(ctx, sessions)
		if !ok {
			return router.NotFoundResult("No active signup session")
		}

		// Always re-read storage so referral counts are fresh.
		response, err := service.GetEntryByEmail(ctx.Request.Context(), email)
		if err != nil {
			// The marker no longer matches an entry. Entries are never
			// deleted, so this should not happen; treat it as absent.
			logger.Warn("Session marker resolved to no entry", "error", err)
			return router.NotFoundResult("No active signup session")
		}

		return router.OKResult(response, "Current user retrieved successfully")
	}
}

func clearSessionHandler(sessions session.Store) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		if token, err := ctx.Cookie(SessionCookieName); err == nil && token != "" {
			if err := sessions.Delete(ctx.Request.Context(), userSessionPrefix+token); err != nil {
				logger.Error("Failed to delete signup session", "error", err)
			}
		}
		setSessionCookie(ctx, "", -1)

		return router.OKResult(nil, "Session cleared successfully")
	}
}

func resolveSessionEmail(ctx *router.RequestContext, sessions session.Store) (string, bool) {
	token, err := ctx.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return "", false
	}

	email, err := sessions.Get(ctx.Request.Context(), userSessionPrefix+token)
	if err != nil || email == "" {
		return "", false
	}

	return email, true
}

func setSessionCookie(ctx *router.RequestContext, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, token, maxAge, "/", "", false, true)
}
