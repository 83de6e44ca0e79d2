package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/waitlyst/waitlyst/config/router"
	"github.com/waitlyst/waitlyst/domain/waitlist"
	"github.com/waitlyst/waitlyst/internal/log"
	"github.com/waitlyst/waitlyst/internal/session"
	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
	"github.com/waitlyst/waitlyst/pkg/ratelimit"
	"gorm.io/gorm"
)

func NewAdminController(
	db *gorm.DB,
	logger *log.Logger,
	sessions session.Store,
	password string,
	linkBase string,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"AdminController",
		"v1",
		"/admin",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewAdminService(logger, sessions, password)
			entries := waitlist.NewWaitlistService(logger, waitlist.NewWaitlistRepository(db), linkBase)

			requireAdmin := RequireAdmin(service)
			loginLimiter := createLoginRateLimiter()

			rs.AddPostHandler(c, loginLimiter, "/session", loginHandler(service))
			rs.AddDeleteHandler(c, nil, "/session", logoutHandler(service))
			rs.AddGetHandler(c, nil, "/waitlist", listEntriesHandler(entries), requireAdmin)
			rs.AddGetHandler(c, nil, "/stats", statsHandler(entries), requireAdmin)
			rs.AddRawGetHandler(c, nil, "/waitlist/export", exportHandler(entries), requireAdmin)
		},
	)
}

func createLoginRateLimiter() ratelimit.RateLimiter {
	const loginRequestsPerMinute = 10 // Plaintext gate; keep guessing slow anyway

	config := &ratelimit.RateLimitConfig{
		Requests: loginRequestsPerMinute,
		Window:   time.Minute,
		Redis:    nil,
		Logger:   nil,
	}

	return ratelimit.NewRateLimiter(config)
}

func loginHandler(service AdminService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req LoginRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		token, err := service.Login(ctx.Request.Context(), req.Password)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		setAdminCookie(ctx, token, int(adminSessionTTL.Seconds()))

		return router.OKResult(LoginResponse{Token: token}, "Admin session created successfully")
	}
}

func logoutHandler(service AdminService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		if err := service.Logout(ctx.Request.Context(), adminToken(ctx)); err != nil {
			logger.Error("Failed to delete admin session", "error", err)
		}
		setAdminCookie(ctx, "", -1)

		return router.OKResult(nil, "Admin session cleared successfully")
	}
}

func listEntriesHandler(entries waitlist.WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := entries.GetAllEntries(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response, "Waitlist entries retrieved successfully")
	}
}

func statsHandler(entries waitlist.WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := entries.GetStats(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response, "Waitlist stats retrieved successfully")
	}
}

func exportHandler(entries waitlist.WaitlistService) router.MiddlewareFunc {
	return func(ctx *router.RequestContext) {
		logger := router.GetLogger(ctx)

		csv, err := entries.ExportCSV(ctx.Request.Context())
		if err != nil {
			logger.Error("Failed to export waitlist CSV", "error", err)
			ctx.JSON(apperrors.HTTPStatusCode(err), router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			).ToJSON())
			return
		}

		filename := waitlist.ExportFilename(time.Now())
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
	}
}

func setAdminCookie(ctx *router.RequestContext, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(AdminCookieName, token, maxAge, "/", "", false, true)
}
