package rewards

import (
	"github.com/waitlyst/waitlyst/config/router"
	"github.com/waitlyst/waitlyst/domain/waitlist"
	"github.com/waitlyst/waitlyst/internal/log"
	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
	"gorm.io/gorm"
)

func NewRewardsController(
	db *gorm.DB,
	logger *log.Logger,
	linkBase string,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"RewardsController",
		"v1",
		"/rewards",
		func(rs *router.RouterService, c *router.RESTController) {
			entries := waitlist.NewWaitlistService(logger, waitlist.NewWaitlistRepository(db), linkBase)
			service := NewRewardsService(logger, entries, DefaultTiers)

			rs.AddGetHandler(c, nil, "/:code", getProgressHandler(service))
		},
	)
}

func getProgressHandler(service RewardsService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.GetProgress(ctx.Request.Context(), ctx.Param("code"))
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response, "Reward progress retrieved successfully")
	}
}
