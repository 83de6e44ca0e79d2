package domain

import (
	"github.com/waitlyst/waitlyst/config"
	"github.com/waitlyst/waitlyst/domain/admin"
	"github.com/waitlyst/waitlyst/domain/monitoring"
	"github.com/waitlyst/waitlyst/domain/rewards"
	"github.com/waitlyst/waitlyst/domain/siteconfig"
	"github.com/waitlyst/waitlyst/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	monitoringFactory := monitoring.NewMonitoringControllerFactory(appConfig.DB, appConfig.Logger, appConfig.Cache)
	appConfig.RouterService.MountController(monitoringFactory.CreateController())
	waitlistFactory := waitlist.NewWaitlistServiceFactory(appConfig.DB, appConfig.Logger, appConfig.Sessions, appConfig.Settings.LinkBase)
	appConfig.RouterService.MountController(waitlistFactory.CreateController())
	appConfig.RouterService.MountController(rewards.NewRewardsController(appConfig.DB, appConfig.Logger, appConfig.Settings.LinkBase))
	appConfig.RouterService.MountController(siteconfig.NewSiteConfigController(appConfig.DB, appConfig.Logger, appConfig.Settings))
	appConfig.RouterService.MountController(admin.NewAdminController(appConfig.DB, appConfig.Logger, appConfig.Sessions, appConfig.Settings.AdminPassword, appConfig.Settings.LinkBase))
}
