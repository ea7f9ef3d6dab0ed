package cron

import (
	"context"

	"courtside.ai/data-service/app/domain/catalog"
	"courtside.ai/data-service/app/utils/datetime"
	"courtside.ai/data-service/config/environment_variables"
	"github.com/mileusna/crontab"
)

// CronService keeps the hot read paths warm so the first request after a
// quiet period does not pay the upstream round trip.
type CronService struct {
	catalogService *catalog.Service
}

func NewService(catalogService *catalog.Service) *CronService {
	return &CronService{
		catalogService: catalogService,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	cs.warmCaches(ctx)

	ctab.AddJob("*/30 * * * *", func() {
		cs.warmCaches(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}

func (cs *CronService) warmCaches(ctx context.Context) {
	if cs == nil || cs.catalogService == nil {
		return
	}
	cs.catalogService.Standings(ctx)
	cs.catalogService.EventsForDate(ctx, datetime.LocalToday())
}
