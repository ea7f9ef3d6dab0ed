package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"courtside.ai/data-service/app/domain/cron"
	"courtside.ai/data-service/app/domain/prefetch"
	"courtside.ai/data-service/app/interfaces/http"
	discussionclient "courtside.ai/data-service/app/utils/httpclients/discussion"
	marketsclient "courtside.ai/data-service/app/utils/httpclients/markets"
	scoreboardclient "courtside.ai/data-service/app/utils/httpclients/scoreboard"
	"courtside.ai/data-service/app/utils/logger"
	"courtside.ai/data-service/config/environment_variables"
	"github.com/mileusna/crontab"
)

type Application struct {
	HttpServer  *http.HttpServer
	Prefetcher  *prefetch.Service
	CronService *cron.CronService
}

func (application *Application) Start() {
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
	scoreboardclient.Init()
	discussionclient.Init()
	marketsclient.Init()
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}

	ctab := crontab.New()
	application.CronService.Start(context.Background(), ctab)

	if !environment_variables.EnvironmentVariables.PREFETCH_DISABLED {
		application.Prefetcher.Start()
	}

	// The prefetcher owns a goroutine with in-flight upstream calls; drain
	// it on SIGINT/SIGTERM before the process exits.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-stop
		logger.GetLogger().Infof("received %s, stopping prefetcher", sig)
		application.Prefetcher.Stop()
		os.Exit(0)
	}()

	application.Start()
}
