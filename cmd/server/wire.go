//go:build wireinject

package main

import (
	"courtside.ai/data-service/app/domain"
	"courtside.ai/data-service/app/infrastructure"
	"courtside.ai/data-service/app/interfaces/http"
	"courtside.ai/data-service/app/interfaces/http/routes"
	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
