package repository

import (
	"github.com/google/wire"

	"courtside.ai/data-service/app/infrastructure/database/repository/cacherepo"
	"courtside.ai/data-service/app/infrastructure/database/repository/markerrepo"
)

var RepositoryProvider = wire.NewSet(
	cacherepo.NewCacheGormRepository,
	markerrepo.NewMarkerGormRepository,
)
