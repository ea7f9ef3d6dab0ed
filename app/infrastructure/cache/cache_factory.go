package cache

import (
	"strings"

	"courtside.ai/data-service/config/environment_variables"
)

// NewCacheService creates the ephemeral cache backend based on configuration.
// The in-process memory cache is the default; redis is for deployments where
// replicas should share the hot tier.
func NewCacheService() CacheService {
	cacheType := strings.ToLower(environment_variables.EnvironmentVariables.CACHE_TYPE)

	switch cacheType {
	case "redis":
		return NewRedisCacheService()
	case "none":
		return NewNoopCacheService()
	default:
		return NewMemoryCacheService()
	}
}
