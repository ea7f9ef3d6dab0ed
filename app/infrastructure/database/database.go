package database

import (
	"courtside.ai/data-service/app/domain/cachestore"
	"courtside.ai/data-service/app/infrastructure/database/dbschema"
	"courtside.ai/data-service/app/utils/logger"
	"courtside.ai/data-service/config/environment_variables"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// NewDB opens the durable cache store. A missing DSN is not fatal: the
// service degrades to live fetches plus the ephemeral tier, so a nil *gorm.DB
// is a valid return and repositories must tolerate it.
func NewDB() (*gorm.DB, error) {
	dsn := environment_variables.EnvironmentVariables.DB_POSTGRESQL_WRITE_DSN
	if dsn == "" {
		logger.GetLogger().Warn("durable cache disabled: DB_POSTGRESQL_WRITE_DSN not set")
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		logger.GetLogger().
			WithField("error_code", "8f2a1c6e-4b44-4c35-9e5a-1d2f9c0a7b31").
			Errorf("unable to connect to database: %v", err)
		return nil, err
	}

	if readDSN := environment_variables.EnvironmentVariables.DB_POSTGRESQL_READ1_DSN; readDSN != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(readDSN)},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			logger.GetLogger().
				WithField("error_code", "c3b7e7aa-52f1-4a0d-8f0e-6d2b9f1e44d0").
				Errorf("unable to set up read replica: %v", err)
			return nil, err
		}
	}

	// One cache table per namespace, all sharing the record shape.
	for _, ns := range cachestore.All() {
		if err := db.Table(ns.Table()).AutoMigrate(&dbschema.CacheRecord{}); err != nil {
			logger.GetLogger().
				WithField("error_code", "2d9e0f4b-6a77-4f6e-bb1a-0c8a3d5e9f12").
				Errorf("failed to migrate cache table %s: %v", ns.Table(), err)
			return nil, err
		}
	}
	if err := db.AutoMigrate(&dbschema.EventEndMarker{}); err != nil {
		logger.GetLogger().
			WithField("error_code", "7e1c5a88-9d03-4b2f-a6c4-5f0b8e2d3a90").
			Errorf("failed to migrate event end markers: %v", err)
		return nil, err
	}

	return db, nil
}
