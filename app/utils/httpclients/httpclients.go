package httpclients

import (
	"time"

	"courtside.ai/data-service/app/utils/logger"
	"github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// NewClient returns a resty client preconfigured for an upstream provider.
// The name tags every request log line so provider traffic can be told apart.
func NewClient(name string) *resty.Client {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	client.SetLogger(logger.GetLogger().WithFields(logrus.Fields{
		"client": name,
	}))
	return client
}
