package weather_station

import (
	"context"
	"net/http"

	"github.com/evkuzin/growstation/config"
	"github.com/sirupsen/logrus"
)

// WeatherStation samples the grow box sensor and serves what it has seen.
type WeatherStation interface {
	ServeHTTP(w http.ResponseWriter, r *http.Request)
	// Start runs the sampling loop until ctx is cancelled.
	Start(ctx context.Context)
	Init(config *config.Config, logger *logrus.Logger) error
	// Close releases the access log. Call it after the HTTP server stops.
	Close() error
}
