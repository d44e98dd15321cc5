package storage

import (
	"time"

	"github.com/evkuzin/growstation/config"
	"github.com/evkuzin/growstation/humidity"
)

// Adapter archives readings outside the in-memory history. Nothing is ever
// loaded back into the history on start.
type Adapter interface {
	Init(config *config.Config) error
	Put(reading *humidity.Reading) error
	GetEvents(since time.Duration) ([]humidity.Reading, error)
	GetAvg(since time.Duration) (humidity.Measurement, error)
}
