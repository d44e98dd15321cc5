package humidity

import (
	"fmt"
	"time"
)

// trackerRetries is the retry budget of one Tracker.Read.
const trackerRetries = 10

// Tracker owns one sensor and turns measurements into Readings.
type Tracker struct {
	device Device
	now    func() time.Time
}

// NewTracker builds the device for variant on top of line.
func NewTracker(variant Variant, line Line, delay Delay) (*Tracker, error) {
	var device Device
	switch variant {
	case VariantDHT22:
		device = NewDHT22(line, delay)
	case VariantDHT11:
		device = NewDHT11(line, delay)
	default:
		return nil, fmt.Errorf("unsupported sensor variant %v", variant)
	}
	return &Tracker{device: device, now: time.Now}, nil
}

// Variant reports which sensor model the tracker drives.
func (t *Tracker) Variant() Variant {
	return t.device.Variant()
}

// Read performs one measurement with retries and stamps it in UTC.
func (t *Tracker) Read() (Reading, error) {
	m, err := t.device.MeasureWithRetries(trackerRetries)
	if err != nil {
		return Reading{}, err
	}
	return Reading{Result: m, Time: t.now().UTC()}, nil
}
