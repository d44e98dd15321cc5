// Package humidity drives DHT-family temperature/humidity sensors over a
// single bit-banged GPIO line and publishes timestamped readings.
package humidity

import (
	"fmt"
	"math"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Measurement is one decoded sensor frame.
type Measurement struct {
	// Temperature in degrees Celsius, tenths resolution.
	Temperature float64 `json:"temperature"`
	// Humidity in percent relative humidity, tenths resolution.
	Humidity float64 `json:"humidity"`
}

// Env converts the measurement to periph physical units.
func (m Measurement) Env() physic.Env {
	return physic.Env{
		Temperature: physic.ZeroCelsius + physic.Temperature(math.Round(m.Temperature*10))*100*physic.MilliKelvin,
		Humidity:    physic.RelativeHumidity(math.Round(m.Humidity*10)) * physic.PercentRH / 10,
	}
}

// Reading is a successful measurement stamped with the time it was taken.
type Reading struct {
	Result Measurement `json:"result"`
	Time   time.Time   `json:"time"`
}

const readingTimeLayout = "2006-01-02 15:04:05 MST"

func (r Reading) String() string {
	return fmt.Sprintf("Temperature: %v°C, Humidity: %v%%, Time: %s",
		r.Result.Temperature, r.Result.Humidity, r.Time.Format(readingTimeLayout))
}

// Variant selects the sensor model wired to the line.
type Variant int

const (
	// VariantDHT22 (AM2302): 16-bit fixed point, signed temperature.
	VariantDHT22 Variant = iota
	// VariantDHT11: whole degrees and whole percent only.
	VariantDHT11
)

func (v Variant) String() string {
	switch v {
	case VariantDHT22:
		return "dht22"
	case VariantDHT11:
		return "dht11"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant accepts the config spelling of a sensor model.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dht22", "am2302":
		return VariantDHT22, nil
	case "dht11":
		return VariantDHT11, nil
	}
	return 0, fmt.Errorf("unknown sensor type %q", s)
}

// Line is the single data line the sensor hangs off.
type Line interface {
	SetOutput() error
	SetInput() error
	Write(l gpio.Level) error
	Read() (gpio.Level, error)
}

// Delay provides busy waits at microsecond and millisecond granularity.
type Delay interface {
	DelayMicroseconds(us uint)
	DelayMilliseconds(ms uint)
}

// Device is one of the supported sensor models. The set is closed: only
// DHT22 and DHT11 implement it.
type Device interface {
	// Measure runs one handshake, 40-bit read and checksum check.
	Measure() (Measurement, error)
	// MeasureWithRetries calls Measure up to retries+1 times and returns the
	// first success or the last error.
	MeasureWithRetries(retries uint) (Measurement, error)
	Variant() Variant

	sealed()
}
