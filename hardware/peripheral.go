// Package hardware binds the sensor and relay lines to periph.io GPIO.
package hardware

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Init loads the periph host drivers.
func Init(logger logrus.FieldLogger) error {
	state, err := host.Init()
	if err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	logger.Debugf("Using drivers:")
	for _, driver := range state.Loaded {
		logger.Debugf("- %s", driver)
	}

	logger.Debugf("Drivers skipped:")
	for _, failure := range state.Skipped {
		logger.Debugf("- %s: %s", failure.D, failure.Err)
	}

	// Failed drivers do not have to be fatal as long as the GPIO driver
	// for this board loaded.
	logger.Debugf("Drivers failed to load:")
	for _, failure := range state.Failed {
		logger.Debugf("- %s: %v", failure.D, failure.Err)
	}
	return nil
}

func openPin(name string) (gpio.PinIO, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("cannot find pin %q", name)
	}
	return pin, nil
}
