package humidity

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

const (
	// timeoutPolls bounds every pulse wait, one microsecond per poll.
	timeoutPolls = 1000
	// retryDelayMs separates successive measurement attempts.
	retryDelayMs = 100
	frameBits    = 40
)

// wire is the handshake and pulse-width decoding shared by the DHT models.
type wire struct {
	line  Line
	delay Delay
	// startLowMs is how long the host holds the line low to request a frame.
	startLowMs uint
}

// frame reads and validates the five raw bytes of one measurement.
// The line is left in input mode whatever the outcome.
func (w *wire) frame() (data [4]byte, err error) {
	defer func() {
		if err == nil {
			return
		}
		if ierr := w.line.SetInput(); ierr != nil {
			err = errors.Join(err, hardwareErr("set input", ierr))
		}
	}()

	if err = w.handshake(); err != nil {
		return data, err
	}

	var raw [5]byte
	for i := 0; i < frameBits; i++ {
		bit, err := w.readBit()
		if err != nil {
			return data, err
		}
		raw[i/8] <<= 1
		if bit {
			raw[i/8] |= 1
		}
	}
	// The trailing low pulse after bit 40 is not waited for.
	return checkFrame(raw)
}

func checkFrame(raw [5]byte) ([4]byte, error) {
	sum := raw[0] + raw[1] + raw[2] + raw[3]
	if sum != raw[4] {
		return [4]byte{}, ErrChecksumMismatch
	}
	return [4]byte{raw[0], raw[1], raw[2], raw[3]}, nil
}

func (w *wire) handshake() error {
	if err := w.line.SetOutput(); err != nil {
		return hardwareErr("set output", err)
	}
	// Let the pull-up settle so the start signal begins from a clean high.
	if err := w.line.Write(gpio.High); err != nil {
		return hardwareErr("write", err)
	}
	w.delay.DelayMilliseconds(1)

	if err := w.line.Write(gpio.Low); err != nil {
		return hardwareErr("write", err)
	}
	w.delay.DelayMilliseconds(w.startLowMs)

	if err := w.line.Write(gpio.High); err != nil {
		return hardwareErr("write", err)
	}
	w.delay.DelayMicroseconds(40)

	if err := w.line.SetInput(); err != nil {
		return hardwareErr("set input", err)
	}

	// The sensor answers with one low/high pulse pair carrying no data.
	_, err := w.readBit()
	return err
}

// readBit measures one low pulse and the following high pulse. A long high
// pulse encodes 1.
func (w *wire) readBit() (bool, error) {
	low, err := w.waitFor(gpio.High)
	if err != nil {
		return false, err
	}
	high, err := w.waitFor(gpio.Low)
	if err != nil {
		return false, err
	}
	return high > low, nil
}

// waitFor polls until the line reads level and returns how many polls it
// took.
func (w *wire) waitFor(level gpio.Level) (uint, error) {
	var polls uint
	for {
		l, err := w.line.Read()
		if err != nil {
			return 0, hardwareErr("read", err)
		}
		if l == level {
			return polls, nil
		}
		polls++
		if polls > timeoutPolls {
			return 0, ErrTimeout
		}
		w.delay.DelayMicroseconds(1)
	}
}

func measureWithRetries(measure func() (Measurement, error), delay Delay, retries uint) (Measurement, error) {
	m, err := measure()
	for i := uint(0); i < retries && err != nil; i++ {
		var hw *HardwareError
		if errors.As(err, &hw) {
			break
		}
		delay.DelayMilliseconds(retryDelayMs)
		m, err = measure()
	}
	return m, err
}
