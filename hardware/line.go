package hardware

import (
	"periph.io/x/conn/v3/gpio"
)

// PinLine is a bidirectional data line on a periph pin. Input mode relies
// on the pull-up, which also keeps the bus high between transfers.
type PinLine struct {
	pin    gpio.PinIO
	output bool
	level  gpio.Level
}

// OpenLine looks up a pin by name, e.g. "GPIO23", and leaves it as a
// pulled-up input.
func OpenLine(name string) (*PinLine, error) {
	pin, err := openPin(name)
	if err != nil {
		return nil, err
	}
	return NewPinLine(pin)
}

// NewPinLine wraps an already acquired pin.
func NewPinLine(pin gpio.PinIO) (*PinLine, error) {
	l := &PinLine{pin: pin, level: gpio.High}
	if err := l.SetInput(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *PinLine) String() string { return l.pin.Name() }

// SetOutput switches to output, driving the last written level.
func (l *PinLine) SetOutput() error {
	if err := l.pin.Out(l.level); err != nil {
		return err
	}
	l.output = true
	return nil
}

func (l *PinLine) SetInput() error {
	if err := l.pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return err
	}
	l.output = false
	return nil
}

// Write records level and drives it when the line is an output.
func (l *PinLine) Write(level gpio.Level) error {
	l.level = level
	if !l.output {
		return nil
	}
	return l.pin.Out(level)
}

func (l *PinLine) Read() (gpio.Level, error) {
	return l.pin.Read(), nil
}

// Halt releases the pin as an input.
func (l *PinLine) Halt() error {
	if err := l.SetInput(); err != nil {
		return err
	}
	return l.pin.Halt()
}
