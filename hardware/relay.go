package hardware

import (
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// Relay is an on/off output line.
type Relay struct {
	name string
	mu   sync.RWMutex
	pin  gpio.PinOut
	on   bool
}

// OpenRelay acquires pin as an output and keeps its current level.
func OpenRelay(name, pin string) (*Relay, error) {
	p, err := openPin(pin)
	if err != nil {
		return nil, err
	}
	return NewRelay(name, p)
}

// NewRelay wraps an already acquired pin.
func NewRelay(name string, pin gpio.PinIO) (*Relay, error) {
	level := pin.Read()
	if err := pin.Out(level); err != nil {
		return nil, err
	}
	return &Relay{name: name, pin: pin, on: bool(level)}, nil
}

func (r *Relay) Name() string { return r.name }

func (r *Relay) IsOn() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.on
}

func (r *Relay) On() error { return r.set(gpio.High) }

func (r *Relay) Off() error { return r.set(gpio.Low) }

// Toggle flips the relay and returns the new state.
func (r *Relay) Toggle() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := gpio.Level(!r.on)
	if err := r.pin.Out(next); err != nil {
		return r.on, err
	}
	r.on = bool(next)
	return r.on, nil
}

func (r *Relay) set(level gpio.Level) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.pin.Out(level); err != nil {
		return err
	}
	r.on = bool(level)
	return nil
}
