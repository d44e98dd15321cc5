package humidity

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// simLine replays one scripted response per handshake. Once a script is
// used up the line floats at idle.
type simLine struct {
	scripts [][]gpio.Level
	samples []gpio.Level
	idle    gpio.Level

	output    bool
	writes    []gpio.Level
	reads     int
	handshake int

	outputErr error
	readErr   error
}

func newSimLine(scripts ...[]gpio.Level) *simLine {
	return &simLine{scripts: scripts, idle: gpio.High}
}

func (l *simLine) SetOutput() error {
	if l.outputErr != nil {
		return l.outputErr
	}
	l.output = true
	return nil
}

func (l *simLine) SetInput() error {
	if l.output {
		l.samples = nil
		if l.handshake < len(l.scripts) {
			l.samples = l.scripts[l.handshake]
		}
		l.handshake++
	}
	l.output = false
	return nil
}

func (l *simLine) Write(level gpio.Level) error {
	if !l.output {
		return errors.New("write on input line")
	}
	l.writes = append(l.writes, level)
	return nil
}

func (l *simLine) Read() (gpio.Level, error) {
	if l.readErr != nil {
		return gpio.Low, l.readErr
	}
	l.reads++
	if len(l.samples) == 0 {
		return l.idle, nil
	}
	s := l.samples[0]
	l.samples = l.samples[1:]
	return s, nil
}

func repeat(level gpio.Level, n int) []gpio.Level {
	out := make([]gpio.Level, n)
	for i := range out {
		out[i] = level
	}
	return out
}

// frameScript renders the sensor side of one transfer: the acknowledgement
// pulse pair, 40 data bits and the trailing low.
func frameScript(raw [5]byte) []gpio.Level {
	out := append(repeat(gpio.Low, 8), repeat(gpio.High, 8)...)
	for _, b := range raw {
		for bit := 7; bit >= 0; bit-- {
			out = append(out, repeat(gpio.Low, 5)...)
			if b&(1<<bit) != 0 {
				out = append(out, repeat(gpio.High, 9)...)
			} else {
				out = append(out, repeat(gpio.High, 2)...)
			}
		}
	}
	return append(out, repeat(gpio.Low, 5)...)
}

func withChecksum(b0, b1, b2, b3 byte) [5]byte {
	return [5]byte{b0, b1, b2, b3, b0 + b1 + b2 + b3}
}

type recordingDelay struct {
	micros uint
	millis []uint
}

func (d *recordingDelay) DelayMicroseconds(us uint) { d.micros += us }

func (d *recordingDelay) DelayMilliseconds(ms uint) { d.millis = append(d.millis, ms) }
