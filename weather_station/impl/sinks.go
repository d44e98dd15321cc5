package impl

import (
	"time"

	"github.com/evkuzin/growstation/humidity"
)

const (
	sinkQueue        = 16
	sinkDrainTimeout = 5 * time.Second
)

// sinks hands readings to the archive and the MQTT publisher off the
// sampling goroutine. A full queue drops the reading.
type sinks struct {
	queue   chan humidity.Reading
	done    chan struct{}
	deliver func(humidity.Reading)
}

func newSinks(size int, deliver func(humidity.Reading)) *sinks {
	s := &sinks{
		queue:   make(chan humidity.Reading, size),
		done:    make(chan struct{}),
		deliver: deliver,
	}
	go func() {
		defer close(s.done)
		for reading := range s.queue {
			s.deliver(reading)
		}
	}()
	return s
}

// Push queues a reading without blocking and reports whether it was kept.
func (s *sinks) Push(reading humidity.Reading) bool {
	select {
	case s.queue <- reading:
		return true
	default:
		return false
	}
}

// Close stops accepting readings and waits up to timeout for the queue to
// drain. It reports whether the queue drained in time.
func (s *sinks) Close(timeout time.Duration) bool {
	close(s.queue)
	select {
	case <-s.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// startSinks wires the optional archive and publisher behind a queue.
func (ws *weatherStationImpl) startSinks() {
	if ws.Storage == nil && ws.publisher == nil {
		return
	}
	ws.sinks = newSinks(sinkQueue, ws.deliver)
}

func (ws *weatherStationImpl) deliver(reading humidity.Reading) {
	if ws.Storage != nil {
		if err := ws.Storage.Put(&reading); err != nil {
			ws.logger.Warnf("cannot write to storage: %s", err.Error())
		}
	}
	if ws.publisher != nil {
		if err := ws.publisher.Publish(reading); err != nil {
			ws.logger.Warnf("cannot publish reading: %s", err.Error())
		}
	}
}
