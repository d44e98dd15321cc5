package hardware

import "time"

// BusyDelay spins for microsecond waits, where the scheduler is far too
// coarse, and sleeps for millisecond waits.
type BusyDelay struct{}

func (BusyDelay) DelayMicroseconds(us uint) {
	deadline := time.Now().Add(time.Duration(us) * time.Microsecond)
	for time.Now().Before(deadline) {
	}
}

func (BusyDelay) DelayMilliseconds(ms uint) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
