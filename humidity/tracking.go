package humidity

import (
	"context"
	"runtime"
	"time"
)

// Updater receives the outcome of every sampling tick.
type Updater interface {
	// Update is called with each successful reading.
	Update(r Reading)
	// Error is called when a tick failed. The loop carries on regardless.
	Error(err error)
}

// Task is a running sampling loop.
type Task struct {
	done chan struct{}
}

// Done is closed once the loop has returned.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the loop has returned.
func (t *Task) Wait() { <-t.done }

// StartTracking samples tracker once immediately and then on every tick of
// interval, handing results to state. The loop owns the tracker and runs on
// its own OS thread since a read busy-polls the line for tens of
// milliseconds. It stops only when ctx is cancelled; an attempt already in
// progress is finished first.
func StartTracking(ctx context.Context, state Updater, tracker *Tracker, interval time.Duration) *Task {
	task := &Task{done: make(chan struct{})}
	go func() {
		defer close(task.done)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for ctx.Err() == nil {
			reading, err := tracker.Read()
			if err != nil {
				state.Error(err)
			} else {
				state.Update(reading)
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return task
}
