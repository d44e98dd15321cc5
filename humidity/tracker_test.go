package humidity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTrackerRead(t *testing.T) {
	line := newSimLine(frameScript(withChecksum(0x01, 0xf4, 0x00, 0xdc)))
	tracker, err := NewTracker(VariantDHT22, line, &recordingDelay{})
	require.NoError(t, err)
	local := time.Date(2024, 5, 1, 14, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	tracker.now = fixedClock(local)

	r, err := tracker.Read()
	require.NoError(t, err)
	assert.InDelta(t, 50.0, r.Result.Humidity, 1e-9)
	assert.InDelta(t, 22.0, r.Result.Temperature, 1e-9)
	assert.Equal(t, time.UTC, r.Time.Location())
	assert.True(t, r.Time.Equal(local))
}

func TestTrackerReadExhaustsRetries(t *testing.T) {
	line := newSimLine()
	delay := &recordingDelay{}
	tracker, err := NewTracker(VariantDHT11, line, delay)
	require.NoError(t, err)

	_, err = tracker.Read()
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, trackerRetries+1, line.handshake)

	retryDelays := 0
	for _, ms := range delay.millis {
		if ms == retryDelayMs {
			retryDelays++
		}
	}
	assert.Equal(t, trackerRetries, retryDelays)
}

func TestTrackerVariant(t *testing.T) {
	for _, v := range []Variant{VariantDHT22, VariantDHT11} {
		tracker, err := NewTracker(v, newSimLine(), &recordingDelay{})
		require.NoError(t, err)
		assert.Equal(t, v, tracker.Variant())
	}

	_, err := NewTracker(Variant(7), newSimLine(), &recordingDelay{})
	assert.Error(t, err)
}
