package pacer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFirstWaitDoesNotBlock(t *testing.T) {
	p := New(60)
	start := time.Now()
	p.Wait()
	require.Less(t, time.Since(start), 5*time.Millisecond)
}

// TestPacingBound implements testable property 13: the mean inter-Wait
// interval matches 1/TARGET_FPS within scheduler jitter.
func TestPacingBound(t *testing.T) {
	const fps = 200 // fast enough to keep the test quick, slow enough to be measurable
	p := New(fps)

	p.Wait() // anchor
	start := time.Now()
	const iterations = 20
	for i := 0; i < iterations; i++ {
		p.Wait()
	}
	elapsed := time.Since(start)

	want := time.Duration(iterations) * (time.Second / fps)
	require.InDelta(t, want.Seconds(), elapsed.Seconds(), 0.05)
}

func TestNoCatchUpBurstAfterLag(t *testing.T) {
	p := New(1000) // 1ms period
	p.Wait()        // anchor

	time.Sleep(20 * time.Millisecond) // simulate a decode stall

	start := time.Now()
	p.Wait()
	// Wait must return immediately (deadline already passed), not sleep
	// through the 20 missed periods.
	require.Less(t, time.Since(start), 5*time.Millisecond)
}
