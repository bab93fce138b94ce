package playback

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gitflix/gitflix/rawframe"
)

func TestQueueFIFOOrdering(t *testing.T) {
	q := NewFrameQueue(4)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		f := rawframe.New(1, 1, 3)
		f.Pixels[0] = byte(i)
		require.True(t, q.Put(ctx, f))
	}

	frames := make([]*rawframe.Frame, 0, 4)
	for i := 0; i < 4; i++ {
		f, ok := q.Get(ctx)
		require.True(t, ok)
		frames = append(frames, f)
	}
	require.Len(t, frames, 4)
	for i, f := range frames {
		require.Equal(t, byte(i), f.Pixels[0], "frame %d out of order", i)
	}
}

func TestQueuePutBlocksWhileFull(t *testing.T) {
	q := NewFrameQueue(1)
	ctx := context.Background()
	require.True(t, q.Put(ctx, rawframe.New(1, 1, 3)))

	putDone := make(chan bool, 1)
	go func() { putDone <- q.Put(ctx, rawframe.New(1, 1, 3)) }()

	select {
	case <-putDone:
		t.Fatal("Put should have blocked while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}

	_, ok := q.Get(ctx)
	require.True(t, ok)

	select {
	case ok := <-putDone:
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Put never unblocked after Get freed a slot")
	}
}

func TestQueueGetBlocksWhileEmpty(t *testing.T) {
	q := NewFrameQueue(4)
	ctx := context.Background()

	getDone := make(chan bool, 1)
	go func() {
		_, ok := q.Get(ctx)
		getDone <- ok
	}()

	select {
	case <-getDone:
		t.Fatal("Get should have blocked on an empty queue")
	case <-time.After(50 * time.Millisecond):
	}

	require.True(t, q.Put(ctx, rawframe.New(1, 1, 3)))

	select {
	case ok := <-getDone:
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Get never unblocked after Put")
	}
}

// TestCancellation implements testable property 14: setting should_exit
// (here, cancelling ctx) causes a blocked Get to return promptly.
func TestCancellation(t *testing.T) {
	q := NewFrameQueue(1)
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	var ok bool
	go func() {
		defer wg.Done()
		_, ok = q.Get(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	start := time.Now()
	cancel()
	wg.Wait()

	require.Less(t, time.Since(start), 100*time.Millisecond)
	require.False(t, ok)
}

func TestCloseDrainsBufferedFramesBeforeReportingClosed(t *testing.T) {
	q := NewFrameQueue(4)
	ctx := context.Background()
	require.True(t, q.Put(ctx, rawframe.New(1, 1, 3)))
	require.True(t, q.Put(ctx, rawframe.New(1, 1, 3)))

	q.Close()

	_, ok := q.Get(ctx)
	require.True(t, ok)
	_, ok = q.Get(ctx)
	require.True(t, ok)
	_, ok = q.Get(ctx)
	require.False(t, ok)
}
