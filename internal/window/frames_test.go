package window

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameLoopStopWaitsForDraw(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	f := startFrames(func(ctx context.Context, st frameState) {
		close(started)
		<-release
		finished.Store(true)
	})

	f.submit(frameState{message: "first"})
	<-started

	stopped := make(chan struct{})
	go func() {
		f.stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("stop returned while a frame was still drawing")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop did not return after the draw finished")
	}
	assert.True(t, finished.Load())
}

func TestFrameLoopNewerFrameCancelsCurrent(t *testing.T) {
	drawing := make(chan struct{}, 1)
	var seen []string
	f := startFrames(func(ctx context.Context, st frameState) {
		seen = append(seen, st.message)
		if st.message == "slow" {
			drawing <- struct{}{}
			<-ctx.Done()
		}
	})

	f.submit(frameState{message: "slow"})
	<-drawing
	f.submit(frameState{message: "next"})
	f.submit(frameState{message: "latest"})
	f.stop()

	require.NotEmpty(t, seen)
	assert.Equal(t, "slow", seen[0])
	assert.Equal(t, "latest", seen[len(seen)-1])
}
