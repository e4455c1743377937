package window

import (
	"context"
	"sync"
)

// frameLoop draws frames on its own goroutine. A newer frame replaces one
// that has not started yet and cancels the one being drawn.
type frameLoop struct {
	frames chan frameState
	done   chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
}

func startFrames(draw func(context.Context, frameState)) *frameLoop {
	f := &frameLoop{
		frames: make(chan frameState, 1),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(f.done)
		for st := range f.frames {
			ctx, cancel := context.WithCancel(context.Background())
			f.mu.Lock()
			f.cancel = cancel
			f.mu.Unlock()
			draw(ctx, st)
			f.mu.Lock()
			f.cancel = nil
			f.mu.Unlock()
			cancel()
		}
	}()
	return f
}

// submit queues st, dropping any frame still waiting.
func (f *frameLoop) submit(st frameState) {
	select {
	case f.frames <- st:
		return
	default:
	}
	f.cancelCurrent()
	select {
	case <-f.frames:
	default:
	}
	f.frames <- st
}

func (f *frameLoop) cancelCurrent() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
	}
}

// stop drains the loop and returns once the last draw has finished. It
// must be called from the goroutine that submits.
func (f *frameLoop) stop() {
	close(f.frames)
	<-f.done
}
