package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/particlefield/core"
)

// FrameSink consumes frames produced by a Loop
type FrameSink interface {
	DrawFrame(Frame)
}

// FrameSinkFunc adapts a function to FrameSink
type FrameSinkFunc func(Frame)

// DrawFrame calls f
func (f FrameSinkFunc) DrawFrame(fr Frame) { f(fr) }

// Loop ticks an engine on a background goroutine at a fixed frame interval
// For hosts without their own frame loop; hosts that have one call Engine.Tick directly
type Loop struct {
	engine   *Engine
	sink     FrameSink
	interval time.Duration

	frameCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewLoop creates a stopped loop; a non-positive interval uses DefaultFrameRate
func NewLoop(e *Engine, sink FrameSink, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = time.Second / DefaultFrameRate
	}
	return &Loop{
		engine:   e,
		sink:     sink,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins ticking; calling Start on a running or stopped loop is a no-op
func (l *Loop) Start() {
	select {
	case <-l.stopChan:
		return
	default:
	}
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		core.Go(l.run)
	}
}

// Stop halts the loop and waits for the in-flight frame, if any
// No frame is delivered after Stop returns
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.running.Swap(false) {
			l.wg.Wait()
		}
	})
}

// Frames returns the number of frames delivered to the sink
func (l *Loop) Frames() uint64 {
	return l.frameCount.Load()
}

func (l *Loop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
		}

		frame := l.engine.Tick()

		// Stop may have raced with the tick; drop the frame rather than draw after teardown
		select {
		case <-l.stopChan:
			return
		default:
		}

		if !l.engine.Mounted() {
			continue
		}
		l.sink.DrawFrame(frame)
		l.frameCount.Add(1)
	}
}
