package main

import (
	// stdlib
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// runControl is the shared pause/resume/stop switch. The processor
// checks it once per frame, the webplayer flips it from HTTP handlers.
type runControl struct {
	mu      sync.Mutex
	cond    *sync.Cond
	paused  bool
	stopped bool
}

func newRunControl() *runControl {
	rc := &runControl{}
	rc.cond = sync.NewCond(&rc.mu)
	return rc
}

func (rc *runControl) Pause() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.paused = true
}

func (rc *runControl) Resume() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.paused = false
	rc.cond.Broadcast()
}

func (rc *runControl) Stop() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.stopped = true
	rc.paused = false
	rc.cond.Broadcast()
}

// Wait blocks while paused and reports whether a stop was requested.
func (rc *runControl) Wait() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for rc.paused && !rc.stopped {
		rc.cond.Wait()
	}
	return rc.stopped
}

func control(
	ctx context.Context,
	logger *slog.Logger,
	rc *runControl,
) error {

	logger = logger.With("coroutine", "control")

	sig_chan := make(chan os.Signal, 1)
	signal.Notify(sig_chan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig_chan)

	select {
	case <-ctx.Done():
		// a sibling stage failed, release anyone parked in Wait
		rc.Stop()
		return context.Canceled
	case s := <-sig_chan:
		logger.Info("Interrupted", "signal", s)
		rc.Stop()
		return ERR_INTERRUPTED_BY_USER
	}
}
