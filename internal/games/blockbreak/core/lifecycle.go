package core

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// LoadState is the coarse asset-readiness state of a game mode.
type LoadState int

const (
	NotLoaded LoadState = iota
	LoadingAssets
	LoadingDone
	Ready
	Unloading
	Finalized
)

var loadStateNames = [...]string{"not_loaded", "loading_assets", "loading_done", "ready", "unloading", "finalized"}

func (s LoadState) String() string {
	if s >= 0 && int(s) < len(loadStateNames) {
		return loadStateNames[s]
	}
	return fmt.Sprintf("load_state(%d)", int(s))
}

// Lifecycle drives a mode through its load states. Asset loading runs on a
// single worker goroutine; the owner polls once per frame and the worker is
// joined before LoadingDone is reported. A failed load leaves the state at
// LoadingAssets and exposes the error through Err.
type Lifecycle struct {
	state LoadState
	group *errgroup.Group
	done  chan struct{}
	err   error
	log   *log.Logger
}

// NewLifecycle returns a lifecycle in NotLoaded. A nil logger uses the
// default logger.
func NewLifecycle(logger *log.Logger) *Lifecycle {
	if logger == nil {
		logger = log.Default()
	}
	return &Lifecycle{log: logger}
}

// State returns the current state.
func (lc *Lifecycle) State() LoadState { return lc.state }

// Err returns the load failure, if any.
func (lc *Lifecycle) Err() error { return lc.err }

// Begin starts the loader worker. It is a no-op outside NotLoaded.
func (lc *Lifecycle) Begin(ctx context.Context, load func(ctx context.Context) error) {
	if lc.state != NotLoaded {
		return
	}
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		return load(gctx)
	})
	lc.group, lc.done = g, done
	lc.state = LoadingAssets
	lc.log.Debug("loading assets")
}

// Poll checks the worker without blocking. When it has finished the worker
// is joined and the state advances to LoadingDone, unless it failed.
func (lc *Lifecycle) Poll() LoadState {
	if lc.state != LoadingAssets || lc.err != nil {
		return lc.state
	}
	select {
	case <-lc.done:
	default:
		return lc.state
	}
	if err := lc.group.Wait(); err != nil {
		lc.err = err
		lc.log.Error("asset loading failed", "err", err)
		return lc.state
	}
	lc.group, lc.done = nil, nil
	lc.state = LoadingDone
	return lc.state
}

// Wait blocks until the worker finishes, then behaves like Poll.
func (lc *Lifecycle) Wait() LoadState {
	if lc.state == LoadingAssets && lc.done != nil {
		<-lc.done
	}
	return lc.Poll()
}

// MarkReady moves LoadingDone to Ready.
func (lc *Lifecycle) MarkReady() bool {
	return lc.advance(LoadingDone, Ready)
}

// RequestUnload moves Ready to Unloading.
func (lc *Lifecycle) RequestUnload() bool {
	return lc.advance(Ready, Unloading)
}

// Finalize moves Unloading to Finalized.
func (lc *Lifecycle) Finalize() bool {
	return lc.advance(Unloading, Finalized)
}

func (lc *Lifecycle) advance(from, to LoadState) bool {
	if lc.state != from {
		return false
	}
	lc.log.Debug("lifecycle", "from", from, "to", to)
	lc.state = to
	return true
}
