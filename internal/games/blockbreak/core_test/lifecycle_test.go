package core_test

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestLifecycleHappyPath(t *testing.T) {
	lc := core.NewLifecycle(quietLogger())
	assert.Equal(t, core.NotLoaded, lc.State())

	release := make(chan struct{})
	lc.Begin(context.Background(), func(context.Context) error {
		<-release
		return nil
	})
	assert.Equal(t, core.LoadingAssets, lc.Poll(), "worker still running")
	assert.False(t, lc.MarkReady())

	close(release)
	require.Equal(t, core.LoadingDone, lc.Wait())
	assert.True(t, lc.MarkReady())
	assert.Equal(t, core.Ready, lc.State())

	assert.False(t, lc.Finalize(), "must unload first")
	assert.True(t, lc.RequestUnload())
	assert.True(t, lc.Finalize())
	assert.Equal(t, core.Finalized, lc.State())
	assert.NoError(t, lc.Err())
}

func TestLifecycleLoadFailure(t *testing.T) {
	lc := core.NewLifecycle(quietLogger())
	lc.Begin(context.Background(), func(context.Context) error {
		return core.ErrAssetMissing
	})

	assert.Equal(t, core.LoadingAssets, lc.Wait(), "never reaches LoadingDone")
	assert.ErrorIs(t, lc.Err(), core.ErrAssetMissing)
	assert.False(t, lc.MarkReady())
	assert.Equal(t, core.LoadingAssets, lc.Poll())
}

func TestLifecycleBeginOnce(t *testing.T) {
	lc := core.NewLifecycle(quietLogger())
	calls := 0
	load := func(context.Context) error {
		calls++
		return nil
	}
	lc.Begin(context.Background(), load)
	lc.Wait()
	lc.Begin(context.Background(), load)
	assert.Equal(t, 1, calls)
}

func TestLoadStateString(t *testing.T) {
	assert.Equal(t, "loading_done", core.LoadingDone.String())
	assert.Equal(t, "load_state(42)", core.LoadState(42).String())
}
