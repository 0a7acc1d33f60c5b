package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

func TestDebounce(t *testing.T) {
	d := core.NewDebounce(150)
	assert.True(t, d.Ready(), "open before first use")
	assert.True(t, d.Tick(16))

	d.Reset()
	assert.False(t, d.Ready())
	assert.EqualValues(t, 150, d.Remaining())

	for i := 0; i < 9; i++ {
		assert.False(t, d.Tick(16), "tick %d", i)
	}
	assert.True(t, d.Tick(16), "reopens once 150ms elapsed")
	assert.EqualValues(t, 0, d.Remaining(), "never negative")
}

func TestDebounceZeroTickDoesNothing(t *testing.T) {
	d := core.NewDebounce(100)
	d.Reset()
	assert.False(t, d.Tick(0))
	assert.EqualValues(t, 100, d.Remaining())
}
