package levels

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreak/internal/games/blockbreak/core"
)

func TestParseLayout(t *testing.T) {
	g, err := ParseLayout(strings.NewReader("# comment\n0, 1, 2\n-1,-2,-3\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, "012\nHWT", g.String())
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"ragged", "0,1,2\n0,1\n", 2, 2},
		{"not a number", "0,1\n0,x\n", 2, 2},
		{"unknown code", "0,-9\n", 1, 2},
		{"empty", "", 1, 1},
		{"too wide", strings.Repeat("0,", 64) + "0\n", 1, 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrLevelDataCorrupt)

			var le *core.LayoutError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tt.line, le.Line)
			assert.Equal(t, tt.column, le.Column)
		})
	}
}

func TestParseLayoutQuoteError(t *testing.T) {
	_, err := ParseLayout(strings.NewReader("0,\"1\n"))
	assert.ErrorIs(t, err, core.ErrLevelDataCorrupt)
}

func TestEmbeddedLayoutParses(t *testing.T) {
	c, err := Load(SetStandard)
	require.NoError(t, err)
	for i, s := range c.Levels {
		if s.Generator.Type != GenCSV {
			continue
		}
		g, err := c.layout(s.Generator.Layout)
		require.NoError(t, err, "level %d", i+1)
		assert.Equal(t, s.Grid.W, g.Width())
		assert.Equal(t, s.Grid.H, g.Height())
	}
}
