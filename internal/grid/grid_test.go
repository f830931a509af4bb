package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMod(t *testing.T) {
	tests := []struct {
		a, m, want int64
	}{
		{0, 10, 0},
		{7, 10, 7},
		{10, 10, 0},
		{23, 10, 3},
		{-1, 10, 9},
		{-10, 10, 0},
		{-23, 10, 7},
		{math.MinInt64, 10, 2},
		{math.MaxInt64, 10, 7},
	}
	for _, tt := range tests {
		if got := Mod(tt.a, tt.m); got != tt.want {
			t.Fatalf("Mod(%d, %d) = %d, want %d", tt.a, tt.m, got, tt.want)
		}
	}
}

func TestAdvanceWraps(t *testing.T) {
	g, err := New(10)
	require.NoError(t, err)

	assert.Equal(t, Position{X: 10, Y: 1}, g.Advance(Start, Displacement{DX: -1}))
	assert.Equal(t, Start, g.Advance(Start, Displacement{DX: 10}))
	assert.Equal(t, Position{X: 3, Y: 5}, g.Advance(Start, Displacement{DX: 2, DY: 4}))
	assert.Equal(t, Position{X: 1, Y: 10}, g.Advance(Position{X: 10, Y: 10}, Displacement{DX: 1}))
	assert.Equal(t, Position{X: 5, Y: 5}, g.Advance(Position{X: 5, Y: 5}, Displacement{DX: -100, DY: 1000}))
}

func TestAdvanceStaysOnGrid(t *testing.T) {
	g, err := New(DefaultSize)
	require.NoError(t, err)

	deltas := []int64{0, 1, -1, DefaultSize, -DefaultSize, DefaultSize + 1, math.MaxInt64, math.MinInt64, math.MinInt64 + 1}
	for _, dx := range deltas {
		for _, dy := range deltas {
			p := g.Advance(Position{X: DefaultSize, Y: 1}, Displacement{DX: dx, DY: dy})
			if !g.Contains(p) {
				t.Fatalf("advance by (%d,%d) left the grid: %v", dx, dy, p)
			}
		}
	}
}

func TestAdvanceScenario(t *testing.T) {
	g, err := New(DefaultSize)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 3, Y: 999999995}, g.Advance(Start, Displacement{DX: 2, DY: -6}))
}

func TestReduceLandsOnSameCell(t *testing.T) {
	g, err := New(7)
	require.NoError(t, err)
	for _, d := range []Displacement{{-15, 22}, {0, -7}, {math.MinInt64, math.MaxInt64}} {
		r := g.Reduce(d)
		assert.GreaterOrEqual(t, r.DX, int64(0))
		assert.Less(t, r.DY, int64(7))
		assert.Equal(t, g.Advance(Start, d), g.Advance(Start, r))
	}
}

func TestWrap(t *testing.T) {
	g := Grid{Size: 5}
	assert.Equal(t, int64(5), g.Wrap(0))
	assert.Equal(t, int64(1), g.Wrap(6))
	assert.Equal(t, int64(4), g.Wrap(-1))
	assert.Equal(t, int64(3), g.Wrap(3))
}

func TestNewRejectsBadSize(t *testing.T) {
	for _, size := range []int64{0, -1, MaxSize + 1} {
		_, err := New(size)
		if !errors.Is(err, ErrGridSize) {
			t.Fatalf("New(%d) err = %v, want ErrGridSize", size, err)
		}
	}
}

func TestCheck(t *testing.T) {
	g := Grid{Size: 3}
	require.NoError(t, g.Check(Position{X: 3, Y: 1}))
	require.ErrorIs(t, g.Check(Position{X: 0, Y: 1}), ErrOutOfRange)
	require.ErrorIs(t, g.Check(Position{X: 1, Y: 4}), ErrOutOfRange)
}

func TestDirections(t *testing.T) {
	tests := []struct {
		c    byte
		want Displacement
	}{
		{'N', Displacement{DY: -1}},
		{'S', Displacement{DY: 1}},
		{'E', Displacement{DX: 1}},
		{'W', Displacement{DX: -1}},
	}
	for _, tt := range tests {
		d, ok := ParseDirection(tt.c)
		require.True(t, ok, "%q", tt.c)
		assert.Equal(t, tt.want, d.Unit())
	}
	_, ok := ParseDirection('n')
	assert.False(t, ok)
}

func TestCheckedArithmetic(t *testing.T) {
	d, err := Displacement{DX: 3, DY: -2}.ScaleChecked(9)
	require.NoError(t, err)
	assert.Equal(t, Displacement{DX: 27, DY: -18}, d)

	_, err = Displacement{DX: math.MaxInt64/2 + 1}.ScaleChecked(2)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Displacement{DY: math.MinInt64}.AddChecked(Displacement{DY: -1})
	assert.ErrorIs(t, err, ErrOverflow)

	d, err = Displacement{DX: math.MaxInt64}.AddChecked(Displacement{DX: -1, DY: 4})
	require.NoError(t, err)
	assert.Equal(t, Displacement{DX: math.MaxInt64 - 1, DY: 4}, d)
}
