package grid

import (
	"errors"
	"fmt"
	"math"
)

// DefaultSize is the side of the grid the robot walks on.
const DefaultSize int64 = 1_000_000_000

// MaxSize keeps ten times the size inside int64, which is what reduced
// evaluation needs for a scaled scope plus an accumulator.
const MaxSize int64 = 1 << 59

var (
	ErrGridSize   = errors.New("grid size out of range")
	ErrOutOfRange = errors.New("position outside the grid")
	ErrOverflow   = errors.New("displacement overflows int64")
)

// Direction is a unit step along one axis.
type Direction byte

const (
	North Direction = 'N'
	South Direction = 'S'
	East  Direction = 'E'
	West  Direction = 'W'
)

// ParseDirection maps a program byte to a direction.
func ParseDirection(c byte) (Direction, bool) {
	switch Direction(c) {
	case North, South, East, West:
		return Direction(c), true
	}
	return 0, false
}

// Unit returns the displacement of a single step. South and East are positive.
func (d Direction) Unit() Displacement {
	switch d {
	case North:
		return Displacement{DY: -1}
	case South:
		return Displacement{DY: 1}
	case East:
		return Displacement{DX: 1}
	case West:
		return Displacement{DX: -1}
	}
	return Displacement{}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	}
	return fmt.Sprintf("Direction(%q)", byte(d))
}

// Displacement is a net motion, not yet applied to a position.
type Displacement struct {
	DX, DY int64
}

// AddChecked adds o, reporting ErrOverflow instead of wrapping.
func (d Displacement) AddChecked(o Displacement) (Displacement, error) {
	dx, ok1 := addInt64(d.DX, o.DX)
	dy, ok2 := addInt64(d.DY, o.DY)
	if !ok1 || !ok2 {
		return Displacement{}, ErrOverflow
	}
	return Displacement{DX: dx, DY: dy}, nil
}

// ScaleChecked multiplies by k, reporting ErrOverflow instead of wrapping.
func (d Displacement) ScaleChecked(k int64) (Displacement, error) {
	dx, ok1 := mulInt64(d.DX, k)
	dy, ok2 := mulInt64(d.DY, k)
	if !ok1 || !ok2 {
		return Displacement{}, ErrOverflow
	}
	return Displacement{DX: dx, DY: dy}, nil
}

func (d Displacement) String() string {
	return fmt.Sprintf("(%d,%d)", d.DX, d.DY)
}

func addInt64(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

func mulInt64(a, k int64) (int64, bool) {
	if a == 0 || k == 0 {
		return 0, true
	}
	if (a == -1 && k == math.MinInt64) || (k == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * k
	if p/k != a {
		return 0, false
	}
	return p, true
}

// Position is a 1-based cell of the grid.
type Position struct {
	X, Y int64
}

// Start is where every case begins unless configured otherwise.
var Start = Position{X: 1, Y: 1}

func (p Position) String() string {
	return fmt.Sprintf("%d %d", p.X, p.Y)
}

// Mod is the mathematical modulo: the result is always in [0, m).
func Mod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// Grid is an M×M torus with coordinates 1..M on both axes.
type Grid struct {
	Size int64
}

func New(size int64) (Grid, error) {
	if size <= 0 || size > MaxSize {
		return Grid{}, fmt.Errorf("%w: %d", ErrGridSize, size)
	}
	return Grid{Size: size}, nil
}

// Wrap folds any coordinate back into 1..M.
func (g Grid) Wrap(c int64) int64 {
	return Mod(Mod(c, g.Size)-1, g.Size) + 1
}

func (g Grid) Contains(p Position) bool {
	return p.X >= 1 && p.X <= g.Size && p.Y >= 1 && p.Y <= g.Size
}

// Check returns ErrOutOfRange when p is not a cell of g.
func (g Grid) Check(p Position) error {
	if !g.Contains(p) {
		return fmt.Errorf("%w: (%s) on %dx%d", ErrOutOfRange, p, g.Size, g.Size)
	}
	return nil
}

// Reduce maps both components into [0, M). Applying the reduced
// displacement lands on the same cell as applying the original one.
func (g Grid) Reduce(d Displacement) Displacement {
	return Displacement{DX: Mod(d.DX, g.Size), DY: Mod(d.DY, g.Size)}
}

// Advance moves p by d and wraps around the torus. p must be on the grid.
func (g Grid) Advance(p Position, d Displacement) Position {
	return Position{
		X: g.advance(p.X, d.DX),
		Y: g.advance(p.Y, d.DY),
	}
}

func (g Grid) advance(c, delta int64) int64 {
	return g.Wrap(c + Mod(delta, g.Size))
}
