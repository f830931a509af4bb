package interpreter

import (
	"fmt"

	"robotpath/internal/grid"
)

// Robot is the walker on the torus.

type Robot struct {
	Pos grid.Position
}

func NewRobot(start grid.Position) *Robot {
	return &Robot{Pos: start}
}

func (r *Robot) Move(g grid.Grid, d grid.Displacement) {
	r.Pos = g.Advance(r.Pos, d)
}

func (r *Robot) Position() grid.Position {
	return r.Pos
}

func (r *Robot) String() string {
	return fmt.Sprintf("(%d,%d)", r.Pos.X, r.Pos.Y)
}
