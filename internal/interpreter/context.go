package interpreter

import "robotpath/internal/grid"

// Context stores the grid and the robot of one case

type Context struct {
	Grid  grid.Grid
	Robot *Robot
}

func NewContext(g grid.Grid, start grid.Position) (*Context, error) {
	if err := g.Check(start); err != nil {
		return nil, err
	}
	return &Context{Grid: g, Robot: NewRobot(start)}, nil
}

// Exec moves the robot by the whole program in one step.
func (s *Sequence) Exec(ctx *Context) {
	ctx.Robot.Move(ctx.Grid, EvalOn(ctx.Grid, s))
}
