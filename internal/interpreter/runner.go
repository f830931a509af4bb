package interpreter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"robotpath/internal/grid"
)

// Observer receives one call per evaluated or rejected case. Calls may come
// from several goroutines at once.
type Observer interface {
	CaseEvaluated(programLen, depth int, elapsed time.Duration)
	CaseFailed(reason string)
}

// Result is the outcome of one case.
type Result struct {
	Index        int
	Program      string
	Displacement grid.Displacement
	// Reduced is set when the exact displacement overflowed int64 and
	// Displacement holds its value modulo the grid size instead.
	Reduced  bool
	Position grid.Position
	Depth    int
}

// Runner evaluates batches of cases. The zero Workers value runs them one
// after another.
type Runner struct {
	Grid     grid.Grid
	Start    grid.Position
	Strict   bool
	Workers  int
	DumpAST  bool
	Logger   *slog.Logger
	Observer Observer
}

// Run evaluates every case from the same start position and returns the
// results in input order. In strict mode the first malformed program stops
// the batch.
func (r *Runner) Run(ctx context.Context, cases []Case) ([]Result, error) {
	if err := r.Grid.Check(r.Start); err != nil {
		return nil, err
	}
	log := r.logger()
	began := time.Now()

	results := make([]Result, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Workers))
	for i, c := range cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.RunCase(c)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("batch evaluated", "cases", len(cases), "workers", max(1, r.Workers), "elapsed", time.Since(began))
	return results, nil
}

// RunCase parses and evaluates a single case on a fresh robot.
func (r *Runner) RunCase(c Case) (Result, error) {
	log := r.logger()
	began := time.Now()

	seq, err := r.parse(c.Program)
	if err != nil {
		r.failed("malformed")
		return Result{}, fmt.Errorf("case #%d: %w", c.Index, err)
	}
	ctx, err := NewContext(r.Grid, r.Start)
	if err != nil {
		r.failed("start")
		return Result{}, fmt.Errorf("case #%d: %w", c.Index, err)
	}
	seq.Exec(ctx)

	res := Result{
		Index:    c.Index,
		Program:  c.Program,
		Position: ctx.Robot.Position(),
		Depth:    Depth(seq),
	}
	res.Displacement, err = seq.Eval()
	if errors.Is(err, grid.ErrOverflow) {
		res.Displacement = EvalOn(r.Grid, seq)
		res.Reduced = true
		log.Debug("displacement overflows int64, keeping it modulo grid size", "case", c.Index)
	}

	if r.DumpAST {
		log.Info("parsed program", "case", c.Index, "tree", Format(seq))
	}
	log.Debug("case evaluated",
		"case", c.Index,
		"depth", res.Depth,
		"dx", res.Displacement.DX,
		"dy", res.Displacement.DY,
		"position", res.Position.String(),
	)
	if r.Observer != nil {
		r.Observer.CaseEvaluated(len(c.Program), res.Depth, time.Since(began))
	}
	return res, nil
}

func (r *Runner) parse(src string) (*Sequence, error) {
	if r.Strict {
		return ParseStrict(src)
	}
	return Parse(src), nil
}

func (r *Runner) failed(reason string) {
	if r.Observer != nil {
		r.Observer.CaseFailed(reason)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
