package interpreter

import (
	"math/bits"
	"strconv"
	"strings"

	"robotpath/internal/grid"
)

// ErrOverflow is returned by exact evaluation when a displacement does not
// fit in int64.
var ErrOverflow = grid.ErrOverflow

// Node is one element of a parsed movement program.
type Node interface {
	// Eval returns the exact net displacement of the node.
	Eval() (grid.Displacement, error)
	reduce(g grid.Grid) grid.Displacement
	format(b *strings.Builder)
	depth() int
}

// Step is a single direction letter.
type Step struct {
	Dir grid.Direction
}

// Scaled repeats Node Factor times. The parsers only produce factors 2..9.
type Scaled struct {
	Factor int64
	Node   Node
}

// Sequence is one scope: the whole program, or a parenthesised group when
// Group is set.
type Sequence struct {
	Group bool
	Nodes []Node
}

func (s Step) Eval() (grid.Displacement, error) { return s.Dir.Unit(), nil }

func (s Step) reduce(g grid.Grid) grid.Displacement { return g.Reduce(s.Dir.Unit()) }

func (s Step) format(b *strings.Builder) { b.WriteByte(byte(s.Dir)) }

func (s Step) depth() int { return 0 }

func (s *Scaled) Eval() (grid.Displacement, error) {
	d, err := s.Node.Eval()
	if err != nil {
		return grid.Displacement{}, err
	}
	return d.ScaleChecked(s.Factor)
}

func (s *Scaled) reduce(g grid.Grid) grid.Displacement {
	d := s.Node.reduce(g)
	k := grid.Mod(s.Factor, g.Size)
	return grid.Displacement{DX: mulMod(d.DX, k, g.Size), DY: mulMod(d.DY, k, g.Size)}
}

func (s *Scaled) format(b *strings.Builder) {
	b.WriteString(strconv.FormatInt(s.Factor, 10))
	s.Node.format(b)
}

func (s *Scaled) depth() int { return s.Node.depth() }

func (s *Sequence) Eval() (grid.Displacement, error) {
	var total grid.Displacement
	for _, n := range s.Nodes {
		d, err := n.Eval()
		if err != nil {
			return grid.Displacement{}, err
		}
		if total, err = total.AddChecked(d); err != nil {
			return grid.Displacement{}, err
		}
	}
	return total, nil
}

func (s *Sequence) reduce(g grid.Grid) grid.Displacement {
	var total grid.Displacement
	for _, n := range s.Nodes {
		d := n.reduce(g)
		total = grid.Displacement{
			DX: grid.Mod(total.DX+d.DX, g.Size),
			DY: grid.Mod(total.DY+d.DY, g.Size),
		}
	}
	return total
}

func (s *Sequence) format(b *strings.Builder) {
	if s.Group {
		b.WriteByte('(')
	}
	for _, n := range s.Nodes {
		n.format(b)
	}
	if s.Group {
		b.WriteByte(')')
	}
}

func (s *Sequence) depth() int {
	d := 0
	for _, n := range s.Nodes {
		d = max(d, n.depth())
	}
	if s.Group {
		d++
	}
	return d
}

func (s *Sequence) add(factor int64, n Node) {
	if factor != 1 {
		n = &Scaled{Factor: factor, Node: n}
	}
	s.Nodes = append(s.Nodes, n)
}

// Eval returns the exact displacement of n, or ErrOverflow when it does not
// fit in int64.
func Eval(n Node) (grid.Displacement, error) {
	return n.Eval()
}

// EvalOn returns the displacement of n reduced modulo the grid size. It never
// overflows, however deep the program nests.
func EvalOn(g grid.Grid, n Node) grid.Displacement {
	return n.reduce(g)
}

// Depth is the deepest nesting of parenthesised groups in n.
func Depth(n Node) int {
	return n.depth()
}

// Format prints n back as program text. Filler characters and multipliers
// that scaled nothing are gone, everything else round-trips.
func Format(n Node) string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

// mulMod is a*k mod m for a, k in [0, m).
func mulMod(a, k, m int64) int64 {
	hi, lo := bits.Mul64(uint64(a), uint64(k))
	_, rem := bits.Div64(hi, lo, uint64(m))
	return int64(rem)
}
