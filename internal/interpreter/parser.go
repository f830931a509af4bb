package interpreter

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"robotpath/internal/grid"
)

var (
	ErrMalformed = errors.New("malformed program")
	ErrBadStart  = errors.New("start index outside the program")
)

var programLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Dir", Pattern: `[NSEW]`},
	{Name: "Digit", Pattern: `[2-9]`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "Other", Pattern: `[^NSEW2-9()]`},
})

// The closing parenthesis is optional so an unclosed group runs to the end
// of the input. A ')' with no group to close stops the parse; the lenient
// entry points allow it as trailing input, ParseStrict does not.
type programAST struct {
	Items []*programItem `parser:"@@*"`
}

type programItem struct {
	Digit string        `parser:"  @Digit"`
	Dir   string        `parser:"| @Dir"`
	Group *programGroup `parser:"| @@"`
	Other string        `parser:"| @Other"`
}

type programGroup struct {
	Pos    lexer.Position
	Items  []*programItem `parser:"'(' @@*"`
	Closed bool           `parser:"@')'?"`
}

var programParser = participle.MustBuild[programAST](participle.Lexer(programLexer))

// Scan parses the scope that starts at src[start]. It stops at the ')' that
// closes this scope, or at the end of src, and returns that index together
// with the parsed tree. A start outside [0, len(src)] is clamped into it.
func Scan(src string, start int) (*Sequence, int) {
	start = min(max(start, 0), len(src))
	rest := src[start:]
	if rest == "" || rest[0] == ')' {
		return &Sequence{}, start
	}
	prog, err := programParser.ParseString("program", rest, participle.AllowTrailing(true))
	if err != nil {
		// every byte lexes and the grammar stops before anything it cannot take
		return &Sequence{}, start
	}
	return build(prog.Items, false), start + width(prog.Items)
}

// Parse parses a whole program. A stray ')' at the top level ends the
// program; an unclosed '(' runs to the end of the string.
func Parse(src string) *Sequence {
	seq, _ := Scan(src, 0)
	return seq
}

// Evaluate scans the scope starting at src[start] and returns its exact net
// displacement and the index where the scope ended. start must be in
// [0, len(src)].
func Evaluate(src string, start int) (grid.Displacement, int, error) {
	if start < 0 || start > len(src) {
		return grid.Displacement{}, start, fmt.Errorf("%w: %d not in [0, %d]", ErrBadStart, start, len(src))
	}
	seq, end := Scan(src, start)
	d, err := seq.Eval()
	if err != nil {
		return grid.Displacement{}, end, err
	}
	return d, end, nil
}

// ParseStrict parses src and fails with ErrMalformed on unbalanced
// parentheses. For well-formed programs the tree is the same as Parse's.
func ParseStrict(src string) (*Sequence, error) {
	if src == "" {
		return &Sequence{}, nil
	}
	if src[0] == ')' {
		return nil, fmt.Errorf("%w at offset 0: unexpected \")\"", ErrMalformed)
	}
	prog, err := programParser.ParseString("program", src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%w at offset %d: %s", ErrMalformed, perr.Position().Offset, perr.Message())
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if g := unclosed(prog.Items); g != nil {
		return nil, fmt.Errorf("%w at offset %d: unclosed \"(\"", ErrMalformed, g.Pos.Offset)
	}
	return build(prog.Items, false), nil
}

func build(items []*programItem, group bool) *Sequence {
	seq := &Sequence{Group: group}
	factor := int64(1)
	for _, it := range items {
		switch {
		case it.Group != nil:
			seq.add(factor, build(it.Group.Items, true))
			factor = 1
		case it.Digit != "":
			// a later digit overwrites an earlier one
			factor = int64(it.Digit[0] - '0')
		case it.Dir != "":
			d, _ := grid.ParseDirection(it.Dir[0])
			seq.add(factor, Step{Dir: d})
			factor = 1
		default:
			factor = 1
		}
	}
	return seq
}

// width is the number of source bytes the items were parsed from.
func width(items []*programItem) int {
	n := 0
	for _, it := range items {
		switch {
		case it.Group != nil:
			n += 1 + width(it.Group.Items)
			if it.Group.Closed {
				n++
			}
		default:
			n += len(it.Digit) + len(it.Dir) + len(it.Other)
		}
	}
	return n
}

// unclosed returns the outermost group missing its ')'.
func unclosed(items []*programItem) *programGroup {
	for _, it := range items {
		if it.Group == nil {
			continue
		}
		if !it.Group.Closed {
			return it.Group
		}
		if g := unclosed(it.Group.Items); g != nil {
			return g
		}
	}
	return nil
}
