package interpreter

import (
	"bufio"
	"fmt"
	"io"
)

// FormatResult renders one answer line without the newline.
func FormatResult(res Result) string {
	return fmt.Sprintf("Case #%d: %d %d", res.Index, res.Position.X, res.Position.Y)
}

// WriteResults prints every result in the order given.
func WriteResults(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	for _, res := range results {
		if _, err := fmt.Fprintln(bw, FormatResult(res)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
