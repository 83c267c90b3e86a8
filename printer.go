// printer.go — value formatting for the REPL echo.
package hilang

import (
	"fmt"
	"strconv"
)

// EnableColor turns on ANSI coloring in FormatValue. REPL-only; tests and the
// run subcommand leave it false.
var EnableColor = false

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorBlue  = "\033[34m"
)

func colorize(s, c string) string {
	if !EnableColor {
		return s
	}
	return c + s + colorReset
}

// FormatValue renders a value the way the REPL echoes results: integers and
// booleans plainly, text quoted, tuples in angle brackets, unit as "()".
// Unlike the output stage, every value kind has a rendering here.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTUnit:
		return colorize("()", colorGreen)
	case VTBool:
		return colorize(strconv.FormatBool(v.Data.(bool)), colorBlue)
	case VTInt:
		return colorize(strconv.FormatInt(v.Data.(int64), 10), colorBlue)
	case VTStr:
		return colorize(strconv.Quote(v.Data.(string)), colorGreen)
	case VTTuple:
		t := v.Data.(*TupleObject)
		return fmt.Sprintf("<%s, %s>", FormatValue(t.Left), FormatValue(t.Right))
	default:
		return "<unknown>"
	}
}
