package hilang

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Whole-program tests: realistic hilang sources run end to end through the
// public Run entry point, checked against their full transcripts.

func runProgram(t *testing.T, src, stdin string) string {
	t.Helper()
	ip := NewInterpreter()
	out := &bytes.Buffer{}
	ip.Out = out
	ip.In = strings.NewReader(stdin)
	require.NoError(t, ip.Run(src))
	return out.String()
}

func Test_Program_FizzBuzz(t *testing.T) {
	src := `
"1" -> int -> <i>.store ->
(
    <<i>.load, "30" -> int>.le
    -> (
        <<<i>.load, "15" -> int>.mod, "0" -> int>.eq -> "FizzBuzz" -> output
        | <<<i>.load, "3" -> int>.mod, "0" -> int>.eq -> "Fizz" -> output
        | <<<i>.load, "5" -> int>.mod, "0" -> int>.eq -> "Buzz" -> output
        | <i>.load -> output
    )
    -> <<i>.load, "1" -> int>.add -> <i>.store
).loop | pass
`
	want := strings.Join([]string{
		"1", "2", "Fizz", "4", "Buzz", "Fizz", "7", "8", "Fizz", "Buzz",
		"11", "Fizz", "13", "14", "FizzBuzz", "16", "17", "Fizz", "19", "Buzz",
		"Fizz", "22", "23", "Fizz", "Buzz", "26", "Fizz", "28", "29", "FizzBuzz",
	}, "\n") + "\n"
	assert.Equal(t, want, runProgram(t, src, ""))
}

func Test_Program_EqualityBranching(t *testing.T) {
	src := `
"5" -> int -> <n>.store ->
( <<n>.load, "5" -> int>.eq -> "equal" -> output
| "different" -> output )
`
	assert.Equal(t, "equal\n", runProgram(t, src, ""))
}

func Test_Program_SumOfInputs(t *testing.T) {
	src := `<input -> int, input -> int>.add -> str -> <s>.store -> <s>.load -> output`
	assert.Equal(t, "42\n", runProgram(t, src, "40\n2\n"))
}

func Test_Program_SumToTen(t *testing.T) {
	src := `
"0" -> int -> <sum>.store -> "1" -> int -> <i>.store ->
(
    <<i>.load, "10" -> int>.le
    -> <<sum>.load, <i>.load>.add -> <sum>.store
    -> <<i>.load, "1" -> int>.add -> <i>.store
).loop -> <sum>.load -> output
`
	assert.Equal(t, "55\n", runProgram(t, src, ""))
}

func Test_Program_RejectsMalformedInput(t *testing.T) {
	ip := NewInterpreter()
	out := &bytes.Buffer{}
	ip.Out = out
	ip.In = strings.NewReader("oops\n")
	err := ip.Run(`input -> int -> output`)
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrType, re.Kind)
	assert.Empty(t, out.String())
}
