package hilang

import "testing"

func Test_FormatValue_Plain(t *testing.T) {
	cases := []struct {
		in   Value
		want string
	}{
		{Unit, "()"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(42), "42"},
		{Int(-7), "-7"},
		{Str("hi"), `"hi"`},
		{Str("a\nb"), `"a\nb"`},
		{Tup(Int(1), Str("x")), `<1, "x">`},
		{Tup(Tup(Int(1), Int(2)), Unit), `<<1, 2>, ()>`},
	}
	for _, c := range cases {
		if got := FormatValue(c.in); got != c.want {
			t.Errorf("FormatValue(%#v): got %q, want %q", c.in, got, c.want)
		}
	}
}

func Test_FormatValue_Color(t *testing.T) {
	EnableColor = true
	defer func() { EnableColor = false }()
	if got := FormatValue(Int(5)); got != "\033[34m5\033[0m" {
		t.Errorf("colored integer: got %q", got)
	}
	if got := FormatValue(Str("a")); got != "\033[32m\"a\"\033[0m" {
		t.Errorf("colored text: got %q", got)
	}
}
