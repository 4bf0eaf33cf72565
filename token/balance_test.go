package token

import (
	"errors"
	"testing"
)

func TestBalanceOK(t *testing.T) {
	for _, in := range []string{
		`{ a = (1, 2); b = { c = d; }; }`,
		`( ( ) )`,
		`a = b`,
	} {
		toks, err := Tokenize([]byte(in))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Balance(toks); err != nil {
			t.Errorf("Balance(%q): %v", in, err)
		}
	}
}

func TestBalanceErrs(t *testing.T) {
	for _, in := range []string{
		`{ a = b;`,
		`a = b; }`,
		`{ a = ( b; }`,
		`( }`,
	} {
		toks, err := Tokenize([]byte(in))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Balance(toks); !errors.Is(err, ErrDocBalance) {
			t.Errorf("Balance(%q): got %v, want ErrDocBalance", in, err)
		}
	}
}

func TestCountDelims(t *testing.T) {
	tests := []struct {
		in             string
		braces, parens int
	}{
		{`{ ( ) }`, 0, 0},
		{`{ {`, 2, 0},
		{`) }`, -1, -1},
		{`"{ (" /* ) */`, 0, 0},
		{`x = "$(inherited)";`, 0, 0},
	}
	for _, tst := range tests {
		b, p := CountDelims([]byte(tst.in))
		if b != tst.braces || p != tst.parens {
			t.Errorf("CountDelims(%q) = (%d, %d), want (%d, %d)",
				tst.in, b, p, tst.braces, tst.parens)
		}
	}
}
