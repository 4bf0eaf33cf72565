package token

import "testing"

func TestNeedsQuote(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Foo.swift", false},
		{"Sources/Foo.swift", false},
		{"snake_case", false},
		{"", true},
		{"<group>", true},
		{"has space", true},
		{"$(inherited)", true},
		{"com.example.app", false},
	}
	for _, tst := range tests {
		if got := NeedsQuote(tst.in); got != tst.want {
			t.Errorf("NeedsQuote(%q) = %v, want %v", tst.in, got, tst.want)
		}
	}
}

func TestQuoteUnquote(t *testing.T) {
	for _, in := range []string{
		"",
		"<group>",
		`say "hi"`,
		`back\slash`,
		"tab\tand\nnewline",
		"$(SRCROOT)/Frameworks",
	} {
		q := Quote(in)
		out, err := Unquote([]byte(q))
		if err != nil {
			t.Fatalf("Unquote(Quote(%q)): %v", in, err)
		}
		if out != in {
			t.Errorf("Unquote(Quote(%q)) = %q", in, out)
		}
	}
}

func TestUnquoteUnknownEscape(t *testing.T) {
	out, err := Unquote([]byte(`"a\qb"`))
	if err != nil {
		t.Fatal(err)
	}
	if out != `a\qb` {
		t.Errorf("got %q, want backslash preserved", out)
	}
}
