package token

import (
	"errors"
	"testing"
)

type tokenizeTest struct {
	in    string
	types []TokenType
	e     error
}

func TestTokenize(t *testing.T) {
	tests := []tokenizeTest{
		{
			in:    `isa = PBXBuildFile;`,
			types: []TokenType{TBare, TEq, TBare, TSemi},
		},
		{
			in:    `path = "Foo Bar.swift";`,
			types: []TokenType{TBare, TEq, TQuoted, TSemi},
		},
		{
			in:    `path = Sources/Foo.swift;`,
			types: []TokenType{TBare, TEq, TBare, TSemi},
		},
		{
			in:    `children = (A1, B2,);`,
			types: []TokenType{TBare, TEq, TLParen, TBare, TComma, TBare, TComma, TRParen, TSemi},
		},
		{
			in:    "// !$*UTF8*$!\n{ }",
			types: []TokenType{TLineComment, TLBrace, TRBrace},
		},
		{
			in:    `AA /* Foo.swift */ = {isa = PBXFileReference;};`,
			types: []TokenType{TBare, TComment, TEq, TLBrace, TBare, TEq, TBare, TSemi, TRBrace, TSemi},
		},
		{
			in: `"unterminated`,
			e:  ErrUnterminatedString,
		},
		{
			in: `/* unterminated`,
			e:  ErrUnterminatedComment,
		},
		{
			in: ``,
			e:  ErrEmptyDoc,
		},
		{
			in: "\x01",
			e:  ErrUnexpectedByte,
		},
	}
	for _, tst := range tests {
		toks, err := Tokenize([]byte(tst.in))
		if tst.e != nil {
			if !errors.Is(err, tst.e) {
				t.Errorf("Tokenize(%q): got error %v, want %v", tst.in, err, tst.e)
			}
			continue
		}
		if err != nil {
			t.Errorf("Tokenize(%q): unexpected error %v", tst.in, err)
			continue
		}
		if len(toks) != len(tst.types) {
			t.Errorf("Tokenize(%q): got %d tokens, want %d", tst.in, len(toks), len(tst.types))
			continue
		}
		for i := range toks {
			if toks[i].Type != tst.types[i] {
				t.Errorf("Tokenize(%q): token %d is %s, want %s",
					tst.in, i, toks[i].Type, tst.types[i])
			}
		}
	}
}

func TestTokenPositions(t *testing.T) {
	toks, err := Tokenize([]byte("{\n\tisa = X;\n}"))
	if err != nil {
		t.Fatal(err)
	}
	isa := toks[1]
	if isa.Pos.Line != 2 || isa.Pos.Col != 2 {
		t.Errorf("isa position: got %s, want 2:2", isa.Pos)
	}
}

func TestCommentBody(t *testing.T) {
	toks, err := Tokenize([]byte(`AA /* Foo.swift in Sources */ = BB;`))
	if err != nil {
		t.Fatal(err)
	}
	if got := toks[1].String(); got != "Foo.swift in Sources" {
		t.Errorf("comment body: got %q", got)
	}
}

func TestBareSlashComment(t *testing.T) {
	// a bare token followed directly by a comment must not swallow the "/*"
	toks, err := Tokenize([]byte(`Foo.swift/* c */`))
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 2 || toks[0].Type != TBare || string(toks[0].Bytes) != "Foo.swift" {
		t.Errorf("got %v", toks)
	}
}
