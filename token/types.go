package token

import "fmt"

type TokenType int

const (
	TBare TokenType = iota
	TQuoted
	TComment
	TLineComment
	TLBrace
	TRBrace
	TLParen
	TRParen
	TSemi
	TEq
	TComma
)

func (t TokenType) String() string {
	s, ok := map[TokenType]string{
		TBare:        "TBare",
		TQuoted:      "TQuoted",
		TComment:     "TComment",
		TLineComment: "TLineComment",
		TLBrace:      "TLBrace",
		TRBrace:      "TRBrace",
		TLParen:      "TLParen",
		TRParen:      "TRParen",
		TSemi:        "TSemi",
		TEq:          "TEq",
		TComma:       "TComma",
	}[t]
	if ok {
		return s
	}
	return "<unknown token type>"
}

// IsComment reports whether the token is cosmetic annotation rather
// than document structure.
func (t TokenType) IsComment() bool {
	return t == TComment || t == TLineComment
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

// String returns the decoded text of the token. For TQuoted it is the
// unquoted, unescaped value; for TComment it is the trimmed comment body.
func (t *Token) String() string {
	switch t.Type {
	case TQuoted:
		s, err := Unquote(t.Bytes)
		if err != nil {
			return string(t.Bytes)
		}
		return s
	case TComment:
		return commentBody(t.Bytes)
	default:
		return string(t.Bytes)
	}
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %q %s", t.Type, string(t.Bytes), t.Pos)
}
