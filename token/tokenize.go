package token

import "bytes"

type scanner struct {
	d    []byte
	i    int
	line int
	col  int
}

func (s *scanner) pos() *Pos {
	return &Pos{Offset: s.i, Line: s.line, Col: s.col}
}

func (s *scanner) peek() byte {
	if s.i >= len(s.d) {
		return 0
	}
	return s.d[s.i]
}

func (s *scanner) peekAt(off int) byte {
	if s.i+off >= len(s.d) {
		return 0
	}
	return s.d[s.i+off]
}

func (s *scanner) advance() byte {
	c := s.d[s.i]
	s.i++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

// Tokenize scans the whole document into a token stream, comments
// included. It fails on unterminated strings or comments; delimiter
// mismatches are left to Balance.
func Tokenize(d []byte) ([]Token, error) {
	s := &scanner{d: d, line: 1, col: 1}
	var toks []Token
	for s.i < len(s.d) {
		c := s.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.advance()
		case c == '{':
			toks = appendByteToken(toks, s, TLBrace)
		case c == '}':
			toks = appendByteToken(toks, s, TRBrace)
		case c == '(':
			toks = appendByteToken(toks, s, TLParen)
		case c == ')':
			toks = appendByteToken(toks, s, TRParen)
		case c == ';':
			toks = appendByteToken(toks, s, TSemi)
		case c == '=':
			toks = appendByteToken(toks, s, TEq)
		case c == ',':
			toks = appendByteToken(toks, s, TComma)
		case c == '"':
			tok, err := s.quoted()
			if err != nil {
				return nil, err
			}
			toks = append(toks, *tok)
		case c == '/' && s.peekAt(1) == '*':
			tok, err := s.blockComment()
			if err != nil {
				return nil, err
			}
			toks = append(toks, *tok)
		case c == '/' && s.peekAt(1) == '/':
			toks = append(toks, *s.lineComment())
		case isBare(c):
			toks = append(toks, *s.bare())
		default:
			return nil, NewTokenizeErr(ErrUnexpectedByte, s.pos())
		}
	}
	if len(toks) == 0 {
		return nil, NewTokenizeErr(ErrEmptyDoc, s.pos())
	}
	return toks, nil
}

func appendByteToken(toks []Token, s *scanner, tt TokenType) []Token {
	pos := s.pos()
	start := s.i
	s.advance()
	return append(toks, Token{Type: tt, Pos: pos, Bytes: s.d[start:s.i]})
}

func (s *scanner) quoted() (*Token, error) {
	pos := s.pos()
	start := s.i
	s.advance() // opening quote
	for s.i < len(s.d) {
		c := s.advance()
		switch c {
		case '\\':
			if s.i >= len(s.d) {
				return nil, NewTokenizeErr(ErrBadEscape, s.pos())
			}
			s.advance()
		case '"':
			return &Token{Type: TQuoted, Pos: pos, Bytes: s.d[start:s.i]}, nil
		}
	}
	return nil, NewTokenizeErr(ErrUnterminatedString, pos)
}

func (s *scanner) blockComment() (*Token, error) {
	pos := s.pos()
	start := s.i
	s.advance() // '/'
	s.advance() // '*'
	for s.i < len(s.d) {
		if s.peek() == '*' && s.peekAt(1) == '/' {
			s.advance()
			s.advance()
			return &Token{Type: TComment, Pos: pos, Bytes: s.d[start:s.i]}, nil
		}
		s.advance()
	}
	return nil, NewTokenizeErr(ErrUnterminatedComment, pos)
}

func (s *scanner) lineComment() *Token {
	pos := s.pos()
	start := s.i
	for s.i < len(s.d) && s.peek() != '\n' {
		s.advance()
	}
	return &Token{Type: TLineComment, Pos: pos, Bytes: s.d[start:s.i]}
}

// bare scans an unquoted scalar. '/' is legal inside bare tokens (file
// paths) but a following '*' or '/' starts a comment, so the scan stops
// before it.
func (s *scanner) bare() *Token {
	pos := s.pos()
	start := s.i
	for s.i < len(s.d) {
		c := s.peek()
		if c == '/' && (s.peekAt(1) == '*' || s.peekAt(1) == '/') {
			break
		}
		if !isBare(c) {
			break
		}
		s.advance()
	}
	return &Token{Type: TBare, Pos: pos, Bytes: s.d[start:s.i]}
}

// isBare is deliberately wider on input than the emitter's safe set:
// the parser accepts bare tokens the emitter would quote.
func isBare(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '.', '_', '/', '$', '-', '+', '@':
		return true
	}
	return false
}

func commentBody(d []byte) string {
	d = bytes.TrimPrefix(d, []byte("/*"))
	d = bytes.TrimSuffix(d, []byte("*/"))
	return string(bytes.TrimSpace(d))
}
