package token

// Balance checks that every brace and paren in the token stream nests
// correctly. It returns the stream unchanged on success so callers can
// chain it after Tokenize.
func Balance(toks []Token) ([]Token, error) {
	var stack []*Token
	for i := range toks {
		t := &toks[i]
		switch t.Type {
		case TLBrace, TLParen:
			stack = append(stack, t)
		case TRBrace, TRParen:
			if len(stack) == 0 {
				return nil, &BalanceErr{Close: t}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !matches(open.Type, t.Type) {
				return nil, &BalanceErr{Open: open, Close: t}
			}
		}
	}
	if len(stack) != 0 {
		return nil, &BalanceErr{Open: stack[len(stack)-1]}
	}
	return toks, nil
}

func matches(open, close TokenType) bool {
	switch open {
	case TLBrace:
		return close == TRBrace
	case TLParen:
		return close == TRParen
	}
	return false
}

// CountDelims counts braces and parens in raw text, skipping quoted
// strings and comments. Usable on malformed documents: an unterminated
// string or comment swallows the rest of the input, which still reports
// the imbalance the caller is looking for.
func CountDelims(d []byte) (braces, parens int) {
	i := 0
	for i < len(d) {
		switch c := d[i]; {
		case c == '"':
			i++
			for i < len(d) {
				if d[i] == '\\' && i+1 < len(d) {
					i += 2
					continue
				}
				if d[i] == '"' {
					i++
					break
				}
				i++
			}
		case c == '/' && i+1 < len(d) && d[i+1] == '*':
			i += 2
			for i+1 < len(d) && !(d[i] == '*' && d[i+1] == '/') {
				i++
			}
			i += 2
		case c == '/' && i+1 < len(d) && d[i+1] == '/':
			for i < len(d) && d[i] != '\n' {
				i++
			}
		case c == '{':
			braces++
			i++
		case c == '}':
			braces--
			i++
		case c == '(':
			parens++
			i++
		case c == ')':
			parens--
			i++
		default:
			i++
		}
	}
	return braces, parens
}
