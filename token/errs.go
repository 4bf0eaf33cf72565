package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrUnterminatedComment = errors.New("unterminated comment")
	ErrBadEscape           = errors.New("bad escape")
	ErrUnexpectedByte      = errors.New("unexpected byte")
	ErrDocBalance          = errors.New("imbalanced document")
	ErrEmptyDoc            = errors.New("empty document")
)

type TokenizeErr struct {
	Err error
	Pos Pos
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Unwrap() error {
	return e.Err
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

// BalanceErr reports a mismatched or unclosed delimiter found by Balance.
type BalanceErr struct {
	Open, Close *Token
}

func (e *BalanceErr) Unwrap() error {
	return ErrDocBalance
}

func (e *BalanceErr) Error() string {
	switch {
	case e.Open == nil:
		return fmt.Sprintf("%s: unopened %q at %s", ErrDocBalance, string(e.Close.Bytes), e.Close.Pos)
	case e.Close == nil:
		return fmt.Sprintf("%s: unclosed %q at %s", ErrDocBalance, string(e.Open.Bytes), e.Open.Pos)
	default:
		return fmt.Sprintf("%s: %q at %s closed by %q at %s",
			ErrDocBalance, string(e.Open.Bytes), e.Open.Pos, string(e.Close.Bytes), e.Close.Pos)
	}
}
