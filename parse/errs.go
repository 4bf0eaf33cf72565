package parse

import (
	"errors"
	"fmt"

	"github.com/engindearing/pbxgraph/token"
)

var (
	ErrMalformedSection = errors.New("malformed section")
	ErrMalformedRecord  = errors.New("malformed record")
)

// MalformedSectionError: section markers unmatched, absent, or nested.
type MalformedSectionError struct {
	Section string
	Pos     *token.Pos
	Msg     string
}

func (e *MalformedSectionError) Unwrap() error {
	return ErrMalformedSection
}

func (e *MalformedSectionError) Error() string {
	return fmt.Sprintf("%s %q: %s at %s", ErrMalformedSection, e.Section, e.Msg, e.Pos)
}

// MalformedRecordError: a record body that does not match the entry
// grammar of its kind.
type MalformedRecordError struct {
	Section string
	Record  string
	Pos     *token.Pos
	Msg     string
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s %s in section %q: %s at %s",
		ErrMalformedRecord, e.Record, e.Section, e.Msg, e.Pos)
}
