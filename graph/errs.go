package graph

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID = errors.New("duplicate identifier")
	ErrNoSection   = errors.New("no such section")
)

// DanglingReferenceError reports a reference field pointing at a record
// that does not exist in any section.
type DanglingReferenceError struct {
	From  string // record holding the reference; empty for the root object
	Field string
	To    string
}

func (e *DanglingReferenceError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("dangling root object reference %s", e.To)
	}
	return fmt.Sprintf("dangling reference %s -> %s (field %s)", e.From, e.To, e.Field)
}

// IdentifierCollisionError means the allocator exhausted its retries.
// This indicates a systemic ID-space problem and is fatal.
type IdentifierCollisionError struct {
	Seed    string
	Retries int
}

func (e *IdentifierCollisionError) Error() string {
	if e.Seed != "" {
		return fmt.Sprintf("identifier collision: seed %q exhausted %d retries", e.Seed, e.Retries)
	}
	return fmt.Sprintf("identifier collision: exhausted %d retries", e.Retries)
}
