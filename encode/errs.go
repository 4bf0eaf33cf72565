package encode

import (
	"errors"
	"fmt"
)

var ErrStructuralImbalance = errors.New("structural imbalance")

// StructuralImbalanceError means the rendered text closed a different
// number of braces or parens than it opened. It is always fatal: the
// encoder returns no text alongside it.
type StructuralImbalanceError struct {
	Braces int
	Parens int
}

func (e *StructuralImbalanceError) Unwrap() error {
	return ErrStructuralImbalance
}

func (e *StructuralImbalanceError) Error() string {
	return fmt.Sprintf("%s: brace depth %d, paren depth %d at end of output",
		ErrStructuralImbalance, e.Braces, e.Parens)
}
