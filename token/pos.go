package token

import "fmt"

// Pos locates a token within the document by byte offset and by
// 1-based line and column.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p *Pos) String() string {
	if p == nil {
		return "<no position>"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
