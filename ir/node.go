// Package ir holds the in-memory value representation for record fields:
// scalar strings, numbers, booleans, identifier references, ordered
// arrays, and ordered field mappings. Inline comment labels live on the
// node that carried them but are cosmetic only; equality ignores them.
package ir

import (
	"slices"
	"strconv"
)

// Node is one field value. Scalars use the payload matching Type;
// ArrayType uses Values; ObjectType uses the parallel Fields/Values
// slices, which preserve field order.
type Node struct {
	Type Type

	String string
	Int    int64
	Bool   bool
	Ref    string

	Fields []string
	Values []*Node

	// Label is the inline comment annotation seen next to this value in
	// the source text. Cosmetic: the serializer regenerates labels from
	// live records and never copies this verbatim.
	Label string
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int: v}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromRef(id string) *Node {
	return &Node{Type: RefType, Ref: id}
}

func FromSlice(vs []*Node) *Node {
	return &Node{Type: ArrayType, Values: vs}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

// Get returns the value of field, or nil. Only meaningful on objects.
func (n *Node) Get(field string) *Node {
	for i := range n.Fields {
		if n.Fields[i] == field {
			return n.Values[i]
		}
	}
	return nil
}

// Set replaces the value of field, appending the field if absent.
func (n *Node) Set(field string, v *Node) *Node {
	for i := range n.Fields {
		if n.Fields[i] == field {
			n.Values[i] = v
			return n
		}
	}
	n.Fields = append(n.Fields, field)
	n.Values = append(n.Values, v)
	return n
}

// Delete removes field and reports whether it was present.
func (n *Node) Delete(field string) bool {
	for i := range n.Fields {
		if n.Fields[i] == field {
			n.Fields = slices.Delete(n.Fields, i, i+1)
			n.Values = slices.Delete(n.Values, i, i+1)
			return true
		}
	}
	return false
}

// Append adds v to an array node.
func (n *Node) Append(v *Node) *Node {
	n.Values = append(n.Values, v)
	return n
}

func (n *Node) WithLabel(label string) *Node {
	n.Label = label
	return n
}

// Scalar renders a leaf node as its plain string form, the way the
// dialect writes it before quoting.
func (n *Node) Scalar() string {
	switch n.Type {
	case StringType:
		return n.String
	case NumberType:
		return strconv.FormatInt(n.Int, 10)
	case BoolType:
		if n.Bool {
			return "YES"
		}
		return "NO"
	case RefType:
		return n.Ref
	default:
		return ""
	}
}

func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	dst := &Node{
		Type:   n.Type,
		String: n.String,
		Int:    n.Int,
		Bool:   n.Bool,
		Ref:    n.Ref,
		Label:  n.Label,
	}
	if n.Fields != nil {
		dst.Fields = slices.Clone(n.Fields)
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

// Visit walks the node tree pre-order. Returning false from f stops the
// descent below that node.
func (n *Node) Visit(f func(n *Node) bool) {
	if !f(n) {
		return
	}
	for _, v := range n.Values {
		v.Visit(f)
	}
}

// Refs collects every identifier referenced beneath n, in document order.
func (n *Node) Refs() []string {
	var ids []string
	n.Visit(func(v *Node) bool {
		if v.Type == RefType {
			ids = append(ids, v.Ref)
		}
		return true
	})
	return ids
}
