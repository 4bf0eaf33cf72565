package ir

// Equal reports structural equality of two nodes. Labels are cosmetic
// and do not participate.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case StringType:
		return a.String == b.String
	case NumberType:
		return a.Int == b.Int
	case BoolType:
		return a.Bool == b.Bool
	case RefType:
		return a.Ref == b.Ref
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i] != b.Fields[i] {
				return false
			}
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	}
	return false
}
