package ir

import (
	"fmt"
	"sort"
	"strconv"
)

// Any converts the node to plain Go values: string, int64, bool,
// []any, and map[string]any. References convert to their identifier
// string. Labels are dropped; they are presentation, not data.
func (n *Node) Any() any {
	if n == nil {
		return nil
	}
	switch n.Type {
	case StringType:
		return n.String
	case NumberType:
		return n.Int
	case BoolType:
		return n.Bool
	case RefType:
		return n.Ref
	case ArrayType:
		out := make([]any, len(n.Values))
		for i, v := range n.Values {
			out[i] = v.Any()
		}
		return out
	case ObjectType:
		out := make(map[string]any, len(n.Fields))
		for i, f := range n.Fields {
			out[f] = n.Values[i].Any()
		}
		return out
	default:
		return nil
	}
}

// FromAny builds a node from plain decoded values (JSON/YAML shapes).
// Map fields are sorted by key so the result is deterministic
// regardless of map iteration order.
func FromAny(v any) (*Node, error) {
	switch t := v.(type) {
	case string:
		return FromString(t), nil
	case bool:
		return FromBool(t), nil
	case int:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case uint64:
		return FromInt(int64(t)), nil
	case float64:
		if t == float64(int64(t)) {
			return FromInt(int64(t)), nil
		}
		return FromString(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case []any:
		arr := &Node{Type: ArrayType}
		for _, e := range t {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			arr.Append(n)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			n, err := FromAny(t[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, n)
		}
		return obj, nil
	case nil:
		return nil, fmt.Errorf("cannot build a node from nil")
	default:
		return nil, fmt.Errorf("cannot build a node from %T", v)
	}
}
