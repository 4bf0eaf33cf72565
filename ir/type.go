package ir

import "fmt"

type Type int

const (
	StringType Type = iota
	NumberType
	BoolType
	RefType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		StringType: "String",
		NumberType: "Number",
		BoolType:   "Bool",
		RefType:    "Ref",
		ArrayType:  "Array",
		ObjectType: "Object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"String": StringType,
		"Number": NumberType,
		"Bool":   BoolType,
		"Ref":    RefType,
		"Array":  ArrayType,
		"Object": ObjectType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, ObjectType:
		return false
	default:
		return true
	}
}
