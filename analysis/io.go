package analysis

import (
	"github.com/goccy/go-yaml"
	"github.com/ohler55/ojg/oj"
)

// Decoding always goes through YAML: JSON is a YAML subset, so one
// decode path accepts both artifact encodings.

func DecodeAnalysis(data []byte) (*Analysis, error) {
	var a Analysis
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func DecodeStructure(data []byte) (*Structure, error) {
	var s Structure
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *Analysis) JSON() ([]byte, error) {
	return oj.Marshal(a, 2)
}

func (a *Analysis) YAML() ([]byte, error) {
	return yaml.Marshal(a)
}

func (s *Structure) JSON() ([]byte, error) {
	return oj.Marshal(s, 2)
}

func (s *Structure) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
