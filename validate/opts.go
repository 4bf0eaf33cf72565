package validate

import "github.com/engindearing/pbxgraph/graph"

// DefaultRequiredSections are the sections a loadable project cannot do
// without. Frameworks and resources phases are genuinely optional.
var DefaultRequiredSections = []string{
	graph.KindBuildFile,
	graph.KindFileReference,
	graph.KindGroup,
	graph.KindNativeTarget,
	graph.KindProject,
	graph.KindSourcesBuildPhase,
	graph.KindBuildConfiguration,
}

type criticalValue struct {
	field string
	value string
}

type rule struct {
	name string
	src  string
}

type validator struct {
	required []string
	critical []criticalValue
	rules    []rule
}

type Option func(*validator)

func newValidator(opts []Option) *validator {
	v := &validator{required: DefaultRequiredSections}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithRequiredSections replaces the default required-section list.
func WithRequiredSections(kinds ...string) Option {
	return func(v *validator) { v.required = kinds }
}

// WithCriticalValue requires at least one build configuration to carry
// field with exactly this value. Missing it is blocking.
func WithCriticalValue(field, value string) Option {
	return func(v *validator) {
		v.critical = append(v.critical, criticalValue{field: field, value: value})
	}
}

// WithRule adds a named expression evaluated against every build
// configuration. The expression sees `name` and the `settings` mapping
// and must yield a boolean; false is advisory, a compile or evaluation
// failure is blocking.
func WithRule(name, src string) Option {
	return func(v *validator) {
		v.rules = append(v.rules, rule{name: name, src: src})
	}
}
