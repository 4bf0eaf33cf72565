// Package validate checks a document, or the raw text it came from,
// against the structural rules consuming editors enforce: required
// sections, per-kind required fields, delimiter balance, resolvable
// references, and any configured critical settings or rule expressions.
// Findings are collected into a Report rather than returned as errors;
// a blocking issue means the document would not load, an advisory one
// means it would load but look wrong.
package validate

import "fmt"

type IssueKind int

const (
	MissingSection IssueKind = iota
	MissingField
	StructuralImbalance
	MissingCriticalValue
	DanglingReference
	MalformedSection
	MalformedRecord
	RuleViolation
	RuleError
)

var issueKindNames = map[IssueKind]string{
	MissingSection:       "missing-section",
	MissingField:         "missing-field",
	StructuralImbalance:  "structural-imbalance",
	MissingCriticalValue: "missing-critical-value",
	DanglingReference:    "dangling-reference",
	MalformedSection:     "malformed-section",
	MalformedRecord:      "malformed-record",
	RuleViolation:        "rule-violation",
	RuleError:            "rule-error",
}

func (k IssueKind) String() string {
	if n, ok := issueKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("issue(%d)", int(k))
}

// Issue is one finding. Section, Record, and Field narrow it down as
// far as the check allows; any of them may be empty.
type Issue struct {
	Kind     IssueKind
	Section  string
	Record   string
	Field    string
	Msg      string
	Blocking bool
}

func (i Issue) String() string {
	sev := "warning"
	if i.Blocking {
		sev = "error"
	}
	where := i.Section
	if i.Record != "" {
		where += "/" + i.Record
	}
	if i.Field != "" {
		where += "." + i.Field
	}
	if where == "" {
		return fmt.Sprintf("%s: %s: %s", sev, i.Kind, i.Msg)
	}
	return fmt.Sprintf("%s: %s: %s: %s", sev, i.Kind, where, i.Msg)
}

// Report is the outcome of one validation run.
type Report struct {
	Issues []Issue
}

// OK reports whether the document would load: advisory issues are
// allowed, blocking ones are not.
func (r *Report) OK() bool {
	for _, i := range r.Issues {
		if i.Blocking {
			return false
		}
	}
	return true
}

func (r *Report) Blocking() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Blocking {
			out = append(out, i)
		}
	}
	return out
}

func (r *Report) Advisory() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if !i.Blocking {
			out = append(out, i)
		}
	}
	return out
}

func (r *Report) add(i Issue) {
	r.Issues = append(r.Issues, i)
}
