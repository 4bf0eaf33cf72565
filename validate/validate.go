package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/engindearing/pbxgraph/debug"
	"github.com/engindearing/pbxgraph/graph"
	"github.com/engindearing/pbxgraph/parse"
	"github.com/engindearing/pbxgraph/token"
)

// Validate checks raw document text. Textual checks (section markers,
// delimiter counts) run first so they still report on text the parser
// rejects; graph-level checks run only when the text parses.
func Validate(data []byte, opts ...Option) *Report {
	v := newValidator(opts)
	rep := &Report{}

	v.checkMarkers(data, rep)
	v.checkDelims(data, rep)

	doc, err := parse.Parse(data)
	if err != nil {
		rep.add(parseIssue(err))
		if debug.Validate() {
			debug.Logf("validate: parse failed, skipping graph checks: %v", err)
		}
		return rep
	}
	v.checkDocument(doc, rep)
	return rep
}

// Document checks an already-parsed document. Textual checks are
// skipped; the encoder guarantees them for anything it emits.
func Document(doc *graph.Document, opts ...Option) *Report {
	v := newValidator(opts)
	rep := &Report{}
	v.checkDocument(doc, rep)
	return rep
}

// checkMarkers looks for the required "/* Begin X section */" markers
// in the raw text. Running on text rather than the parse result means a
// section that is present but empty still counts.
func (v *validator) checkMarkers(data []byte, rep *Report) {
	text := string(data)
	for _, kind := range v.required {
		if !strings.Contains(text, "/* Begin "+kind+" section */") {
			rep.add(Issue{
				Kind:     MissingSection,
				Section:  kind,
				Msg:      "required section marker not found",
				Blocking: true,
			})
		}
	}
}

func (v *validator) checkDelims(data []byte, rep *Report) {
	braces, parens := token.CountDelims(data)
	if braces != 0 {
		rep.add(Issue{
			Kind:     StructuralImbalance,
			Msg:      fmt.Sprintf("brace count off by %d", braces),
			Blocking: true,
		})
	}
	if parens != 0 {
		rep.add(Issue{
			Kind:     StructuralImbalance,
			Msg:      fmt.Sprintf("paren count off by %d", parens),
			Blocking: true,
		})
	}
}

func (v *validator) checkDocument(doc *graph.Document, rep *Report) {
	v.checkFields(doc, rep)
	v.checkDangling(doc, rep)
	v.checkCritical(doc, rep)
	v.evalRules(doc, rep)
	if debug.Validate() {
		debug.Logf("validate: %d issues, %d blocking", len(rep.Issues), len(rep.Blocking()))
	}
}

// checkFields enforces per-kind field presence: required fields are
// blocking, expected ones advisory. An expected entry may list
// alternatives separated by '|'; any one of them satisfies it.
func (v *validator) checkFields(doc *graph.Document, rep *Report) {
	for _, s := range doc.Sections() {
		required := graph.RequiredFields[s.Name]
		expected := graph.ExpectedFields[s.Name]
		for _, rec := range s.Records {
			for _, f := range required {
				if !hasField(rec, f) {
					rep.add(Issue{
						Kind:     MissingField,
						Section:  s.Name,
						Record:   rec.ID,
						Field:    f,
						Msg:      "required field missing",
						Blocking: true,
					})
				}
			}
			for _, f := range expected {
				if !hasField(rec, f) {
					rep.add(Issue{
						Kind:    MissingField,
						Section: s.Name,
						Record:  rec.ID,
						Field:   f,
						Msg:     "expected field missing",
					})
				}
			}
		}
	}
}

func hasField(rec *graph.Record, spec string) bool {
	for _, f := range strings.Split(spec, "|") {
		if rec.Get(f) != nil {
			return true
		}
	}
	return false
}

func (v *validator) checkDangling(doc *graph.Document, rep *Report) {
	for _, d := range doc.Dangling() {
		rep.add(Issue{
			Kind:     DanglingReference,
			Record:   d.From,
			Field:    d.Field,
			Msg:      d.Error(),
			Blocking: true,
		})
	}
}

// checkCritical requires each configured field=value pair to appear in
// at least one build configuration's settings.
func (v *validator) checkCritical(doc *graph.Document, rep *Report) {
	if len(v.critical) == 0 {
		return
	}
	s := doc.Section(graph.KindBuildConfiguration)
	for _, cv := range v.critical {
		found := false
		if s != nil {
			for _, rec := range s.Records {
				settings := rec.Get("buildSettings")
				if settings == nil {
					continue
				}
				if got := settings.Get(cv.field); got != nil && got.Type.IsLeaf() && got.Scalar() == cv.value {
					found = true
					break
				}
			}
		}
		if !found {
			rep.add(Issue{
				Kind:     MissingCriticalValue,
				Section:  graph.KindBuildConfiguration,
				Field:    cv.field,
				Msg:      "no configuration carries " + cv.field + " = " + cv.value,
				Blocking: true,
			})
		}
	}
}

// parseIssue maps a parse failure onto the issue taxonomy.
func parseIssue(err error) Issue {
	var se *parse.MalformedSectionError
	if errors.As(err, &se) {
		return Issue{
			Kind:     MalformedSection,
			Section:  se.Section,
			Msg:      err.Error(),
			Blocking: true,
		}
	}
	var re *parse.MalformedRecordError
	if errors.As(err, &re) {
		return Issue{
			Kind:     MalformedRecord,
			Section:  re.Section,
			Record:   re.Record,
			Msg:      err.Error(),
			Blocking: true,
		}
	}
	if errors.Is(err, token.ErrDocBalance) {
		return Issue{Kind: StructuralImbalance, Msg: err.Error(), Blocking: true}
	}
	return Issue{Kind: MalformedRecord, Msg: err.Error(), Blocking: true}
}
