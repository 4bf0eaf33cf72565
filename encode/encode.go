// Package encode renders a graph.Document back to the dialect's text,
// deterministically: sections in canonical order, records in ascending
// identifier order, every reference comment regenerated from the live
// label of the referenced record. All quoting, boolean, and list
// formatting rules live here and nowhere else.
//
// Output is built in a buffer and handed over only after the structural
// cross-checks pass, so a caller never sees partial text.
package encode

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/engindearing/pbxgraph/debug"
	"github.com/engindearing/pbxgraph/graph"
	"github.com/engindearing/pbxgraph/ir"
	"github.com/engindearing/pbxgraph/token"
)

type encState struct {
	buf      *bytes.Buffer
	doc      *graph.Document
	comments bool

	braces int
	parens int
}

func Encode(doc *graph.Document, w io.Writer, opts ...EncodeOption) error {
	es := &encState{
		buf:      &bytes.Buffer{},
		doc:      doc,
		comments: true,
	}
	for _, opt := range opts {
		opt(es)
	}
	if doc.RootObject != "" && doc.Record(doc.RootObject) == nil {
		// cross-check against the Document, not the text
		return &graph.DanglingReferenceError{To: doc.RootObject}
	}
	es.document()
	if es.braces != 0 || es.parens != 0 {
		return &StructuralImbalanceError{Braces: es.braces, Parens: es.parens}
	}
	if debug.Encode() {
		debug.Logf("encoded %d records, %d bytes", doc.Len(), es.buf.Len())
	}
	_, err := w.Write(es.buf.Bytes())
	return err
}

func (es *encState) str(s string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			es.braces++
		case '}':
			es.braces--
		case '(':
			es.parens++
		case ')':
			es.parens--
		}
	}
	es.buf.WriteString(s)
}

// raw writes without delimiter accounting; only for quoted or comment
// text whose delimiters are not structural.
func (es *encState) raw(s string) {
	es.buf.WriteString(s)
}

func (es *encState) document() {
	doc := es.doc
	header := doc.Header
	if header == "" {
		header = graph.DefaultHeader
	}
	es.raw(header)
	es.str("\n{\n")
	if doc.Preamble != nil {
		for i, field := range doc.Preamble.Fields {
			es.str("\t")
			es.fieldName(field)
			es.str(" = ")
			es.value(doc.Preamble.Values[i], 1, false)
			es.str(";\n")
		}
	}
	es.str("\tobjects = {\n")
	es.sections()
	es.str("\t};\n")
	if doc.RootObject != "" {
		es.str("\trootObject = " + doc.RootObject)
		es.label(doc.LabelOf(doc.RootObject))
		es.str(";\n")
	}
	es.str("}\n")
}

func (es *encState) sections() {
	secs := append([]*graph.Section(nil), es.doc.Sections()...)
	sort.Slice(secs, func(i, j int) bool {
		ri, ni := graph.SectionRank(secs[i].Name)
		rj, nj := graph.SectionRank(secs[j].Name)
		if ri != rj {
			return ri < rj
		}
		return ni < nj
	})
	for si, sec := range secs {
		if si > 0 {
			es.str("\n")
		}
		es.raw("/* Begin " + sec.Name + " section */\n")
		recs := append([]*graph.Record(nil), sec.Records...)
		sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
		for _, rec := range recs {
			es.record(rec)
		}
		es.raw("/* End " + sec.Name + " section */\n")
	}
}

func (es *encState) record(rec *graph.Record) {
	es.str("\t\t" + rec.ID)
	es.label(es.doc.LabelOf(rec.ID))
	es.str(" = ")
	if graph.CompactKinds[rec.Kind] {
		es.compactObject(rec.Fields)
	} else {
		es.object(rec.Fields, 2)
	}
	es.str(";\n")
}

// compactObject renders one record on a single line, the layout the
// dialect uses for build files and file references.
func (es *encState) compactObject(obj *ir.Node) {
	es.str("{")
	for i, field := range fieldOrder(obj) {
		if i > 0 {
			es.str(" ")
		}
		es.fieldName(field)
		es.str(" = ")
		es.value(obj.Get(field), 0, true)
		es.str(";")
	}
	es.str(" }")
}

func (es *encState) object(obj *ir.Node, depth int) {
	es.str("{\n")
	indent := strings.Repeat("\t", depth+1)
	for _, field := range fieldOrder(obj) {
		es.str(indent)
		es.fieldName(field)
		es.str(" = ")
		es.value(obj.Get(field), depth+1, false)
		es.str(";\n")
	}
	es.str(strings.Repeat("\t", depth) + "}")
}

func (es *encState) array(arr *ir.Node, depth int, compact bool) {
	if compact {
		es.str("(")
		for i, v := range arr.Values {
			if i > 0 {
				es.str(", ")
			}
			es.value(v, depth, true)
		}
		es.str(")")
		return
	}
	es.str("(\n")
	indent := strings.Repeat("\t", depth+1)
	for _, v := range arr.Values {
		es.str(indent)
		es.value(v, depth+1, false)
		es.str(",\n")
	}
	es.str(strings.Repeat("\t", depth) + ")")
}

func (es *encState) value(v *ir.Node, depth int, compact bool) {
	switch v.Type {
	case ir.ObjectType:
		if compact {
			es.compactObject(v)
			return
		}
		es.object(v, depth)
	case ir.ArrayType:
		es.array(v, depth, compact)
	case ir.RefType:
		es.str(v.Ref)
		// comments regenerate from the live record label; a dangling
		// identifier gets none, never the parsed text
		es.label(es.doc.LabelOf(v.Ref))
	case ir.StringType:
		es.scalar(v.String)
	case ir.NumberType, ir.BoolType:
		es.str(v.Scalar())
	}
}

func (es *encState) scalar(s string) {
	if token.NeedsQuote(s) {
		es.raw(token.Quote(s))
		return
	}
	es.str(s)
}

func (es *encState) fieldName(name string) {
	es.scalar(name)
}

func (es *encState) label(label string) {
	if !es.comments || label == "" {
		return
	}
	es.raw(" /* " + label + " */")
}

// fieldOrder hoists isa to the front and keeps the stored order for the
// rest, which makes serialize-parse-serialize byte-stable.
func fieldOrder(obj *ir.Node) []string {
	fields := make([]string, 0, len(obj.Fields))
	if obj.Get("isa") != nil {
		fields = append(fields, "isa")
	}
	for _, f := range obj.Fields {
		if f != "isa" {
			fields = append(fields, f)
		}
	}
	return fields
}
