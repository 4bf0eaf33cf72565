// Package parse decodes the old-style plist dialect into a
// graph.Document. It is a recursive-descent parser over the token
// stream: nesting depth is tracked by the call stack rather than by
// pattern captures, so arbitrarily nested settings blocks decode
// correctly. Parsing is pure: the same text always yields a
// structurally identical Document, and on any error no partial Document
// is returned.
package parse

import (
	"strconv"
	"strings"

	"github.com/engindearing/pbxgraph/debug"
	"github.com/engindearing/pbxgraph/graph"
	"github.com/engindearing/pbxgraph/ir"
	"github.com/engindearing/pbxgraph/token"
)

func Parse(d []byte) (*graph.Document, error) {
	toks, err := token.Tokenize(d)
	if err != nil {
		return nil, err
	}
	if _, err := token.Balance(toks); err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	doc, err := p.document()
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parsed %d records in %d sections", doc.Len(), len(doc.Sections()))
	}
	return doc, nil
}

type parser struct {
	toks []token.Token
	i    int
}

func (p *parser) peek() *token.Token {
	if p.i >= len(p.toks) {
		return nil
	}
	return &p.toks[p.i]
}

func (p *parser) next() *token.Token {
	t := p.peek()
	if t != nil {
		p.i++
	}
	return t
}

func (p *parser) pos() *token.Pos {
	if t := p.peek(); t != nil {
		return t.Pos
	}
	if len(p.toks) > 0 {
		return p.toks[len(p.toks)-1].Pos
	}
	return &token.Pos{Line: 1, Col: 1}
}

// document parses the top level: an optional header line comment, then
// one brace-delimited object whose "objects" field holds the sectioned
// records and whose "rootObject" names the entry point.
func (p *parser) document() (*graph.Document, error) {
	doc := graph.NewDocument()
	if t := p.peek(); t != nil && t.Type == token.TLineComment {
		doc.Header = string(t.Bytes)
		p.next()
	}
	if t := p.peek(); t == nil || t.Type != token.TLBrace {
		return nil, &MalformedRecordError{Pos: p.pos(), Msg: "expected top-level {"}
	}
	p.next()

	preamble := ir.NewObject()
	for {
		t := p.peek()
		if t == nil {
			return nil, &MalformedRecordError{Pos: p.pos(), Msg: "unterminated top-level object"}
		}
		if t.Type.IsComment() {
			p.next()
			continue
		}
		if t.Type == token.TRBrace {
			p.next()
			break
		}
		key, _, err := p.key()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.TEq, "="); err != nil {
			return nil, err
		}
		switch key {
		case "objects":
			if err := p.objects(doc); err != nil {
				return nil, err
			}
		case "rootObject":
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			if v.Type != ir.RefType {
				return nil, &MalformedRecordError{Pos: p.pos(), Msg: "rootObject is not an identifier"}
			}
			doc.RootObject = v.Ref
		default:
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			preamble.Set(key, v)
		}
		if err := p.expect(token.TSemi, ";"); err != nil {
			return nil, err
		}
	}
	for t := p.next(); t != nil; t = p.next() {
		if !t.Type.IsComment() {
			return nil, &MalformedRecordError{Pos: t.Pos, Msg: "trailing material after document"}
		}
	}
	doc.Preamble = preamble
	return doc, nil
}

// objects parses the sectioned record mapping. Sections are delimited
// by "Begin <name> section" / "End <name> section" comment markers; an
// unmatched marker is a hard failure. Records appearing outside any
// marker pair are filed under their own kind.
func (p *parser) objects(doc *graph.Document) error {
	if err := p.expect(token.TLBrace, "{"); err != nil {
		return err
	}
	open := "" // currently open section name
	var openPos *token.Pos
	for {
		t := p.peek()
		if t == nil {
			return &MalformedSectionError{Section: open, Pos: p.pos(), Msg: "unterminated objects mapping"}
		}
		if t.Type.IsComment() {
			p.next()
			if name, ok := sectionMarker(t, "Begin"); ok {
				if open != "" {
					return &MalformedSectionError{Section: open, Pos: t.Pos,
						Msg: "begin marker before previous section ended"}
				}
				open, openPos = name, t.Pos
				doc.EnsureSection(name)
				continue
			}
			if name, ok := sectionMarker(t, "End"); ok {
				if open != name {
					return &MalformedSectionError{Section: name, Pos: t.Pos,
						Msg: "end marker without matching begin"}
				}
				open = ""
			}
			continue
		}
		if t.Type == token.TRBrace {
			if open != "" {
				return &MalformedSectionError{Section: open, Pos: openPos,
					Msg: "begin marker without matching end"}
			}
			p.next()
			return nil
		}
		if err := p.record(doc, open); err != nil {
			return err
		}
	}
}

// record parses one "<id> /* label */ = { ... };" entry.
func (p *parser) record(doc *graph.Document, section string) error {
	pos := p.pos()
	id, label, err := p.key()
	if err != nil {
		return err
	}
	if !graph.IsID(id) {
		return &MalformedRecordError{Section: section, Record: id, Pos: pos,
			Msg: "entry key is not an identifier"}
	}
	if err := p.expect(token.TEq, "="); err != nil {
		return err
	}
	body, err := p.value()
	if err != nil {
		return err
	}
	if err := p.expect(token.TSemi, ";"); err != nil {
		return err
	}
	if body.Type != ir.ObjectType {
		return &MalformedRecordError{Section: section, Record: id, Pos: pos,
			Msg: "record body is not an object"}
	}
	isa := body.Get("isa")
	if isa == nil || isa.Type != ir.StringType {
		return &MalformedRecordError{Section: section, Record: id, Pos: pos,
			Msg: "record has no isa kind tag"}
	}
	kind := isa.String
	if section != "" && kind != section {
		return &MalformedRecordError{Section: section, Record: id, Pos: pos,
			Msg: "record kind " + kind + " does not match its section"}
	}
	rec := &graph.Record{ID: id, Kind: kind, Label: label, Fields: body}
	if kind == graph.KindBuildFile {
		rec.PhaseHint = phaseHint(label)
	}
	if err := doc.AddRecord(rec); err != nil {
		return &MalformedRecordError{Section: section, Record: id, Pos: pos,
			Msg: err.Error()}
	}
	return nil
}

// key reads a field name or record identifier plus its optional inline
// comment label.
func (p *parser) key() (string, string, error) {
	t := p.peek()
	if t == nil || (t.Type != token.TBare && t.Type != token.TQuoted) {
		return "", "", &MalformedRecordError{Pos: p.pos(), Msg: "expected a key"}
	}
	p.next()
	key := t.String()
	label := ""
	if c := p.peek(); c != nil && c.Type == token.TComment {
		label = c.String()
		p.next()
	}
	return key, label, nil
}

func (p *parser) expect(tt token.TokenType, what string) error {
	t := p.peek()
	if t == nil || t.Type != tt {
		return &MalformedRecordError{Pos: p.pos(), Msg: "expected " + what}
	}
	p.next()
	return nil
}

// value parses any field value: nested object, array, or classified
// scalar. A trailing inline comment becomes the node's cosmetic label.
func (p *parser) value() (*ir.Node, error) {
	t := p.peek()
	if t == nil {
		return nil, &MalformedRecordError{Pos: p.pos(), Msg: "expected a value"}
	}
	switch t.Type {
	case token.TLBrace:
		return p.object()
	case token.TLParen:
		return p.array()
	case token.TBare, token.TQuoted:
		p.next()
		n := classify(t)
		if c := p.peek(); c != nil && c.Type == token.TComment {
			n.Label = c.String()
			p.next()
		}
		return n, nil
	default:
		return nil, &MalformedRecordError{Pos: t.Pos, Msg: "unexpected " + t.Type.String()}
	}
}

func (p *parser) object() (*ir.Node, error) {
	p.next() // {
	obj := ir.NewObject()
	for {
		t := p.peek()
		if t == nil {
			return nil, &MalformedRecordError{Pos: p.pos(), Msg: "unterminated object"}
		}
		if t.Type.IsComment() {
			p.next()
			continue
		}
		if t.Type == token.TRBrace {
			p.next()
			return obj, nil
		}
		key, _, err := p.key()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.TEq, "="); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.TSemi, ";"); err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
}

func (p *parser) array() (*ir.Node, error) {
	p.next() // (
	arr := &ir.Node{Type: ir.ArrayType}
	for {
		t := p.peek()
		if t == nil {
			return nil, &MalformedRecordError{Pos: p.pos(), Msg: "unterminated array"}
		}
		if t.Type.IsComment() {
			p.next()
			continue
		}
		if t.Type == token.TRParen {
			p.next()
			return arr, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		arr.Append(v)
		if c := p.peek(); c != nil && c.Type == token.TComma {
			p.next()
		}
	}
}

// classify decodes a scalar token: identifier-shaped bare tokens become
// references, YES/NO become booleans, integers become numbers, and
// everything else stays a string. Quoted scalars are always strings.
func classify(t *token.Token) *ir.Node {
	if t.Type == token.TQuoted {
		return ir.FromString(t.String())
	}
	s := string(t.Bytes)
	if graph.IsID(s) {
		return ir.FromRef(s)
	}
	switch s {
	case "YES":
		return ir.FromBool(true)
	case "NO":
		return ir.FromBool(false)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ir.FromInt(i)
	}
	return ir.FromString(s)
}

func sectionMarker(t *token.Token, verb string) (string, bool) {
	if t.Type != token.TComment {
		return "", false
	}
	body := t.String()
	rest, ok := strings.CutPrefix(body, verb+" ")
	if !ok {
		return "", false
	}
	name, ok := strings.CutSuffix(rest, " section")
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// phaseHint recovers "Sources" from a parsed "Foo.swift in Sources"
// annotation. It is a fallback only: the encoder rederives the phase
// from live membership when it can.
func phaseHint(label string) string {
	if i := strings.LastIndex(label, " in "); i >= 0 {
		return label[i+len(" in "):]
	}
	return ""
}
