// Package graph holds the object-graph model: a Document of ordered
// Sections, each an ordered run of identified Records, plus the
// identifier Registry and Allocator that serve one parse/rebuild
// operation. The parser never mutates records after building them;
// mutation happens through Document methods between parse and encode,
// serialized by a single lock owned by the Document.
package graph

import (
	"path"
	"strings"
	"sync"

	"github.com/engindearing/pbxgraph/ir"
)

// Record is one identified object: an opaque fixed-width identifier, a
// kind tag (its isa), an optional cosmetic label, and an ordered field
// mapping. PhaseHint keeps the "in <phase>" annotation seen at parse
// time for build files whose phase membership cannot be recovered from
// the live graph.
type Record struct {
	ID        string
	Kind      string
	Label     string
	PhaseHint string
	Fields    *ir.Node
}

func NewRecord(id, kind string) *Record {
	return &Record{
		ID:     id,
		Kind:   kind,
		Fields: ir.NewObject().Set("isa", ir.FromString(kind)),
	}
}

func (r *Record) Get(field string) *ir.Node {
	return r.Fields.Get(field)
}

func (r *Record) Set(field string, v *ir.Node) *Record {
	r.Fields.Set(field, v)
	return r
}

// GetString returns the scalar form of field, or "".
func (r *Record) GetString(field string) string {
	v := r.Fields.Get(field)
	if v == nil || !v.Type.IsLeaf() {
		return ""
	}
	return v.Scalar()
}

// Section is a named partition of records sharing one kind. Record
// order is kept for output stability only; the encoder sorts by
// identifier regardless.
type Section struct {
	Name    string
	Records []*Record
}

// Document is a whole object graph: ordered sections, the preamble
// fields surrounding the objects mapping, a designated root record, and
// the identifier registry for this parse/rebuild operation.
type Document struct {
	mu sync.Mutex

	// Preamble holds the top-level fields other than objects and
	// rootObject (archiveVersion, classes, objectVersion, and anything a
	// future format revision adds), in source order.
	Preamble *ir.Node

	// Header is the comment line atop the file.
	Header string

	RootObject string

	sections []*Section
	byID     map[string]*Record
	reg      *Registry
	alloc    *Allocator
}

// DefaultHeader is emitted for documents built from scratch.
const DefaultHeader = "// !$*UTF8*$!"

func NewDocument() *Document {
	reg := NewRegistry()
	return &Document{
		Header: DefaultHeader,
		Preamble: ir.NewObject().
			Set("archiveVersion", ir.FromInt(1)).
			Set("classes", ir.NewObject()).
			Set("objectVersion", ir.FromInt(56)),
		byID:  map[string]*Record{},
		reg:   reg,
		alloc: NewAllocator(reg),
	}
}

func (d *Document) Registry() *Registry {
	return d.reg
}

// Allocate mints an identifier through the document's allocator. An
// empty seed selects randomized allocation.
func (d *Document) Allocate(seed string) (string, error) {
	return d.alloc.Allocate(seed)
}

// AllocWarnings drains seeded-collision warnings from the allocator.
func (d *Document) AllocWarnings() []Warning {
	return d.alloc.Warnings()
}

// Sections returns the sections in document order.
func (d *Document) Sections() []*Section {
	return d.sections
}

// Section returns the section named kind, or nil.
func (d *Document) Section(kind string) *Section {
	for _, s := range d.sections {
		if s.Name == kind {
			return s
		}
	}
	return nil
}

// EnsureSection returns the section named kind, creating it if absent.
func (d *Document) EnsureSection(kind string) *Section {
	if s := d.Section(kind); s != nil {
		return s
	}
	s := &Section{Name: kind}
	d.sections = append(d.sections, s)
	return s
}

// Record resolves an identifier anywhere in the document.
func (d *Document) Record(id string) *Record {
	return d.byID[id]
}

// AddRecord inserts rec into the section named by its kind. The
// identifier must be unique document-wide.
func (d *Document) AddRecord(rec *Record) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byID[rec.ID]; ok {
		return ErrDuplicateID
	}
	d.reg.Add(rec.ID)
	d.byID[rec.ID] = rec
	s := d.EnsureSection(rec.Kind)
	s.Records = append(s.Records, rec)
	return nil
}

// RemoveRecord deletes the record by id and reports whether it existed.
// References pointing at it are left in place; the validator flags them
// as dangling.
func (d *Document) RemoveRecord(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.byID[id]
	if !ok {
		return false
	}
	delete(d.byID, id)
	d.reg.Remove(id)
	s := d.Section(rec.Kind)
	for i, r := range s.Records {
		if r.ID == id {
			s.Records = append(s.Records[:i], s.Records[i+1:]...)
			break
		}
	}
	return true
}

// Len counts records across all sections.
func (d *Document) Len() int {
	return len(d.byID)
}

// SectionRank orders section names canonically; unknown kinds sort
// after the known ones, alphabetically among themselves.
func SectionRank(name string) (int, string) {
	if r, ok := sectionRank[name]; ok {
		return r, ""
	}
	return len(SectionOrder), name
}

// LabelOf computes the current cosmetic label for the record behind id,
// per kind. The encoder calls this for every reference so that inline
// comments always track live record state, never parsed text.
func (d *Document) LabelOf(id string) string {
	rec := d.byID[id]
	if rec == nil {
		return ""
	}
	switch rec.Kind {
	case KindFileReference, KindGroup:
		if name := rec.GetString("name"); name != "" {
			return name
		}
		if p := rec.GetString("path"); p != "" {
			return path.Base(p)
		}
		return rec.Label
	case KindBuildFile:
		ref := rec.Get("fileRef")
		name := ""
		if ref != nil && ref.Type == ir.RefType {
			name = d.LabelOf(ref.Ref)
		}
		if name == "" {
			return rec.Label
		}
		return name + " in " + d.PhaseOf(rec.ID)
	case KindNativeTarget, KindBuildConfiguration:
		if name := rec.GetString("name"); name != "" {
			return name
		}
		return rec.Label
	case KindProject:
		return "Project object"
	case KindSourcesBuildPhase, KindResourcesBuildPhase, KindFrameworksBuildPhase:
		return PhaseKinds[rec.Kind]
	case KindConfigurationList:
		if owner := d.configListOwner(id); owner != nil {
			name := owner.GetString("name")
			if name == "" && owner.Kind == KindProject {
				name = d.LabelOf(owner.ID)
			}
			return "Build configuration list for " + owner.Kind + " " + `"` + name + `"`
		}
		return rec.Label
	default:
		return rec.Label
	}
}

func (d *Document) configListOwner(id string) *Record {
	for _, s := range d.sections {
		for _, rec := range s.Records {
			v := rec.Get("buildConfigurationList")
			if v != nil && v.Type == ir.RefType && v.Ref == id {
				return rec
			}
		}
	}
	return nil
}

// PhaseOf names the build phase a build file belongs to, derived from
// live phase membership. The parse-time hint and then "Sources" serve
// as fallbacks for build files not linked into any phase yet.
func (d *Document) PhaseOf(buildFileID string) string {
	// phase kinds are walked in canonical section order so membership in
	// several phases resolves the same way on every call
	for _, kind := range SectionOrder {
		display, ok := PhaseKinds[kind]
		if !ok {
			continue
		}
		s := d.Section(kind)
		if s == nil {
			continue
		}
		for _, rec := range s.Records {
			files := rec.Get("files")
			if files == nil {
				continue
			}
			for _, v := range files.Values {
				if v.Type == ir.RefType && v.Ref == buildFileID {
					return display
				}
			}
		}
	}
	if rec := d.byID[buildFileID]; rec != nil && rec.PhaseHint != "" {
		return rec.PhaseHint
	}
	return "Sources"
}

// Dangling lists every reference that does not resolve to a record,
// including a missing root object.
func (d *Document) Dangling() []*DanglingReferenceError {
	var errs []*DanglingReferenceError
	if d.RootObject != "" {
		if _, ok := d.byID[d.RootObject]; !ok {
			errs = append(errs, &DanglingReferenceError{To: d.RootObject})
		}
	}
	for _, s := range d.sections {
		for _, rec := range s.Records {
			for i, field := range rec.Fields.Fields {
				val := rec.Fields.Values[i]
				for _, ref := range val.Refs() {
					if _, ok := d.byID[ref]; !ok {
						errs = append(errs, &DanglingReferenceError{
							From:  rec.ID,
							Field: field,
							To:    ref,
						})
					}
				}
			}
		}
	}
	return errs
}

// FindByPath returns the file reference whose path field equals p, or
// nil.
func (d *Document) FindByPath(p string) *Record {
	s := d.Section(KindFileReference)
	if s == nil {
		return nil
	}
	for _, rec := range s.Records {
		if rec.GetString("path") == p {
			return rec
		}
	}
	return nil
}

// TargetNamed returns the native target with the given name, or the
// only target when name is empty and exactly one exists.
func (d *Document) TargetNamed(name string) *Record {
	s := d.Section(KindNativeTarget)
	if s == nil {
		return nil
	}
	if name == "" && len(s.Records) == 1 {
		return s.Records[0]
	}
	for _, rec := range s.Records {
		if strings.EqualFold(rec.GetString("name"), name) {
			return rec
		}
	}
	return nil
}
