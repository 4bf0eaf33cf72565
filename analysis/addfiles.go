package analysis

import (
	"errors"
	"fmt"
	"path"

	"github.com/engindearing/pbxgraph/graph"
	"github.com/engindearing/pbxgraph/ir"
)

var (
	ErrNoTarget      = errors.New("no matching target")
	ErrNoSourcePhase = errors.New("target has no sources build phase")
)

// AddFiles inserts source files into a live document: a file reference
// per path, a build file per path, membership in the target's sources
// phase, and a child entry in the target's group. Identifiers are
// seeded from the path, so adding the same file twice is a no-op and
// two runs over the same inputs produce the same document. targetName
// may be empty when the document has exactly one target. Returns the
// file reference IDs of the files actually added.
func AddFiles(doc *graph.Document, targetName string, files []string) ([]string, error) {
	target := doc.TargetNamed(targetName)
	if target == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoTarget, targetName)
	}
	phase := sourcesPhase(doc, target)
	if phase == nil {
		return nil, fmt.Errorf("%w: target %s", ErrNoSourcePhase, target.GetString("name"))
	}
	group := targetGroup(doc, target)

	var added []string
	for _, p := range files {
		if doc.FindByPath(p) != nil {
			continue
		}
		refID, err := newFileReference(doc, p)
		if err != nil {
			return nil, err
		}
		bfID, err := doc.Allocate("buildfile_" + p)
		if err != nil {
			return nil, err
		}
		bf := graph.NewRecord(bfID, graph.KindBuildFile).
			Set("fileRef", ir.FromRef(refID))
		if err := doc.AddRecord(bf); err != nil {
			return nil, err
		}
		phase.Get("files").Append(ir.FromRef(bfID))
		if group != nil {
			group.Get("children").Append(ir.FromRef(refID))
		}
		added = append(added, refID)
	}
	return added, nil
}

// sourcesPhase resolves the target's sources build phase through its
// buildPhases list.
func sourcesPhase(doc *graph.Document, target *graph.Record) *graph.Record {
	phases := target.Get("buildPhases")
	if phases == nil {
		return nil
	}
	for _, v := range phases.Values {
		if v.Type != ir.RefType {
			continue
		}
		if rec := doc.Record(v.Ref); rec != nil && rec.Kind == graph.KindSourcesBuildPhase && rec.Get("files") != nil {
			return rec
		}
	}
	return nil
}

// targetGroup picks the group new files land in: the group named or
// pathed after the target, else the project's main group.
func targetGroup(doc *graph.Document, target *graph.Record) *graph.Record {
	name := target.GetString("name")
	s := doc.Section(graph.KindGroup)
	if s == nil {
		return nil
	}
	for _, rec := range s.Records {
		if rec.GetString("name") == name || path.Base(rec.GetString("path")) == name {
			if rec.Get("children") != nil {
				return rec
			}
		}
	}
	if ps := doc.Section(graph.KindProject); ps != nil {
		for _, rec := range ps.Records {
			if mg := rec.Get("mainGroup"); mg != nil && mg.Type == ir.RefType {
				if g := doc.Record(mg.Ref); g != nil && g.Get("children") != nil {
					return g
				}
			}
		}
	}
	return nil
}
