package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/engindearing/pbxgraph/debug"
	"github.com/engindearing/pbxgraph/graph"
	"github.com/engindearing/pbxgraph/ir"
)

var ErrNoProject = errors.New("analysis has no project object")

type criticalSetting struct {
	key   string
	value string
}

type builder struct {
	critical []criticalSetting
}

type BuildOption func(*builder)

// WithCriticalSetting forces key=value into every rebuilt build
// configuration, overriding whatever the analysis carried.
func WithCriticalSetting(key, value string) BuildOption {
	return func(b *builder) {
		b.critical = append(b.critical, criticalSetting{key: key, value: value})
	}
}

// Build assembles a fresh document from an analysis artifact and a
// desired group structure. Carried records keep their identifiers;
// groups are allocated seeded IDs from their structure path, and files
// the analysis does not know get seeded file references. The same
// inputs always build byte-identical output.
func Build(a *Analysis, s *Structure, opts ...BuildOption) (*graph.Document, error) {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	doc := graph.NewDocument()

	pathToRef := map[string]string{}
	for _, id := range sortedKeys(a.FileReferences) {
		ref := a.FileReferences[id]
		if ref.Path != "" {
			pathToRef[ref.Path] = id
		}
		rec := graph.NewRecord(id, graph.KindFileReference)
		if ref.ExplicitFileType != "" {
			rec.Set("explicitFileType", ir.FromString(ref.ExplicitFileType))
		} else {
			rec.Set("lastKnownFileType", ir.FromString(ref.FileType))
		}
		if ref.FileEncoding != 0 {
			rec.Set("fileEncoding", ir.FromInt(ref.FileEncoding))
		}
		rec.Set("path", ir.FromString(ref.Path))
		rec.Set("sourceTree", ir.FromString(orDefault(ref.SourceTree, "<group>")))
		if err := doc.AddRecord(rec); err != nil {
			return nil, err
		}
	}

	for _, id := range sortedKeys(a.BuildFiles) {
		bf := a.BuildFiles[id]
		rec := graph.NewRecord(id, graph.KindBuildFile)
		rec.PhaseHint = bf.Phase
		rec.Set("fileRef", ir.FromRef(bf.FileRef))
		if err := doc.AddRecord(rec); err != nil {
			return nil, err
		}
	}

	for kind, phases := range map[string]map[string]BuildPhase{
		graph.KindSourcesBuildPhase:    a.BuildPhases.Sources,
		graph.KindResourcesBuildPhase:  a.BuildPhases.Resources,
		graph.KindFrameworksBuildPhase: a.BuildPhases.Frameworks,
	} {
		for _, id := range sortedKeys(phases) {
			ph := phases[id]
			rec := graph.NewRecord(id, kind).
				Set("buildActionMask", ir.FromInt(ph.BuildActionMask)).
				Set("files", refs(ph.Files)).
				Set("runOnlyForDeploymentPostprocessing", ir.FromInt(ph.RunOnlyForDeploymentPostprocessing))
			if err := doc.AddRecord(rec); err != nil {
				return nil, err
			}
		}
	}

	for _, id := range sortedKeys(a.Targets) {
		t := a.Targets[id]
		rec := graph.NewRecord(id, graph.KindNativeTarget).
			Set("buildConfigurationList", ir.FromRef(t.BuildConfigurationList)).
			Set("buildPhases", refs(t.BuildPhases)).
			Set("buildRules", ir.FromSlice(nil)).
			Set("dependencies", ir.FromSlice(nil)).
			Set("name", ir.FromString(t.Name)).
			Set("productName", ir.FromString(orDefault(t.ProductName, t.Name)))
		if _, ok := a.FileReferences[t.ProductReference]; ok {
			rec.Set("productReference", ir.FromRef(t.ProductReference))
		}
		rec.Set("productType", ir.FromString(orDefault(t.ProductType, "com.apple.product-type.application")))
		if err := doc.AddRecord(rec); err != nil {
			return nil, err
		}
	}

	for _, id := range sortedKeys(a.BuildConfigurations) {
		cfg := a.BuildConfigurations[id]
		settings := make(map[string]any, len(cfg.BuildSettings)+len(b.critical))
		for k, v := range cfg.BuildSettings {
			settings[k] = v
		}
		for _, cs := range b.critical {
			settings[cs.key] = cs.value
		}
		node, err := ir.FromAny(settings)
		if err != nil {
			return nil, fmt.Errorf("configuration %s settings: %w", id, err)
		}
		rec := graph.NewRecord(id, graph.KindBuildConfiguration).
			Set("buildSettings", node).
			Set("name", ir.FromString(cfg.Name))
		if err := doc.AddRecord(rec); err != nil {
			return nil, err
		}
	}

	for _, id := range sortedKeys(a.ConfigurationLists) {
		cl := a.ConfigurationLists[id]
		rec := graph.NewRecord(id, graph.KindConfigurationList).
			Set("buildConfigurations", refs(cl.BuildConfigurations)).
			Set("defaultConfigurationIsVisible", ir.FromInt(cl.DefaultConfigurationVisible)).
			Set("defaultConfigurationName", ir.FromString(orDefault(cl.DefaultConfigurationName, "Release")))
		if err := doc.AddRecord(rec); err != nil {
			return nil, err
		}
	}

	rootGroup, err := b.buildGroups(doc, a, s, pathToRef)
	if err != nil {
		return nil, err
	}

	projectIDs := sortedKeys(a.ProjectObjects)
	if len(projectIDs) == 0 {
		return nil, ErrNoProject
	}
	for _, id := range projectIDs {
		po := a.ProjectObjects[id]
		attrs, err := ir.FromAny(orAttrs(po.Attributes))
		if err != nil {
			return nil, fmt.Errorf("project %s attributes: %w", id, err)
		}
		rec := graph.NewRecord(id, graph.KindProject).
			Set("attributes", attrs).
			Set("buildConfigurationList", ir.FromRef(po.BuildConfigurationList)).
			Set("compatibilityVersion", ir.FromString(orDefault(po.CompatibilityVersion, "Xcode 14.0"))).
			Set("developmentRegion", ir.FromString(orDefault(po.DevelopmentRegion, "en"))).
			Set("hasScannedForEncodings", ir.FromInt(po.HasScannedForEncodings)).
			Set("mainGroup", ir.FromRef(rootGroup))
		if doc.Record(po.ProductRefGroup) != nil {
			rec.Set("productRefGroup", ir.FromRef(po.ProductRefGroup))
		}
		rec.Set("projectDirPath", ir.FromString("")).
			Set("projectRoot", ir.FromString("")).
			Set("targets", refs(po.Targets))
		if err := doc.AddRecord(rec); err != nil {
			return nil, err
		}
	}
	doc.RootObject = projectIDs[0]

	if debug.Alloc() {
		for _, w := range doc.AllocWarnings() {
			debug.Logf("rebuild: seeded id collision for %q, using %s", w.Seed, w.ID)
		}
	}
	return doc, nil
}

// buildGroups creates the group hierarchy bottom-up and returns the
// root group's identifier.
func (b *builder) buildGroups(doc *graph.Document, a *Analysis, s *Structure, pathToRef map[string]string) (string, error) {
	var build func(n *GroupNode, parent string) (string, error)
	build = func(n *GroupNode, parent string) (string, error) {
		groupPath := n.Name
		if parent != "" {
			groupPath = parent + "/" + n.Name
		}
		id, err := doc.Allocate("group_" + groupPath)
		if err != nil {
			return "", err
		}
		children := ir.FromSlice(nil)
		for i := range n.Children {
			childID, err := build(&n.Children[i], groupPath)
			if err != nil {
				return "", err
			}
			children.Append(ir.FromRef(childID))
		}
		for _, filePath := range n.Files {
			refID, ok := pathToRef[filePath]
			if !ok {
				refID, err = newFileReference(doc, filePath)
				if err != nil {
					return "", err
				}
				pathToRef[filePath] = refID
			}
			children.Append(ir.FromRef(refID))
		}
		rec := graph.NewRecord(id, graph.KindGroup).
			Set("children", children)
		if n.Name != "" {
			rec.Set("name", ir.FromString(n.Name))
		}
		if n.Path != "" {
			rec.Set("path", ir.FromString(n.Path))
		}
		rec.Set("sourceTree", ir.FromString(orDefault(n.SourceTree, "<group>")))
		if err := doc.AddRecord(rec); err != nil {
			return "", err
		}
		return id, nil
	}
	return build(&s.Root, "")
}

// newFileReference creates a reference for a path the analysis does
// not know, with a seeded identifier and an inferred file type.
func newFileReference(doc *graph.Document, path string) (string, error) {
	id, err := doc.Allocate("fileref_" + path)
	if err != nil {
		return "", err
	}
	rec := graph.NewRecord(id, graph.KindFileReference).
		Set("lastKnownFileType", ir.FromString(InferFileType(path))).
		Set("path", ir.FromString(path)).
		Set("sourceTree", ir.FromString("<group>"))
	if err := doc.AddRecord(rec); err != nil {
		return "", err
	}
	return id, nil
}

func refs(ids []string) *ir.Node {
	arr := ir.FromSlice(nil)
	for _, id := range ids {
		arr.Append(ir.FromRef(id))
	}
	return arr
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orAttrs(attrs map[string]any) map[string]any {
	if attrs == nil {
		return map[string]any{}
	}
	return attrs
}
