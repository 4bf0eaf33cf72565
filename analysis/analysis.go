// Package analysis produces and consumes the auxiliary artifacts
// around a document: a snapshot of its object graph as plain data
// (JSON or YAML), a desired group structure, and the rebuild pipeline
// that turns both back into a document. The snapshot is the exchange
// format between tooling stages; it carries no comment labels and no
// field ordering, only data.
package analysis

import (
	"sort"

	"github.com/engindearing/pbxgraph/graph"
)

type Analysis struct {
	Metadata            Metadata                      `json:"metadata"`
	ProjectInfo         ProjectInfo                   `json:"projectInfo"`
	FileReferences      map[string]FileReference      `json:"fileReferences"`
	BuildFiles          map[string]BuildFile          `json:"buildFiles"`
	Groups              map[string]Group              `json:"groups"`
	Targets             map[string]Target             `json:"targets"`
	BuildConfigurations map[string]BuildConfiguration `json:"buildConfigurations"`
	ConfigurationLists  map[string]ConfigurationList  `json:"configurationLists"`
	BuildPhases         BuildPhases                   `json:"buildPhases"`
	ProjectObjects      map[string]ProjectObject      `json:"projectObjects"`
	EssentialSettings   map[string]map[string]any     `json:"essentialSettings"`
}

type Metadata struct {
	ProjectName string `json:"projectName,omitempty"`
	RootObject  string `json:"rootObject,omitempty"`
}

type ProjectInfo struct {
	FileReferences int `json:"totalFileReferences"`
	BuildFiles     int `json:"totalBuildFiles"`
	Groups         int `json:"totalGroups"`
	Targets        int `json:"totalTargets"`
	Configurations int `json:"totalConfigurations"`
	SourceFiles    int `json:"totalSourceFiles"`
}

type FileReference struct {
	Name             string `json:"name,omitempty"`
	Path             string `json:"path,omitempty"`
	FileType         string `json:"fileType,omitempty"`
	ExplicitFileType string `json:"explicitFileType,omitempty"`
	SourceTree       string `json:"sourceTree,omitempty"`
	FileEncoding     int64  `json:"fileEncoding,omitempty"`
}

type BuildFile struct {
	Name    string `json:"name,omitempty"`
	Phase   string `json:"phase,omitempty"`
	FileRef string `json:"fileRef"`
}

type Group struct {
	Name       string   `json:"name,omitempty"`
	Path       string   `json:"path,omitempty"`
	SourceTree string   `json:"sourceTree,omitempty"`
	Children   []string `json:"children"`
}

type Target struct {
	Name                   string   `json:"name"`
	ProductName            string   `json:"productName,omitempty"`
	ProductType            string   `json:"productType,omitempty"`
	ProductReference       string   `json:"productReference,omitempty"`
	BuildConfigurationList string   `json:"buildConfigurationList,omitempty"`
	BuildPhases            []string `json:"buildPhases"`
}

type BuildConfiguration struct {
	Name          string         `json:"name"`
	BuildSettings map[string]any `json:"buildSettings"`
}

type ConfigurationList struct {
	BuildConfigurations         []string `json:"buildConfigurations"`
	DefaultConfigurationVisible int64    `json:"defaultConfigurationIsVisible"`
	DefaultConfigurationName    string   `json:"defaultConfigurationName,omitempty"`
}

type BuildPhase struct {
	BuildActionMask                    int64    `json:"buildActionMask"`
	Files                              []string `json:"files"`
	RunOnlyForDeploymentPostprocessing int64    `json:"runOnlyForDeploymentPostprocessing"`
}

type BuildPhases struct {
	Sources    map[string]BuildPhase `json:"sources"`
	Resources  map[string]BuildPhase `json:"resources"`
	Frameworks map[string]BuildPhase `json:"frameworks"`
}

type ProjectObject struct {
	Attributes             map[string]any `json:"attributes,omitempty"`
	BuildConfigurationList string         `json:"buildConfigurationList,omitempty"`
	CompatibilityVersion   string         `json:"compatibilityVersion,omitempty"`
	DevelopmentRegion      string         `json:"developmentRegion,omitempty"`
	HasScannedForEncodings int64          `json:"hasScannedForEncodings"`
	MainGroup              string         `json:"mainGroup,omitempty"`
	ProductRefGroup        string         `json:"productRefGroup,omitempty"`
	Targets                []string       `json:"targets"`
}

// essentialKeys are the build settings worth surfacing per
// configuration name in the snapshot summary.
var essentialKeys = []string{
	"PRODUCT_BUNDLE_IDENTIFIER",
	"DEVELOPMENT_TEAM",
	"CODE_SIGN_IDENTITY",
	"CODE_SIGN_STYLE",
	"MARKETING_VERSION",
	"CURRENT_PROJECT_VERSION",
	"PRODUCT_NAME",
	"INFOPLIST_FILE",
	"INFOPLIST_KEY_CFBundleDisplayName",
	"SWIFT_VERSION",
	"SWIFT_OBJC_BRIDGING_HEADER",
	"IPHONEOS_DEPLOYMENT_TARGET",
	"TARGETED_DEVICE_FAMILY",
	"ASSETCATALOG_COMPILER_APPICON_NAME",
	"ENABLE_PREVIEWS",
	"FRAMEWORK_SEARCH_PATHS",
	"LD_RUNPATH_SEARCH_PATHS",
	"SUPPORTED_PLATFORMS",
	"SUPPORTS_MACCATALYST",
}

// Snapshot walks a document into the analysis artifact.
func Snapshot(doc *graph.Document) *Analysis {
	a := &Analysis{
		FileReferences:      map[string]FileReference{},
		BuildFiles:          map[string]BuildFile{},
		Groups:              map[string]Group{},
		Targets:             map[string]Target{},
		BuildConfigurations: map[string]BuildConfiguration{},
		ConfigurationLists:  map[string]ConfigurationList{},
		BuildPhases: BuildPhases{
			Sources:    map[string]BuildPhase{},
			Resources:  map[string]BuildPhase{},
			Frameworks: map[string]BuildPhase{},
		},
		ProjectObjects:    map[string]ProjectObject{},
		EssentialSettings: map[string]map[string]any{},
	}
	a.Metadata.RootObject = doc.RootObject

	forEach(doc, graph.KindFileReference, func(rec *graph.Record) {
		a.FileReferences[rec.ID] = FileReference{
			Name:             doc.LabelOf(rec.ID),
			Path:             rec.GetString("path"),
			FileType:         rec.GetString("lastKnownFileType"),
			ExplicitFileType: rec.GetString("explicitFileType"),
			SourceTree:       rec.GetString("sourceTree"),
			FileEncoding:     num(rec, "fileEncoding"),
		}
	})
	forEach(doc, graph.KindBuildFile, func(rec *graph.Record) {
		fileRef := ""
		if v := rec.Get("fileRef"); v != nil {
			fileRef = v.Scalar()
		}
		a.BuildFiles[rec.ID] = BuildFile{
			Name:    doc.LabelOf(fileRef),
			Phase:   doc.PhaseOf(rec.ID),
			FileRef: fileRef,
		}
	})
	forEach(doc, graph.KindGroup, func(rec *graph.Record) {
		a.Groups[rec.ID] = Group{
			Name:       rec.GetString("name"),
			Path:       rec.GetString("path"),
			SourceTree: rec.GetString("sourceTree"),
			Children:   refList(rec, "children"),
		}
	})
	forEach(doc, graph.KindNativeTarget, func(rec *graph.Record) {
		a.Targets[rec.ID] = Target{
			Name:                   rec.GetString("name"),
			ProductName:            rec.GetString("productName"),
			ProductType:            rec.GetString("productType"),
			ProductReference:       rec.GetString("productReference"),
			BuildConfigurationList: rec.GetString("buildConfigurationList"),
			BuildPhases:            refList(rec, "buildPhases"),
		}
		if a.Metadata.ProjectName == "" {
			a.Metadata.ProjectName = rec.GetString("name")
		}
	})
	forEach(doc, graph.KindBuildConfiguration, func(rec *graph.Record) {
		settings, _ := rec.Get("buildSettings").Any().(map[string]any)
		a.BuildConfigurations[rec.ID] = BuildConfiguration{
			Name:          rec.GetString("name"),
			BuildSettings: settings,
		}
	})
	forEach(doc, graph.KindConfigurationList, func(rec *graph.Record) {
		a.ConfigurationLists[rec.ID] = ConfigurationList{
			BuildConfigurations:         refList(rec, "buildConfigurations"),
			DefaultConfigurationVisible: num(rec, "defaultConfigurationIsVisible"),
			DefaultConfigurationName:    rec.GetString("defaultConfigurationName"),
		}
	})
	for kind, phases := range map[string]map[string]BuildPhase{
		graph.KindSourcesBuildPhase:    a.BuildPhases.Sources,
		graph.KindResourcesBuildPhase:  a.BuildPhases.Resources,
		graph.KindFrameworksBuildPhase: a.BuildPhases.Frameworks,
	} {
		forEach(doc, kind, func(rec *graph.Record) {
			phases[rec.ID] = BuildPhase{
				BuildActionMask:                    num(rec, "buildActionMask"),
				Files:                              refList(rec, "files"),
				RunOnlyForDeploymentPostprocessing: num(rec, "runOnlyForDeploymentPostprocessing"),
			}
		})
	}
	forEach(doc, graph.KindProject, func(rec *graph.Record) {
		attrs, _ := rec.Get("attributes").Any().(map[string]any)
		a.ProjectObjects[rec.ID] = ProjectObject{
			Attributes:             attrs,
			BuildConfigurationList: rec.GetString("buildConfigurationList"),
			CompatibilityVersion:   rec.GetString("compatibilityVersion"),
			DevelopmentRegion:      rec.GetString("developmentRegion"),
			HasScannedForEncodings: num(rec, "hasScannedForEncodings"),
			MainGroup:              rec.GetString("mainGroup"),
			ProductRefGroup:        rec.GetString("productRefGroup"),
			Targets:                refList(rec, "targets"),
		}
	})

	a.extractEssentialSettings()
	a.ProjectInfo = ProjectInfo{
		FileReferences: len(a.FileReferences),
		BuildFiles:     len(a.BuildFiles),
		Groups:         len(a.Groups),
		Targets:        len(a.Targets),
		Configurations: len(a.BuildConfigurations),
		SourceFiles:    a.countSourceFiles(),
	}
	return a
}

// extractEssentialSettings keeps one settings digest per configuration
// name. The first configuration of each name wins, chosen by ascending
// identifier so the digest is stable.
func (a *Analysis) extractEssentialSettings() {
	ids := make([]string, 0, len(a.BuildConfigurations))
	for id := range a.BuildConfigurations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		cfg := a.BuildConfigurations[id]
		if _, seen := a.EssentialSettings[cfg.Name]; seen {
			continue
		}
		essential := map[string]any{}
		for _, key := range essentialKeys {
			if v, ok := cfg.BuildSettings[key]; ok {
				essential[key] = v
			}
		}
		if len(essential) > 0 {
			a.EssentialSettings[cfg.Name] = essential
		}
	}
}

func (a *Analysis) countSourceFiles() int {
	n := 0
	for _, ref := range a.FileReferences {
		if ref.FileType == "sourcecode.swift" {
			n++
		}
	}
	return n
}

func forEach(doc *graph.Document, kind string, f func(rec *graph.Record)) {
	s := doc.Section(kind)
	if s == nil {
		return
	}
	for _, rec := range s.Records {
		f(rec)
	}
}

func num(rec *graph.Record, field string) int64 {
	v := rec.Get(field)
	if v == nil {
		return 0
	}
	return v.Int
}

// refList flattens an array field into its identifiers (or scalar
// strings, for lists that mix the two).
func refList(rec *graph.Record, field string) []string {
	v := rec.Get(field)
	if v == nil {
		return []string{}
	}
	out := make([]string, 0, len(v.Values))
	for _, e := range v.Values {
		out = append(out, e.Scalar())
	}
	return out
}
