package graph

// Record kinds, named by their isa tags.
const (
	KindBuildFile            = "PBXBuildFile"
	KindFileReference        = "PBXFileReference"
	KindFrameworksBuildPhase = "PBXFrameworksBuildPhase"
	KindGroup                = "PBXGroup"
	KindNativeTarget         = "PBXNativeTarget"
	KindProject              = "PBXProject"
	KindResourcesBuildPhase  = "PBXResourcesBuildPhase"
	KindSourcesBuildPhase    = "PBXSourcesBuildPhase"
	KindBuildConfiguration   = "XCBuildConfiguration"
	KindConfigurationList    = "XCConfigurationList"
)

// SectionOrder is the canonical emission order. Consuming editors diff
// against this layout, so it is a presentation contract, not a style
// choice. Sections of unknown kinds sort after these, alphabetically.
var SectionOrder = []string{
	KindBuildFile,
	KindFileReference,
	KindFrameworksBuildPhase,
	KindGroup,
	KindNativeTarget,
	KindProject,
	KindResourcesBuildPhase,
	KindSourcesBuildPhase,
	KindBuildConfiguration,
	KindConfigurationList,
}

var sectionRank = func() map[string]int {
	m := make(map[string]int, len(SectionOrder))
	for i, k := range SectionOrder {
		m[k] = i
	}
	return m
}()

// CompactKinds render as one record per line.
var CompactKinds = map[string]bool{
	KindBuildFile:     true,
	KindFileReference: true,
}

// PhaseKinds maps build-phase kinds to the display name used in
// "<file> in <phase>" labels.
var PhaseKinds = map[string]string{
	KindSourcesBuildPhase:    "Sources",
	KindResourcesBuildPhase:  "Resources",
	KindFrameworksBuildPhase: "Frameworks",
}

// RequiredFields lists the fields a record of each kind cannot do
// without. Everything else is advisory; unknown fields always survive a
// round-trip untouched.
var RequiredFields = map[string][]string{
	KindBuildFile:          {"fileRef"},
	KindFileReference:      {"path", "sourceTree"},
	KindGroup:              {"children", "sourceTree"},
	KindNativeTarget:       {"buildConfigurationList", "buildPhases", "name"},
	KindProject:            {"buildConfigurationList", "mainGroup", "targets"},
	KindBuildConfiguration: {"buildSettings", "name"},
	KindConfigurationList:  {"buildConfigurations"},
}

// ExpectedFields are checked by the validator at warning level.
var ExpectedFields = map[string][]string{
	KindFileReference: {"lastKnownFileType|explicitFileType"},
	KindNativeTarget:  {"productType", "productName"},
	KindProject:       {"compatibilityVersion"},
}
