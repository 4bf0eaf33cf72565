package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engindearing/pbxgraph/encode"
	"github.com/engindearing/pbxgraph/graph"
	"github.com/engindearing/pbxgraph/parse"
)

const project = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 56;
	objects = {

/* Begin PBXBuildFile section */
		BB0000000000000000000001 /* AppDelegate.swift in Sources */ = {isa = PBXBuildFile; fileRef = AA0000000000000000000001 /* AppDelegate.swift */; };
/* End PBXBuildFile section */

/* Begin PBXFileReference section */
		AA0000000000000000000001 /* AppDelegate.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = AppDelegate.swift; sourceTree = "<group>"; };
/* End PBXFileReference section */

/* Begin PBXGroup section */
		CC0000000000000000000001 = {
			isa = PBXGroup;
			children = (
				AA0000000000000000000001 /* AppDelegate.swift */,
			);
			sourceTree = "<group>";
		};
/* End PBXGroup section */

/* Begin PBXNativeTarget section */
		DD0000000000000000000001 /* DemoApp */ = {
			isa = PBXNativeTarget;
			buildConfigurationList = CD0000000000000000000001;
			buildPhases = (
				AB0000000000000000000001 /* Sources */,
			);
			name = DemoApp;
			productName = DemoApp;
			productType = "com.apple.product-type.application";
		};
/* End PBXNativeTarget section */

/* Begin PBXProject section */
		EE0000000000000000000001 /* Project object */ = {
			isa = PBXProject;
			attributes = {
				BuildIndependentTargetsInParallel = 1;
			};
			buildConfigurationList = CD0000000000000000000001;
			compatibilityVersion = "Xcode 14.0";
			developmentRegion = en;
			hasScannedForEncodings = 0;
			mainGroup = CC0000000000000000000001;
			projectDirPath = "";
			projectRoot = "";
			targets = (
				DD0000000000000000000001 /* DemoApp */,
			);
		};
/* End PBXProject section */

/* Begin PBXSourcesBuildPhase section */
		AB0000000000000000000001 /* Sources */ = {
			isa = PBXSourcesBuildPhase;
			buildActionMask = 2147483647;
			files = (
				BB0000000000000000000001 /* AppDelegate.swift in Sources */,
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
/* End PBXSourcesBuildPhase section */

/* Begin XCBuildConfiguration section */
		CF0000000000000000000001 /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				DEVELOPMENT_TEAM = ABCDE12345;
				ENABLE_PREVIEWS = YES;
				PRODUCT_BUNDLE_IDENTIFIER = "com.example.app";
				SWIFT_VERSION = 5.0;
			};
			name = Debug;
		};
		CF0000000000000000000002 /* Release */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				DEVELOPMENT_TEAM = ABCDE12345;
				ENABLE_PREVIEWS = NO;
				PRODUCT_BUNDLE_IDENTIFIER = "com.example.app";
				SWIFT_VERSION = 5.0;
			};
			name = Release;
		};
/* End XCBuildConfiguration section */

/* Begin XCConfigurationList section */
		CD0000000000000000000001 = {
			isa = XCConfigurationList;
			buildConfigurations = (
				CF0000000000000000000001 /* Debug */,
				CF0000000000000000000002 /* Release */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Release;
		};
/* End XCConfigurationList section */
	};
	rootObject = EE0000000000000000000001 /* Project object */;
}
`

func parseProject(t *testing.T) *graph.Document {
	t.Helper()
	doc, err := parse.Parse([]byte(project))
	require.NoError(t, err)
	return doc
}

func demoStructure() *Structure {
	return &Structure{Root: GroupNode{
		Name:       "DemoApp",
		SourceTree: "<group>",
		Files:      []string{"AppDelegate.swift"},
	}}
}

func TestSnapshot(t *testing.T) {
	a := Snapshot(parseProject(t))

	assert.Equal(t, "DemoApp", a.Metadata.ProjectName)
	assert.Equal(t, "EE0000000000000000000001", a.Metadata.RootObject)
	assert.Equal(t, 1, a.ProjectInfo.FileReferences)
	assert.Equal(t, 1, a.ProjectInfo.SourceFiles)
	assert.Equal(t, 2, a.ProjectInfo.Configurations)

	ref := a.FileReferences["AA0000000000000000000001"]
	assert.Equal(t, "AppDelegate.swift", ref.Path)
	assert.Equal(t, "sourcecode.swift", ref.FileType)
	assert.Equal(t, "<group>", ref.SourceTree)

	bf := a.BuildFiles["BB0000000000000000000001"]
	assert.Equal(t, "AA0000000000000000000001", bf.FileRef)
	assert.Equal(t, "Sources", bf.Phase)
	assert.Equal(t, "AppDelegate.swift", bf.Name)

	require.Contains(t, a.EssentialSettings, "Debug")
	assert.Equal(t, "com.example.app", a.EssentialSettings["Debug"]["PRODUCT_BUNDLE_IDENTIFIER"])
	assert.Equal(t, true, a.EssentialSettings["Debug"]["ENABLE_PREVIEWS"])
	assert.Equal(t, false, a.EssentialSettings["Release"]["ENABLE_PREVIEWS"])

	ph := a.BuildPhases.Sources["AB0000000000000000000001"]
	assert.Equal(t, int64(2147483647), ph.BuildActionMask)
	assert.Equal(t, []string{"BB0000000000000000000001"}, ph.Files)
}

func TestBuildDeterministic(t *testing.T) {
	a := Snapshot(parseProject(t))

	d1, err := Build(a, demoStructure())
	require.NoError(t, err)
	d2, err := Build(a, demoStructure())
	require.NoError(t, err)
	assert.Equal(t, encode.MustString(d1), encode.MustString(d2))

	// the artifact round-trips through its serialized form
	data, err := a.JSON()
	require.NoError(t, err)
	decoded, err := DecodeAnalysis(data)
	require.NoError(t, err)
	d3, err := Build(decoded, demoStructure())
	require.NoError(t, err)
	assert.Equal(t, encode.MustString(d1), encode.MustString(d3))
}

func TestSnapshotRebuildPreserves(t *testing.T) {
	a := Snapshot(parseProject(t))
	doc, err := Build(a, demoStructure(),
		WithCriticalSetting("PRODUCT_BUNDLE_IDENTIFIER", "com.forced.app"),
		WithCriticalSetting("MARKETING_VERSION", "2.0.0"))
	require.NoError(t, err)

	again := Snapshot(doc)
	for id, ref := range a.FileReferences {
		assert.Equal(t, ref.Path, again.FileReferences[id].Path, id)
	}
	for id, cfg := range a.BuildConfigurations {
		got := again.BuildConfigurations[id]
		assert.Equal(t, cfg.Name, got.Name)
		assert.Equal(t, cfg.BuildSettings["SWIFT_VERSION"], got.BuildSettings["SWIFT_VERSION"])
		// forced values override the carried ones
		assert.Equal(t, "com.forced.app", got.BuildSettings["PRODUCT_BUNDLE_IDENTIFIER"])
		assert.Equal(t, "2.0.0", got.BuildSettings["MARKETING_VERSION"])
	}

	// the rebuilt project points at the rebuilt root group
	po := again.ProjectObjects["EE0000000000000000000001"]
	require.NotEmpty(t, po.MainGroup)
	root := again.Groups[po.MainGroup]
	assert.Equal(t, "DemoApp", root.Name)
	assert.Equal(t, []string{"AA0000000000000000000001"}, root.Children)
}

func TestBuildCreatesUnknownFileReferences(t *testing.T) {
	a := Snapshot(parseProject(t))
	st := demoStructure()
	st.Root.Files = append(st.Root.Files, "Views/NewView.swift")

	d1, err := Build(a, st)
	require.NoError(t, err)
	rec := d1.FindByPath("Views/NewView.swift")
	require.NotNil(t, rec)
	assert.True(t, graph.IsID(rec.ID))
	assert.Equal(t, "sourcecode.swift", rec.GetString("lastKnownFileType"))
	assert.Equal(t, "<group>", rec.GetString("sourceTree"))

	// seeded allocation: the same path gets the same identifier
	d2, err := Build(a, st)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, d2.FindByPath("Views/NewView.swift").ID)
}

func TestBuildWithoutProjectObject(t *testing.T) {
	a := Snapshot(parseProject(t))
	a.ProjectObjects = map[string]ProjectObject{}
	_, err := Build(a, demoStructure())
	assert.ErrorIs(t, err, ErrNoProject)
}

func TestPatch(t *testing.T) {
	a := Snapshot(parseProject(t))
	patch := []byte(`{
		"buildConfigurations": {
			"CF0000000000000000000001": {
				"buildSettings": {"SWIFT_VERSION": "6.0"}
			}
		}
	}`)
	patched, err := a.Patch(patch)
	require.NoError(t, err)

	assert.Equal(t, "6.0", patched.BuildConfigurations["CF0000000000000000000001"].BuildSettings["SWIFT_VERSION"])
	assert.Equal(t, "Debug", patched.BuildConfigurations["CF0000000000000000000001"].Name)
	// untouched siblings survive
	assert.Equal(t, "5.0", patched.BuildConfigurations["CF0000000000000000000002"].BuildSettings["SWIFT_VERSION"])
	assert.Equal(t, "5.0", a.BuildConfigurations["CF0000000000000000000001"].BuildSettings["SWIFT_VERSION"])
}

func TestAddFiles(t *testing.T) {
	doc := parseProject(t)
	added, err := AddFiles(doc, "", []string{"Feature.swift", "AppDelegate.swift"})
	require.NoError(t, err)
	require.Len(t, added, 1) // AppDelegate.swift already present

	ref := doc.FindByPath("Feature.swift")
	require.NotNil(t, ref)
	assert.Equal(t, added[0], ref.ID)

	// build file wired into the sources phase
	phase := doc.Record("AB0000000000000000000001")
	files := phase.Get("files")
	require.Len(t, files.Values, 2)
	bf := doc.Record(files.Values[1].Ref)
	require.NotNil(t, bf)
	assert.Equal(t, graph.KindBuildFile, bf.Kind)
	assert.Equal(t, ref.ID, bf.Get("fileRef").Ref)

	// grouped under the main group
	group := doc.Record("CC0000000000000000000001")
	children := group.Get("children")
	require.Len(t, children.Values, 2)
	assert.Equal(t, ref.ID, children.Values[1].Ref)

	// idempotent
	again, err := AddFiles(doc, "DemoApp", []string{"Feature.swift"})
	require.NoError(t, err)
	assert.Empty(t, again)

	// the result still parses and labels the new file
	out := encode.MustString(doc)
	reparsed, err := parse.Parse([]byte(out))
	require.NoError(t, err)
	assert.NotNil(t, reparsed.FindByPath("Feature.swift"))
	assert.Contains(t, out, "/* Feature.swift in Sources */")
}

func TestInferFileType(t *testing.T) {
	tests := map[string]string{
		"App.swift":           "sourcecode.swift",
		"legacy.m":            "sourcecode.c.objc",
		"Assets.xcassets":     "folder.assetcatalog",
		"Main.storyboard":     "file.storyboard",
		"Info.plist":          "text.plist.xml",
		"Libs/Tak.xcframework": "wrapper.xcframework",
		"README":              "text",
		"notes.txt":           "text",
	}
	for path, want := range tests {
		assert.Equal(t, want, InferFileType(path), path)
	}
}

func TestArtifactYAML(t *testing.T) {
	a := Snapshot(parseProject(t))
	data, err := a.YAML()
	require.NoError(t, err)
	decoded, err := DecodeAnalysis(data)
	require.NoError(t, err)
	assert.Equal(t, len(a.FileReferences), len(decoded.FileReferences))
	assert.Equal(t, a.BuildConfigurations["CF0000000000000000000001"].Name,
		decoded.BuildConfigurations["CF0000000000000000000001"].Name)

	st := demoStructure()
	sdata, err := st.YAML()
	require.NoError(t, err)
	sdec, err := DecodeStructure(sdata)
	require.NoError(t, err)
	assert.Equal(t, st.Root.Name, sdec.Root.Name)
	assert.Equal(t, st.Root.Files, sdec.Root.Files)
}
