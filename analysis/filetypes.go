package analysis

import (
	"path/filepath"
	"strings"
)

// fileTypes maps extensions to the type tag new file references get.
var fileTypes = map[string]string{
	".swift":       "sourcecode.swift",
	".h":           "sourcecode.c.h",
	".m":           "sourcecode.c.objc",
	".mm":          "sourcecode.cpp.objcpp",
	".c":           "sourcecode.c.c",
	".cpp":         "sourcecode.cpp.cpp",
	".xcassets":    "folder.assetcatalog",
	".storyboard":  "file.storyboard",
	".xib":         "file.xib",
	".plist":       "text.plist.xml",
	".json":        "text.json",
	".xcframework": "wrapper.xcframework",
	".framework":   "wrapper.framework",
	".p12":         "file",
}

// InferFileType guesses the file type tag from a path's extension.
// Unknown extensions fall back to plain text.
func InferFileType(path string) string {
	if t, ok := fileTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return "text"
}
