package analysis

import (
	jsonpatch "github.com/evanphx/json-patch"
)

// Patch applies a JSON merge patch (RFC 7386) to the analysis and
// returns the patched copy. The receiver is not modified.
func (a *Analysis) Patch(patch []byte) (*Analysis, error) {
	doc, err := a.JSON()
	if err != nil {
		return nil, err
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, err
	}
	return DecodeAnalysis(merged)
}
