package encode

import (
	"bytes"

	"github.com/engindearing/pbxgraph/graph"
)

func MustString(doc *graph.Document, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}
