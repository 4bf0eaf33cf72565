package analysis

// Structure describes the desired group hierarchy for a rebuild. It is
// authored by hand or by tooling, not derived from a document.
type Structure struct {
	Root GroupNode `json:"root"`
}

// GroupNode is one group in the desired hierarchy. Files list the
// paths that belong directly to this group; paths unknown to the
// analysis get fresh file references during rebuild.
type GroupNode struct {
	Name       string      `json:"name"`
	Path       string      `json:"path,omitempty"`
	SourceTree string      `json:"sourceTree,omitempty"`
	Children   []GroupNode `json:"children,omitempty"`
	Files      []string    `json:"files,omitempty"`
}

// Walk visits every node depth-first, parents before children, with
// the slash-joined path from the root.
func (s *Structure) Walk(f func(node *GroupNode, path string)) {
	var walk func(n *GroupNode, parent string)
	walk = func(n *GroupNode, parent string) {
		p := n.Name
		if parent != "" {
			p = parent + "/" + n.Name
		}
		f(n, p)
		for i := range n.Children {
			walk(&n.Children[i], p)
		}
	}
	walk(&s.Root, "")
}
