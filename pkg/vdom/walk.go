package vdom

// Visitor is called for every node reached by Walk, before its children.
//
// It returns the node to use in place of n (n itself when unchanged, nil to
// drop the node) and whether Walk should descend into the children of the
// returned node.
type Visitor func(n *VNode) (repl *VNode, descend bool, err error)

// Walk applies visit to node and its descendants and returns the resulting
// tree. It never mutates its input. A node is reallocated only when the
// visitor replaced it or one of its children changed, so a walk that
// changes nothing returns node itself. The first error stops the walk and
// is returned unchanged, with a nil tree.
func Walk(node *VNode, visit Visitor) (*VNode, error) {
	if node == nil {
		return nil, nil
	}

	repl, descend, err := visit(node)
	if err != nil {
		return nil, err
	}
	if !descend || !repl.IsContainer() || len(repl.Children) == 0 {
		return repl, nil
	}

	// children stays nil until the first child changes
	var children []*VNode
	for i, child := range repl.Children {
		next, err := Walk(child, visit)
		if err != nil {
			return nil, err
		}
		if children == nil && next != child {
			children = make([]*VNode, i, len(repl.Children))
			copy(children, repl.Children[:i])
		}
		if children != nil && next != nil {
			children = append(children, next)
		}
	}

	if children == nil {
		return repl, nil
	}
	return repl.WithChildren(children), nil
}

// Inspect calls fn for node and its descendants in pre-order. When fn
// returns false the children of that node are skipped.
func Inspect(node *VNode, fn func(*VNode) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range node.Children {
		Inspect(child, fn)
	}
}
