package hierarchy

import (
	"slices"
)

// NoParent marks a root node.
const NoParent = -1

// IndentLevel locates a node among its siblings on one level of the path
// from the root: Index is its position, Count the size of the sibling group.
type IndentLevel struct {
	Index int `json:"index" yaml:"index"`
	Count int `json:"count" yaml:"count"`
}

// Node is one component of a classification hierarchy.
type Node struct {
	Name string
	// Parent is the arena index of the parent, or NoParent for roots.
	Parent   int
	Children []int

	// ClassificationPath is the ordered ancestor names plus Name.
	ClassificationPath []string
	// ClassificationName is Join(ClassificationPath).
	ClassificationName string
	// Requested is false for synthetic ancestors that were only inserted
	// to host descendants.
	Requested bool

	IndentLevels       []IndentLevel
	IndentChangeBefore int
	IndentChangeAfter  int
}

// Depth is the number of components in the node's classification.
func (n *Node) Depth() int { return len(n.ClassificationPath) }

// LevelSorter reorders a sibling group in place after the natural sort.
// level is 0 for roots, 1 for their children, and so on.
type LevelSorter func(names []string, level int)

// Tree is an arena of nodes built from classification strings.
type Tree struct {
	nodes  []Node
	roots  []int
	lookup map[string]int
	flat   []int
}

// Build parses every classification and inserts it below a synthetic root.
// Ancestors that were not themselves requested are created with Requested
// unset. The root classification "" has no node.
func Build(classifications []string) (*Tree, error) {
	t := &Tree{lookup: make(map[string]int)}
	for _, c := range classifications {
		parts, err := Parse(c)
		if err != nil {
			return nil, err
		}
		parent := NoParent
		for depth := range parts {
			parent = t.child(parent, parts[:depth+1])
		}
		if parent != NoParent {
			t.nodes[parent].Requested = true
		}
	}
	t.Flatten()
	return t, nil
}

// child finds or inserts the node for path below parent.
func (t *Tree) child(parent int, path []string) int {
	key := Join(path)
	if id, ok := t.lookup[key]; ok {
		return id
	}
	id := len(t.nodes)
	t.nodes = append(t.nodes, Node{
		Name:               path[len(path)-1],
		Parent:             parent,
		ClassificationPath: slices.Clone(path),
		ClassificationName: key,
	})
	t.lookup[key] = id
	if parent == NoParent {
		t.roots = append(t.roots, id)
	} else {
		t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	}
	return id
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node stored at id. The returned value must be treated as read-only.
func (t *Tree) Node(id int) *Node { return &t.nodes[id] }

// Roots returns the root node indices in sibling order.
func (t *Tree) Roots() []int { return t.roots }

// Lookup returns the index of the node for a classification name.
func (t *Tree) Lookup(classification string) (int, bool) {
	id, ok := t.lookup[classification]
	return id, ok
}

// ChildrenOf returns the children of a classification; the root
// classification "" yields the tree's roots.
func (t *Tree) ChildrenOf(classification string) []int {
	if classification == "" {
		return t.roots
	}
	if id, ok := t.lookup[classification]; ok {
		return t.nodes[id].Children
	}
	return nil
}

// Parent returns the parent index of id, or NoParent.
func (t *Tree) Parent(id int) int { return t.nodes[id].Parent }

// Children returns the child indices of id in sibling order.
func (t *Tree) Children(id int) []int { return t.nodes[id].Children }

// Siblings returns the sibling group id belongs to, including id itself.
func (t *Tree) Siblings(id int) []int {
	if p := t.nodes[id].Parent; p != NoParent {
		return t.nodes[p].Children
	}
	return t.roots
}

// Ancestors returns the strict ancestors of id, nearest first.
func (t *Tree) Ancestors(id int) []int {
	var out []int
	for p := t.nodes[id].Parent; p != NoParent; p = t.nodes[p].Parent {
		out = append(out, p)
	}
	return out
}

// Sort natural-sorts every sibling group and then hands it to sorter,
// which may impose a level-dependent order (years descending and so on).
// The flattened order is recomputed afterwards.
func (t *Tree) Sort(sorter LevelSorter) {
	t.roots = t.sortGroup(t.roots, 0, sorter)
	// Children are sorted breadth-wise; each group is independent.
	queue := slices.Clone(t.roots)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := &t.nodes[id]
		if len(n.Children) > 0 {
			n.Children = t.sortGroup(n.Children, n.Depth(), sorter)
			queue = append(queue, n.Children...)
		}
	}
	t.Flatten()
}

func (t *Tree) sortGroup(group []int, level int, sorter LevelSorter) []int {
	byName := make(map[string]int, len(group))
	names := make([]string, len(group))
	for i, id := range group {
		names[i] = t.nodes[id].Name
		byName[names[i]] = id
	}
	NaturalSort(names)
	if sorter != nil {
		sorter(names, level)
	}
	out := make([]int, len(names))
	for i, name := range names {
		out[i] = byName[name]
	}
	return out
}

type flattenFrame struct {
	siblings []int
	next     int
	prefix   []IndentLevel
}

// Flatten returns the nodes in pre-order and refreshes every node's indent
// bookkeeping. IndentChangeBefore is depth(node) - depth(previous) with the
// first node measured against depth 0; IndentChangeAfter is
// depth(next) - depth(node), and -depth(node) for the last node.
func (t *Tree) Flatten() []int {
	flat := make([]int, 0, len(t.nodes))
	stack := []flattenFrame{{siblings: t.roots}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.siblings) {
			stack = stack[:len(stack)-1]
			continue
		}
		index := top.next
		top.next++
		id := top.siblings[index]
		levels := make([]IndentLevel, len(top.prefix), len(top.prefix)+1)
		copy(levels, top.prefix)
		levels = append(levels, IndentLevel{Index: index, Count: len(top.siblings)})
		t.nodes[id].IndentLevels = levels
		flat = append(flat, id)
		if children := t.nodes[id].Children; len(children) > 0 {
			stack = append(stack, flattenFrame{siblings: children, prefix: levels})
		}
	}

	level := 0
	for i, id := range flat {
		depth := len(t.nodes[id].IndentLevels)
		change := depth - level
		if i > 0 {
			t.nodes[flat[i-1]].IndentChangeAfter = change
		}
		t.nodes[id].IndentChangeBefore = change
		level = depth
	}
	if len(flat) > 0 {
		t.nodes[flat[len(flat)-1]].IndentChangeAfter = -level
	}
	t.flat = flat
	return flat
}

// Flat returns the pre-order sequence computed by the last Flatten.
func (t *Tree) Flat() []int { return t.flat }

// FlatIndex returns the position of a classification in the flattened order.
func (t *Tree) FlatIndex(classification string) (int, bool) {
	id, ok := t.lookup[classification]
	if !ok {
		return 0, false
	}
	for i, f := range t.flat {
		if f == id {
			return i, true
		}
	}
	return 0, false
}

// Clone deep-copies the tree keeping only nodes accepted by accept or having
// an accepted descendant. The receiver is not modified; the copy is
// flattened before it is returned.
func (t *Tree) Clone(accept func(*Node) bool) *Tree {
	out := &Tree{lookup: make(map[string]int)}
	for _, root := range t.roots {
		if id, ok := t.cloneInto(out, root, NoParent, accept); ok {
			out.roots = append(out.roots, id)
		}
	}
	out.Flatten()
	return out
}

func (t *Tree) cloneInto(out *Tree, id, parent int, accept func(*Node) bool) (int, bool) {
	src := &t.nodes[id]
	newID := len(out.nodes)
	out.nodes = append(out.nodes, Node{
		Name:               src.Name,
		Parent:             parent,
		ClassificationPath: src.ClassificationPath,
		ClassificationName: src.ClassificationName,
		Requested:          src.Requested,
	})
	var children []int
	for _, child := range src.Children {
		if cid, ok := t.cloneInto(out, child, newID, accept); ok {
			children = append(children, cid)
		}
	}
	if len(children) == 0 && !accept(src) {
		// Drop this node and anything appended after it.
		out.nodes = out.nodes[:newID]
		return 0, false
	}
	out.nodes[newID].Children = children
	out.lookup[src.ClassificationName] = newID
	return newID, true
}

// SortClassifications orders a flat list of classifications the way the complete
// hierarchy would be ordered: for hierarchical names a temporary tree is
// built and sorted, and requested names are returned in pre-order.
func SortClassifications(names []string, hierarchical bool, sorter LevelSorter) ([]string, error) {
	if !hierarchical {
		out := slices.Clone(names)
		NaturalSort(out)
		if sorter != nil {
			sorter(out, 0)
		}
		return out, nil
	}
	tree, err := Build(names)
	if err != nil {
		return nil, err
	}
	tree.Sort(sorter)
	out := make([]string, 0, len(names))
	if slices.Contains(names, "") {
		out = append(out, "")
	}
	for _, id := range tree.Flat() {
		if n := tree.Node(id); n.Requested {
			out = append(out, n.ClassificationName)
		}
	}
	return out, nil
}
