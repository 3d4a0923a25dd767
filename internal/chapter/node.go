package chapter

import (
	"errors"
	"strings"
)

// RootTag is the tag of the synthetic node every tree starts from.
const RootTag = "root"

// ErrUnbalancedMarkup is returned when an end tag has no open element to
// close, or elements are left open at the end of the document.
var ErrUnbalancedMarkup = errors.New("chapter: unbalanced markup")

// ErrMalformedMarkup is returned for markup that cannot be tokenized.
var ErrMalformedMarkup = errors.New("chapter: malformed markup")

// NodeID addresses a node within its Tree.
type NodeID int

const noParent NodeID = -1

type node struct {
	tag      string
	classes  []string
	content  strings.Builder
	parent   NodeID
	children []NodeID
}

// Tree owns every node of a reconstructed chapter. Node 0 is the root.
// A tree is only mutated while it is being built.
type Tree struct {
	nodes []*node
}

func newTree() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, &node{tag: RootTag, parent: noParent})
	return t
}

// appendChild creates a node under parent and returns its id.
func (t *Tree) appendChild(parent NodeID, tag string, classes []string) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &node{tag: tag, classes: classes, parent: parent})
	p := t.nodes[parent]
	p.children = append(p.children, id)
	return id
}

func (t *Tree) appendText(id NodeID, text string) {
	t.nodes[id].content.WriteString(text)
}

// up returns the parent of id.
func (t *Tree) up(id NodeID) (NodeID, error) {
	p := t.nodes[id].parent
	if p == noParent {
		return noParent, ErrUnbalancedMarkup
	}
	return p, nil
}

// Root returns the synthetic root node.
func (t *Tree) Root() Node {
	return Node{tree: t, id: 0}
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node is a read-only handle to one element of a Tree.
type Node struct {
	tree *Tree
	id   NodeID
}

// ID returns the node's index within its tree.
func (n Node) ID() NodeID { return n.id }

// Tag returns the element's local name.
func (n Node) Tag() string { return n.tree.nodes[n.id].tag }

// Classes returns the element's CSS classes in source order.
func (n Node) Classes() []string { return n.tree.nodes[n.id].classes }

// HasClass reports whether the element lists class c.
func (n Node) HasClass(c string) bool {
	for _, class := range n.Classes() {
		if class == c {
			return true
		}
	}
	return false
}

// Content returns the text that appeared directly inside the element.
func (n Node) Content() string { return n.tree.nodes[n.id].content.String() }

// Parent returns the enclosing element; ok is false for the root.
func (n Node) Parent() (Node, bool) {
	p := n.tree.nodes[n.id].parent
	if p == noParent {
		return Node{}, false
	}
	return Node{tree: n.tree, id: p}, true
}

// Children returns the element's children in document order.
func (n Node) Children() []Node {
	ids := n.tree.nodes[n.id].children
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{tree: n.tree, id: id}
	}
	return out
}

// Walk visits n and its descendants depth first, children in order.
// Returning false from fn skips the node's descendants.
func (n Node) Walk(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// Find returns the first descendant (depth first) tagged tag.
func (n Node) Find(tag string) (Node, bool) {
	var found Node
	var ok bool
	n.Walk(func(c Node) bool {
		if ok {
			return false
		}
		if c.id != n.id && c.Tag() == tag {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok
}

// Text concatenates the content of n and its descendants, depth first.
// Text that follows a child element is reported before that child.
func (n Node) Text() string {
	var b strings.Builder
	n.Walk(func(c Node) bool {
		b.WriteString(c.Content())
		return true
	})
	return b.String()
}
