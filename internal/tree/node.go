// Package tree reconstructs the OID hierarchy implied by a flat record mapping.
package tree

import (
	"encoding/json"

	"github.com/dbsmedya/oidtree/internal/record"
)

// FieldChildren is the key under which a node's children are serialized.
const FieldChildren = "children"

// Node is a record placed in the tree. Record aliases the caller's record;
// Children is owned by the node.
type Node struct {
	Key      string
	Record   record.Record
	Children []*Node
}

func newNode(key string, rec record.Record) *Node {
	return &Node{
		Key:      key,
		Record:   rec,
		Children: []*Node{},
	}
}

// OID returns the node's dotted path, or "" when it has none.
func (n *Node) OID() string {
	oid, _ := n.Record.OID()
	return oid
}

// Name returns the node's display name.
func (n *Node) Name() string {
	return n.Record.Name()
}

// Fields returns the node's record fields plus its children, the shape in
// which the node is serialized. The returned map is a fresh copy.
func (n *Node) Fields() map[string]any {
	out := make(map[string]any, len(n.Record)+1)
	for k, v := range n.Record {
		out[k] = v
	}
	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	out[FieldChildren] = children
	return out
}

// MarshalJSON encodes the node as its record fields with a "children" array.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Fields())
}

// Walk visits n and its descendants in preorder. Returning false from fn
// skips the node's subtree.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	if n == nil {
		return
	}

	type item struct {
		node  *Node
		depth int
	}
	stack := []item{{node: n}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(it.node, it.depth) {
			continue
		}
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{node: it.node.Children[i], depth: it.depth + 1})
		}
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Depth returns the number of levels below n (0 for a leaf).
func (n *Node) Depth() int {
	maxDepth := 0
	n.Walk(func(_ *Node, depth int) bool {
		if depth > maxDepth {
			maxDepth = depth
		}
		return true
	})
	return maxDepth
}

// Keys returns the record keys of the subtree in preorder.
func (n *Node) Keys() []string {
	var keys []string
	n.Walk(func(node *Node, _ int) bool {
		keys = append(keys, node.Key)
		return true
	})
	return keys
}
