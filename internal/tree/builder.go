package tree

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/dbsmedya/oidtree/internal/logger"
	"github.com/dbsmedya/oidtree/internal/oid"
	"github.com/dbsmedya/oidtree/internal/record"
)

// Result is the outcome of a single build.
type Result struct {
	Root    *Node           // nil when the root cannot anchor a tree
	Visited []string        // keys placed during the pass, in placement order
	Orphans []record.Record // records without a usable oid, one per distinct value
}

// Pass holds the state of one build pass over a record mapping: which
// records have been placed, and which could never be placed.
//
// Building several roots on the same Pass shares the visited set, so a
// record placed under one root is never placed again under another.
// Use a new Pass (or Build) for independent trees.
type Pass struct {
	entries []record.Entry
	index   map[string]int
	visited *roaring.Bitmap
	order   []string
	orphans []record.Record
	log     *logger.Logger
}

// Option configures a Pass.
type Option func(*Pass)

// WithLogger attaches a logger; builds log at debug level only.
func WithLogger(l *logger.Logger) Option {
	return func(p *Pass) {
		p.log = l
	}
}

// NewPass snapshots records and collects its orphans.
func NewPass(records *record.Records, opts ...Option) *Pass {
	entries := records.Entries()
	p := &Pass{
		entries: entries,
		index:   make(map[string]int, len(entries)),
		visited: roaring.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = logger.OrNop(p.log)

	for _, e := range entries {
		p.index[e.Key] = e.Index
	}
	p.orphans = collectOrphans(entries)

	return p
}

// Build reconstructs the subtree anchored at rootKey.
//
// It returns nil when rootKey is unknown, has no usable oid, or was already
// placed in this pass. Otherwise every unplaced record whose oid lies
// strictly below the root's is attached, depth first, with siblings in
// mapping order. A record is attached under the first unplaced ancestor
// whose scan reaches it, so each record is placed at most once.
func (p *Pass) Build(rootKey string) *Node {
	log := p.log.WithRoot(rootKey)

	idx, ok := p.index[rootKey]
	if !ok {
		log.Debug("root not found in record mapping")
		return nil
	}
	if p.visited.Contains(uint32(idx)) {
		log.Debug("root already placed in this pass")
		return nil
	}
	rootEntry := p.entries[idx]
	rootOID, ok := rootEntry.Record.OID()
	if !ok {
		log.Debug("root has no oid")
		return nil
	}

	root := p.place(rootEntry)

	type frame struct {
		node *Node
		oid  string
		next int
	}
	stack := []frame{{node: root, oid: rootOID}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(p.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		e := p.entries[top.next]
		top.next++

		if p.visited.Contains(uint32(e.Index)) {
			continue
		}
		childOID, ok := e.Record.OID()
		if !ok || !oid.IsDescendant(childOID, top.oid) {
			continue
		}

		child := p.place(e)
		top.node.Children = append(top.node.Children, child)
		stack = append(stack, frame{node: child, oid: childOID})
	}

	log.Debugw("tree built", "nodes", root.Count(), "placed_total", len(p.order))
	return root
}

func (p *Pass) place(e record.Entry) *Node {
	p.visited.Add(uint32(e.Index))
	p.order = append(p.order, e.Key)
	return newNode(e.Key, e.Record)
}

// Visited returns the keys placed so far, in placement order.
func (p *Pass) Visited() []string {
	return append([]string(nil), p.order...)
}

// IsVisited reports whether key has been placed in this pass.
func (p *Pass) IsVisited(key string) bool {
	idx, ok := p.index[key]
	return ok && p.visited.Contains(uint32(idx))
}

// Unplaced returns the keys of records with an oid that no tree in this
// pass has claimed yet, in mapping order.
func (p *Pass) Unplaced() []string {
	var keys []string
	for _, e := range p.entries {
		if e.Record.HasOID() && !p.visited.Contains(uint32(e.Index)) {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Orphans returns the records that carry no usable oid.
func (p *Pass) Orphans() []record.Record {
	return append([]record.Record(nil), p.orphans...)
}

// Result packages root with the pass's visited keys and orphans.
func (p *Pass) Result(root *Node) Result {
	return Result{
		Root:    root,
		Visited: p.Visited(),
		Orphans: p.Orphans(),
	}
}

// Build runs a fresh pass over records and builds the tree at rootKey.
func Build(records *record.Records, rootKey string, opts ...Option) Result {
	p := NewPass(records, opts...)
	return p.Result(p.Build(rootKey))
}

// BuildAll builds one tree per root key on a single shared pass.
// Roots that cannot anchor a tree (or were already placed) are skipped.
func BuildAll(records *record.Records, rootKeys []string, opts ...Option) ([]*Node, *Pass) {
	p := NewPass(records, opts...)
	var trees []*Node
	for _, key := range rootKeys {
		if root := p.Build(key); root != nil {
			trees = append(trees, root)
		}
	}
	return trees, p
}

// collectOrphans returns every record lacking a usable oid, recording
// structurally equal records only once.
func collectOrphans(entries []record.Entry) []record.Record {
	var orphans []record.Record
	for _, e := range entries {
		if e.Record.HasOID() {
			continue
		}
		seen := false
		for _, o := range orphans {
			if o.Equal(e.Record) {
				seen = true
				break
			}
		}
		if !seen {
			orphans = append(orphans, e.Record)
		}
	}
	return orphans
}
