package tree

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/dbsmedya/oidtree/internal/record"
)

// ErrNoTree is returned when an artifact holds no tree at the selected path.
var ErrNoTree = errors.New("no tree in artifact")

// DefaultTreePath selects the tree in the conventional {"tree": ...} wrapper.
const DefaultTreePath = "$.tree"

// Artifact is the persisted form of a build.
type Artifact struct {
	Tree    *Node           `json:"tree"`
	Orphans []record.Record `json:"orphans,omitempty"`
}

// WriteArtifact encodes a build result as {"tree": ...}. Orphans are
// included only when includeOrphans is set. An absent tree is written as null.
func WriteArtifact(w io.Writer, res Result, indent int, includeOrphans bool) error {
	art := Artifact{Tree: res.Root}
	if includeOrphans {
		art.Orphans = res.Orphans
		if art.Orphans == nil {
			art.Orphans = []record.Record{}
		}
	}

	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", fmt.Sprintf("%*s", indent, ""))
	}
	if err := enc.Encode(art); err != nil {
		return fmt.Errorf("failed to encode tree artifact: %w", err)
	}
	return nil
}

// ReadArtifact parses a JSON document and returns the tree found at the
// JSONPath treePath (DefaultTreePath when empty). A null tree, as written
// for a root that could not be resolved, yields a nil Node and no error.
func ReadArtifact(r io.Reader, treePath string) (*Node, error) {
	if treePath == "" {
		treePath = DefaultTreePath
	}
	x, err := jp.ParseString(treePath)
	if err != nil {
		return nil, fmt.Errorf("invalid tree path %q: %w", treePath, err)
	}

	data, err := oj.Load(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrMalformedInput, err)
	}

	results := x.Get(data)
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: nothing at %s", ErrNoTree, treePath)
	}
	if results[0] == nil {
		return nil, nil
	}
	return FromValue(results[0])
}

// FromValue rebuilds a Node from a decoded JSON object with nested
// "children" arrays. Node keys are taken from the name field.
func FromValue(v any) (*Node, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: tree node must be an object, got %T", record.ErrMalformedInput, v)
	}

	rec := make(record.Record, len(obj))
	for k, val := range obj {
		if k != FieldChildren {
			rec[k] = val
		}
	}
	node := newNode(rec.Name(), rec)

	raw, ok := obj[FieldChildren]
	if !ok || raw == nil {
		return node, nil
	}
	children, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: children of %q must be an array", record.ErrMalformedInput, node.Key)
	}
	for _, c := range children {
		child, err := FromValue(c)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}
