// Package search runs filtered queries over a reconstructed OID tree.
package search

import (
	"strings"

	"github.com/dbsmedya/oidtree/internal/logger"
	"github.com/dbsmedya/oidtree/internal/record"
	"github.com/dbsmedya/oidtree/internal/tree"
)

// MatchFields are the record fields a query is matched against.
var MatchFields = []string{record.FieldName, record.FieldDescription, record.FieldNodeType}

// Match is a snapshot of a matching node's fields, minus excluded ones.
type Match map[string]any

// FieldSet builds an exclusion set from field names.
func FieldSet(fields ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// DefaultExclude drops children and the object type/class display fields,
// keeping results flat.
func DefaultExclude() map[string]struct{} {
	return FieldSet(tree.FieldChildren, record.FieldObjectType, record.FieldClass)
}

// NormalizeQuery case-folds a user-supplied term. Search expects a
// normalized query.
func NormalizeQuery(q string) string {
	return strings.ToLower(q)
}

// Matches reports whether query occurs in the node's name, description or
// node type, ignoring case in the node's fields. Missing fields count as
// empty, so the empty query matches every node.
func Matches(n *tree.Node, query string) bool {
	for _, field := range MatchFields {
		if strings.Contains(strings.ToLower(n.Record.Text(field)), query) {
			return true
		}
	}
	return false
}

// Searcher runs queries with a fixed exclusion set.
type Searcher struct {
	exclude map[string]struct{}
	log     *logger.Logger
}

// NewSearcher creates a Searcher. A nil exclude set excludes nothing.
func NewSearcher(exclude map[string]struct{}, log *logger.Logger) *Searcher {
	return &Searcher{
		exclude: exclude,
		log:     logger.OrNop(log),
	}
}

// Search walks root in preorder and returns a snapshot of every matching
// node. Matching does not prune: descendants of a non-matching node are
// still visited. Exclusions apply only to the emitted snapshot, never to
// the traversal. A nil root yields no matches.
func (s *Searcher) Search(root *tree.Node, query string) []Match {
	matches := []Match{}
	visited := 0

	root.Walk(func(n *tree.Node, _ int) bool {
		visited++
		if Matches(n, query) {
			matches = append(matches, s.snapshot(n))
		}
		return true
	})

	s.log.WithQuery(query).Debugw("search complete", "visited", visited, "matches", len(matches))
	return matches
}

func (s *Searcher) snapshot(n *tree.Node) Match {
	fields := n.Fields()
	for f := range s.exclude {
		delete(fields, f)
	}
	return Match(fields)
}

// Search runs a single query over root, dropping excludeFields from each
// emitted match.
func Search(root *tree.Node, query string, excludeFields map[string]struct{}) []Match {
	return NewSearcher(excludeFields, nil).Search(root, query)
}
