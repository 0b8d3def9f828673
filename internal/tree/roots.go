package tree

import (
	"strings"

	"github.com/dbsmedya/oidtree/internal/record"
)

// Roots returns the keys of top-level records: those with an oid that no
// other record's oid strictly prefixes. Keys come back in mapping order.
// Records sharing an identical oid do not prefix each other, so both are
// returned when nothing above them exists.
func Roots(records *record.Records) []string {
	entries := records.Entries()

	oids := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if s, ok := e.Record.OID(); ok {
			oids[s] = struct{}{}
		}
	}

	var roots []string
	for _, e := range entries {
		s, ok := e.Record.OID()
		if !ok {
			continue
		}
		if !hasAncestor(s, oids) {
			roots = append(roots, e.Key)
		}
	}
	return roots
}

// hasAncestor reports whether any strict dot-delimited prefix of s is in oids.
func hasAncestor(s string, oids map[string]struct{}) bool {
	for i := strings.LastIndexByte(s, '.'); i >= 0; i = strings.LastIndexByte(s[:i], '.') {
		if _, ok := oids[s[:i]]; ok {
			return true
		}
	}
	return false
}
