package record

import (
	"github.com/elliotchance/orderedmap/v2"
)

// Entry is a record together with its key and position in the mapping.
type Entry struct {
	Index  int
	Key    string
	Record Record
}

// Records is a keyed record mapping that remembers insertion order.
// Iteration order is the order in which keys were first set.
type Records struct {
	m *orderedmap.OrderedMap[string, Record]
}

// NewRecords creates an empty mapping.
func NewRecords() *Records {
	return &Records{m: orderedmap.NewOrderedMap[string, Record]()}
}

// FromPairs builds a mapping from alternating key/record arguments in order.
func FromPairs(pairs ...any) *Records {
	rs := NewRecords()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case Record:
			rs.Set(key, v)
		case map[string]any:
			rs.Set(key, Record(v))
		}
	}
	return rs
}

// Set stores r under key. Re-setting a key keeps its original position.
func (rs *Records) Set(key string, r Record) {
	rs.m.Set(key, r)
}

// Get returns the record stored under key.
func (rs *Records) Get(key string) (Record, bool) {
	if rs == nil {
		return nil, false
	}
	return rs.m.Get(key)
}

// Len returns the number of records.
func (rs *Records) Len() int {
	if rs == nil {
		return 0
	}
	return rs.m.Len()
}

// Keys returns all keys in iteration order.
func (rs *Records) Keys() []string {
	if rs == nil {
		return nil
	}
	return rs.m.Keys()
}

// Entries returns a positional snapshot of the mapping in iteration order.
func (rs *Records) Entries() []Entry {
	if rs == nil {
		return nil
	}
	entries := make([]Entry, 0, rs.m.Len())
	for el := rs.m.Front(); el != nil; el = el.Next() {
		entries = append(entries, Entry{
			Index:  len(entries),
			Key:    el.Key,
			Record: el.Value,
		})
	}
	return entries
}
