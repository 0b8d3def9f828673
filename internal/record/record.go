// Package record defines the flat MIB node records consumed by the tree builder.
package record

import "reflect"

// Well-known record fields.
const (
	FieldName        = "name"
	FieldOID         = "oid"
	FieldDescription = "description"
	FieldNodeType    = "nodetype"
	FieldClass       = "class"
	FieldObjectType  = "object type"
)

// Record is one node definition as emitted by the MIB compiler.
// Fields other than the well-known ones are carried through untouched.
type Record map[string]any

// OID returns the record's dotted path. The second result is false when the
// field is missing or not a string, which makes the record unplaceable.
func (r Record) OID() (string, bool) {
	v, ok := r[FieldOID]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// HasOID reports whether the record carries a usable path.
func (r Record) HasOID() bool {
	_, ok := r.OID()
	return ok
}

// Text returns a string field, or "" when it is absent or not a string.
func (r Record) Text(field string) string {
	s, _ := r[field].(string)
	return s
}

// Name returns the display name.
func (r Record) Name() string {
	return r.Text(FieldName)
}

// Equal reports structural equality of two records.
func (r Record) Equal(other Record) bool {
	if len(r) == 0 && len(other) == 0 {
		return true
	}
	return reflect.DeepEqual(r, other)
}

// Without returns a shallow copy of r with the given fields removed.
func (r Record) Without(exclude map[string]struct{}) Record {
	out := make(Record, len(r))
	for k, v := range r {
		if _, skip := exclude[k]; skip {
			continue
		}
		out[k] = v
	}
	return out
}
