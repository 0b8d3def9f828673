// Package report turns a compiled MIB document into titled sections of
// label/value rows for tabular output.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/oidtree/internal/record"
)

// Field is one flattened leaf: a dotted key and the values stored under it.
// Scalars flatten to a single value; lists keep their elements.
type Field struct {
	Key    string
	Values []any
}

// Flatten reads a JSON object and flattens nested objects into dotted keys
// in document order. A key seen twice keeps its first position and its last
// values.
func Flatten(r io.Reader) ([]Field, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrMalformedInput, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top-level value must be an object", record.ErrMalformedInput)
	}

	out := orderedmap.NewOrderedMap[string, []any]()
	if err := flattenObject(dec, "", out); err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrMalformedInput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", record.ErrMalformedInput)
	}

	fields := make([]Field, 0, out.Len())
	for el := out.Front(); el != nil; el = el.Next() {
		fields = append(fields, Field{Key: el.Key, Values: el.Value})
	}
	return fields, nil
}

// FlattenBytes is Flatten over a byte slice.
func FlattenBytes(data []byte) ([]Field, error) {
	return Flatten(bytes.NewReader(data))
}

// flattenObject consumes object members up to and including the closing brace.
func flattenObject(dec *json.Decoder, prefix string, out *orderedmap.OrderedMap[string, []any]) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if err := flattenValue(dec, key, out); err != nil {
			return err
		}
	}
	_, err := dec.Token()
	return err
}

func flattenValue(dec *json.Decoder, key string, out *orderedmap.OrderedMap[string, []any]) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch tok {
	case json.Delim('{'):
		return flattenObject(dec, key, out)
	case json.Delim('['):
		values := []any{}
		for dec.More() {
			var v any
			if err := dec.Decode(&v); err != nil {
				return err
			}
			values = append(values, v)
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
		out.Set(key, values)
	default:
		out.Set(key, []any{tok})
	}
	return nil
}
