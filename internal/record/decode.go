package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedInput is returned when input cannot be read as a record mapping.
var ErrMalformedInput = errors.New("malformed record mapping")

// Decode reads a JSON object whose values are JSON objects and returns the
// records in document order. Numbers are kept as json.Number.
func Decode(r io.Reader) (*Records, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrMalformedInput)
	}

	records := NewRecords()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrMalformedInput, tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: record %q: %v", ErrMalformedInput, key, err)
		}
		rec, err := UnmarshalRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", key, err)
		}
		records.Set(key, rec)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after mapping", ErrMalformedInput)
	}

	return records, nil
}

// Unmarshal is Decode over a byte slice.
func Unmarshal(data []byte) (*Records, error) {
	return Decode(bytes.NewReader(data))
}

// UnmarshalRecord decodes a single JSON object into a Record.
// A JSON null yields an empty record.
func UnmarshalRecord(raw []byte) (Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '{' && !bytes.Equal(trimmed, []byte("null"))) {
		return nil, fmt.Errorf("%w: record value must be an object", ErrMalformedInput)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}
