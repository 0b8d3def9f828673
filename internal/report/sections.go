package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Reserved top-level keys of a compiled MIB document.
const (
	KeyImports     = "imports"
	KeyMeta        = "meta"
	KeyRevisions   = "revisions"
	KeyLastUpdated = "lastupdated"
)

// ImportsTitle is the title of the section listing required imports.
const ImportsTitle = "Required Imports"

// ImportsColumns are the column headings of the imports section.
var ImportsColumns = []string{"Class", "Element"}

// lastUpdatedLayout is the SMI ExtUTCTime form without its trailing Z.
const lastUpdatedLayout = "200601021504"

// Row is one label/value line of a section.
type Row struct {
	Label string
	Value string
}

// Section is a titled table. Columns is set only when the table carries
// its own headings.
type Section struct {
	Title   string
	Columns []string
	Rows    []Row
}

// Sections groups flattened fields into tables. Imports come first as one
// Class/Element table; every other top-level key except meta becomes its
// own section, in first-seen order. Revision lists are skipped and
// lastupdated timestamps are rendered in UTC.
func Sections(fields []Field) []Section {
	var sections []Section

	imports := Section{Title: ImportsTitle, Columns: ImportsColumns}
	for _, f := range fields {
		head, rest := splitKey(f.Key)
		if head != KeyImports || rest == "" {
			continue
		}
		for _, v := range f.Values {
			imports.Rows = append(imports.Rows, Row{Label: rest, Value: formatValue(v)})
		}
	}
	if len(imports.Rows) > 0 {
		sections = append(sections, imports)
	}

	index := make(map[string]int)
	for _, f := range fields {
		head, rest := splitKey(f.Key)
		if head == KeyImports || head == KeyMeta {
			continue
		}
		if lastPart(rest) == KeyRevisions {
			continue
		}

		i, ok := index[head]
		if !ok {
			i = len(sections)
			index[head] = i
			sections = append(sections, Section{Title: head})
		}

		label := capitalize(rest)
		if rest == "" {
			label = "Value"
		}
		if lastPart(rest) == KeyLastUpdated {
			for _, v := range f.Values {
				sections[i].Rows = append(sections[i].Rows, Row{Label: label, Value: FormatLastUpdated(formatValue(v))})
			}
			continue
		}
		for _, v := range f.Values {
			sections[i].Rows = append(sections[i].Rows, Row{Label: label, Value: formatValue(v)})
		}
	}

	return sections
}

// ReadSections flattens a compiled MIB document and groups it into sections.
func ReadSections(r io.Reader) ([]Section, error) {
	fields, err := Flatten(r)
	if err != nil {
		return nil, err
	}
	return Sections(fields), nil
}

// FormatLastUpdated converts "YYYYMMDDHHMMZ" to "YYYY-MM-DD HH:MM:SS UTC".
// Values in any other form are returned unchanged.
func FormatLastUpdated(s string) string {
	t, err := time.Parse(lastUpdatedLayout, strings.TrimSuffix(s, "Z"))
	if err != nil || !strings.HasSuffix(s, "Z") {
		return s
	}
	return t.UTC().Format("2006-01-02 15:04:05") + " UTC"
}

func splitKey(key string) (head, rest string) {
	head, rest, _ = strings.Cut(key, ".")
	return head, rest
}

func lastPart(key string) string {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		return key[i+1:]
	}
	return key
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := []rune(strings.ToLower(s))
	lower[0] = []rune(strings.ToUpper(string(lower[0])))[0]
	return string(lower)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
