package airtable

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a schema field for encoding/decoding purposes.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindCheckbox
	KindDate
	KindURL
	KindTextList
)

// Field describes one column of an external table.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the declarative field list for one entity. Default-filling and
// list coercion are driven entirely by this data, so per-entity behaviour
// needs no per-entity code.
type Schema []Field

// Fields is the flat key-value representation the external store exchanges.
type Fields map[string]any

const listSeparator = ", "

// Encode prepares fields for the external store: absent (nil or missing)
// values are dropped entirely so they are never sent, URL values are coerced
// to plain text, numeric strings become numbers, and list values are joined
// into a single delimited string. Joining is lossy when an element itself
// contains the delimiter; the wire format is fixed by the existing base, so
// that trade-off stands.
func (s Schema) Encode(in Fields) Fields {
	out := make(Fields, len(in))
	for _, f := range s {
		v, ok := in[f.Name]
		if !ok || v == nil {
			continue
		}
		switch f.Kind {
		case KindTextList:
			out[f.Name] = joinList(v)
		case KindNumber:
			out[f.Name] = coerceNumber(v)
		case KindURL:
			out[f.Name] = fmt.Sprint(v)
		default:
			out[f.Name] = v
		}
	}
	return out
}

// Decode normalises a raw external row against the schema. The store is
// schemaless and tolerant; the decoder must not be: every schema field
// missing from the row is synthesised with a default (empty list for list
// fields, empty string for textual fields), and a list field delivered as a
// plain string is split on "," with per-element trimming, dropping empties.
func (s Schema) Decode(raw Fields) Fields {
	out := make(Fields, len(raw)+len(s))
	for k, v := range raw {
		out[k] = v
	}
	for _, f := range s {
		v, ok := out[f.Name]
		switch f.Kind {
		case KindTextList:
			if !ok || v == nil {
				out[f.Name] = []string{}
			} else if str, isStr := v.(string); isStr {
				out[f.Name] = splitList(str)
			}
		case KindText, KindDate, KindURL:
			if !ok || v == nil {
				out[f.Name] = ""
			}
		}
	}
	return out
}

func joinList(v any) string {
	var elems []string
	switch list := v.(type) {
	case []string:
		elems = list
	case []any:
		elems = make([]string, 0, len(list))
		for _, e := range list {
			elems = append(elems, fmt.Sprint(e))
		}
	default:
		return fmt.Sprint(v)
	}

	// Filter into a fresh slice; elems may alias the caller's backing array.
	kept := make([]string, 0, len(elems))
	for _, e := range elems {
		if e != "" {
			kept = append(kept, e)
		}
	}
	return strings.Join(kept, listSeparator)
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func coerceNumber(v any) any {
	if s, ok := v.(string); ok {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n
		}
	}
	return v
}
