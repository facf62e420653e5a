package providers

import (
	"encoding/json"
	"log"
	"strconv"
)

// Text is a string field the provider does not always send as a string.
// Numbers and booleans are kept in their JSON spelling; objects, arrays and
// null decode to "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Text(scalarText(v))
	return nil
}

// TextList is a list of strings that tolerates mistyped items and a
// non-array value. Items that are not scalars are skipped.
type TextList []string

func (l *TextList) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	items, ok := v.([]any)
	if !ok {
		*l = nil
		return nil
	}
	out := make(TextList, 0, len(items))
	for _, item := range items {
		if s := scalarText(item); s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// Entries decodes a JSON array one element at a time. An element that does
// not fit T is dropped on its own; a value that is not an array decodes to
// no entries.
type Entries[T any] []T

func (e *Entries[T]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		if string(data) != "null" {
			log.Printf("Ignoring provider list that is not an array: %v", err)
		}
		*e = nil
		return nil
	}

	out := make(Entries[T], 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			log.Printf("Dropping unreadable provider entry %d: %v", i, err)
			continue
		}
		out = append(out, v)
	}
	*e = out
	return nil
}

func scalarText(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
