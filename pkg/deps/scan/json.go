package scan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one key/value pair of a JSON object, with the value coerced to text.
type Entry struct {
	Key   string
	Value string
}

// Entries walks a JSON object and returns its members in document order.
// Strings are unquoted; numbers, booleans and null keep their literal text;
// nested arrays and objects are returned as compact JSON. A value that is
// not an object yields no entries.
func Entries(raw []byte) ([]Entry, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var out []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: key, Value: literal(val)})
	}
	return out, nil
}

func literal(val json.RawMessage) string {
	if len(val) > 0 && val[0] == '"' {
		var s string
		if json.Unmarshal(val, &s) == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if json.Compact(&buf, val) == nil {
		return buf.String()
	}
	return strings.TrimSpace(string(val))
}
