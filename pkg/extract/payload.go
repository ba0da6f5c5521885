package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Field is one key/value pair from a lookup provider payload. Keys and
// values are untyped strings; spelling and casing vary by provider.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Payload is an ordered sequence of provider fields. Order matters: carrier
// inference takes the first match in payload iteration order.
type Payload []Field

// Get returns the value of the first field whose key equals k
// case-insensitively, and whether it was present.
func (p Payload) Get(k string) (string, bool) {
	for _, f := range p {
		if strings.EqualFold(f.Key, k) {
			return f.Value, true
		}
	}
	return "", false
}

// ParsePayload converts a raw provider response body into a Payload.
// Providers return either a flat JSON object or free text of "Key: Value"
// lines; both shapes parse into the same ordered record. A JSON object's
// field order is preserved as sent by the provider.
func ParsePayload(raw []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '{' {
		return parseJSONPayload(trimmed)
	}
	return ParsePayloadText(string(trimmed)), nil
}

// parseJSONPayload decodes a flat JSON object into a Payload, walking the
// token stream so the provider's field order is kept. Nested values and
// non-string scalars are flattened to their string form.
func parseJSONPayload(raw []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding payload JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("payload JSON is not an object")
	}

	var p Payload
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding payload key: %w", err)
		}
		key, _ := keyTok.(string)

		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, fmt.Errorf("decoding payload value for %q: %w", key, err)
		}
		p = append(p, Field{Key: key, Value: stringifyValue(val)})
	}
	return p, nil
}

func stringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// ParsePayloadText parses "Key: Value" delimited free text, one field per
// line. Lines without a colon are ignored.
func ParsePayloadText(text string) Payload {
	var p Payload
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		p = append(p, Field{Key: key, Value: strings.TrimSpace(value)})
	}
	return p
}

// PayloadFromMap builds a Payload from a plain map. Map iteration order is
// not defined, so keys are sorted for determinism; callers that care about
// provider order should use ParsePayload on the raw body instead.
func PayloadFromMap(m map[string]string) Payload {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	p := make(Payload, 0, len(m))
	for _, k := range keys {
		p = append(p, Field{Key: k, Value: m[k]})
	}
	return p
}
