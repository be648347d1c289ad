package structured

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Objects returns the top-level balanced {...} spans of text that open
// like a JSON object, with a quoted key or nothing at all. Braces inside
// JSON strings are ignored, and prose such as "{braces}" is not an object.
func Objects(text string) []string {
	var (
		objects  []string
		depth    int
		start    int
		inString bool
		escaped  bool
	)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && opensObject(text[start+1:]) {
				objects = append(objects, text[start:i+1])
			}
		}
	}
	return objects
}

func opensObject(rest string) bool {
	i := skipSpace(rest, 0)
	return i < len(rest) && (rest[i] == '"' || rest[i] == '}')
}

// Extract decodes the single object in text and returns the string value
// of key, which must be its only field.
func Extract(text, key string) (string, error) {
	objects := Objects(text)
	switch len(objects) {
	case 0:
		return "", &ShapeError{Key: key, Reason: "no balanced object", Text: text}
	case 1:
	default:
		return "", &ShapeError{Key: key, Reason: fmt.Sprintf("%d objects", len(objects)), Text: text}
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(objects[0]), &fields); err != nil {
		return "", &FieldError{Key: key, Text: text, Err: err}
	}

	value, ok := fields[key]
	if !ok {
		return "", &FieldError{Key: key, Text: text, Err: errors.New("missing key")}
	}
	if len(fields) != 1 {
		return "", &FieldError{Key: key, Text: text, Err: fmt.Errorf("expected 1 field, got %d", len(fields))}
	}
	s, ok := value.(string)
	if !ok {
		return "", &FieldError{Key: key, Text: text, Err: fmt.Errorf("value is %T, not a string", value)}
	}
	return s, nil
}

// Parse sanitizes raw and extracts key. When that fails and repair is set,
// the raw text is repaired once and parsed again.
func Parse(raw, key string, repair Repairer) (string, error) {
	value, _, err := parse(raw, key, repair)
	return value, err
}

func parse(raw, key string, repair Repairer) (string, bool, error) {
	value, err := Extract(Sanitize(raw, key), key)
	if err == nil {
		return value, false, nil
	}
	if repair == nil {
		return "", false, err
	}

	repaired, rerr := repair.Repair(raw)
	if rerr != nil {
		return "", false, &UnsalvageableError{Strategy: repair.Name(), Text: raw, Err: rerr, Cause: err}
	}

	value, err = Extract(Sanitize(repaired, key), key)
	if err != nil {
		return "", true, err
	}
	return value, true, nil
}
