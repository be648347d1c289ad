package structured

import (
	"strings"
)

// Seed returns the opening of a single key object, followed by prefix.
func Seed(key, prefix string) string {
	return `{"` + key + `": "` + prefix
}

// Sanitize rewrites the value of key so that it can be decoded: inner
// double quotes become single quotes, raw control characters are escaped
// and invalid escapes are doubled. The quotes around the key and the
// value's own closing quote are kept.
func Sanitize(text, key string) string {
	start := valueStart(text, key)
	if start < 0 {
		return text
	}

	end := closingQuote(text, start)
	region := text[start:]
	if end >= 0 {
		region = text[start:end]
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	b.WriteString(text[:start])
	b.WriteString(sanitizeValue(region))
	if end >= 0 {
		b.WriteString(text[end:])
	}
	return b.String()
}

// valueStart returns the index just past the opening quote of key's value,
// or -1.
func valueStart(text, key string) int {
	needle := `"` + key + `"`
	offset := 0
	for {
		i := strings.Index(text[offset:], needle)
		if i < 0 {
			return -1
		}
		j := skipSpace(text, offset+i+len(needle))
		if j < len(text) && text[j] == ':' {
			j = skipSpace(text, j+1)
			if j < len(text) && text[j] == '"' {
				return j + 1
			}
		}
		offset += i + 1
	}
}

// closingQuote finds the quote that closes the value: the last unescaped
// quote followed only by whitespace and a closing brace. Braces in text
// after the object are skipped. It returns -1 when the value was never
// closed.
func closingQuote(text string, start int) int {
	for brace := strings.LastIndexByte(text, '}'); brace > start; brace = strings.LastIndexByte(text[:brace], '}') {
		i := brace - 1
		for i >= start && isSpace(text[i]) {
			i--
		}
		if i < start || text[i] != '"' {
			continue
		}

		backslashes := 0
		for j := i - 1; j >= start && text[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return i
		}
	}
	return -1
}

func sanitizeValue(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '"':
			b.WriteByte('\'')
		case c == '\\':
			if i+1 >= len(value) {
				b.WriteString(`\\`)
				continue
			}
			next := value[i+1]
			switch next {
			case '"', '\'':
				b.WriteByte('\'')
				i++
			case '\\', '/', 'b', 'f', 'n', 'r', 't':
				b.WriteByte(c)
				b.WriteByte(next)
				i++
			case 'u':
				if i+5 < len(value) && isHex(value[i+2:i+6]) {
					b.WriteString(value[i : i+6])
					i += 5
				} else {
					b.WriteString(`\\`)
				}
			default:
				b.WriteString(`\\`)
			}
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20:
			b.WriteString(`\u00`)
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0xf])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

const hexDigits = "0123456789abcdef"

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune("0123456789abcdefABCDEF", rune(s[i])) {
			return false
		}
	}
	return true
}

func skipSpace(text string, i int) int {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}
