// Package markdown provides the building blocks for rendered vault
// documents: the metadata block codec, tag and wiki-link formatters,
// and the type-aware transforms for ticket fields.
package markdown

import (
	"strings"
	"time"
)

// Delimiter marks the top and bottom of a metadata block.
const Delimiter = "---"

// SyncedField is the volatile timestamp field appended to every
// metadata block. Persistence strips it before content comparison.
const SyncedField = "synced"

// syncedFormat matches the original vault convention, minute precision.
const syncedFormat = "2006-01-02 15:04"

// Field is one entry of a metadata block. Value is a string, []string,
// bool or time.Time; nil is allowed and renders nothing.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered metadata mapping. Order is preserved across a
// build/parse round trip.
type Fields []Field

// GetString returns the string form of a named field. The second
// return is false when the field is absent or not a scalar string.
func (f Fields) GetString(name string) (string, bool) {
	for _, fl := range f {
		if fl.Name == name {
			s, ok := fl.Value.(string)
			return s, ok
		}
	}
	return "", false
}

// GetList returns a named list field.
func (f Fields) GetList(name string) ([]string, bool) {
	for _, fl := range f {
		if fl.Name == name {
			l, ok := fl.Value.([]string)
			return l, ok
		}
	}
	return nil, false
}

// Build renders the fields as a delimited metadata block. Nil values,
// zero times and empty lists are omitted. A synced timestamp is
// appended unless omitSynced is set; now supplies the clock so callers
// and tests control it.
func Build(fields Fields, omitSynced bool, now time.Time) string {
	var b strings.Builder
	b.WriteString(Delimiter)
	b.WriteString("\n")
	for _, fl := range fields {
		line, ok := renderField(fl)
		if !ok {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if !omitSynced {
		b.WriteString(SyncedField)
		b.WriteString(": ")
		b.WriteString(now.Format(syncedFormat))
		b.WriteString("\n")
	}
	b.WriteString(Delimiter)
	b.WriteString("\n")
	return b.String()
}

func renderField(fl Field) (string, bool) {
	switch v := fl.Value.(type) {
	case nil:
		return "", false
	case string:
		return fl.Name + ": " + quoteIfNeeded(v), true
	case []string:
		if len(v) == 0 {
			return "", false
		}
		return fl.Name + ": [" + strings.Join(v, ", ") + "]", true
	case bool:
		if v {
			return fl.Name + ": true", true
		}
		return fl.Name + ": false", true
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return fl.Name + ": " + v.Format("2006-01-02"), true
	default:
		return "", false
	}
}

// quoteIfNeeded wraps values that would be ambiguous on a key: value
// line. The parser unwraps exactly this quoting.
func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, "\":\n") {
		return "\"" + strings.ReplaceAll(s, "\n", " ") + "\""
	}
	return s
}

// Parse splits a document into its metadata block and body. It is the
// left inverse of Build for the values Build can produce. Input that
// does not open with the delimiter returns empty fields and the whole
// input, unchanged, as the body.
func Parse(content string) (Fields, string) {
	rest, found := strings.CutPrefix(content, Delimiter+"\n")
	if !found {
		return nil, content
	}

	var fields Fields
	body := ""
	lines := strings.Split(rest, "\n")
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == Delimiter {
			body = strings.Join(lines[i+1:], "\n")
			break
		}
		name, raw, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields = append(fields, Field{
			Name:  strings.TrimSpace(name),
			Value: parseValue(strings.TrimSpace(raw)),
		})
	}
	return fields, body
}

func parseValue(raw string) any {
	switch {
	case strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"):
		inner := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
		if strings.TrimSpace(inner) == "" {
			return []string{}
		}
		parts := strings.Split(inner, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		return parts
	case strings.EqualFold(raw, "true"):
		return true
	case strings.EqualFold(raw, "false"):
		return false
	case len(raw) >= 2 && strings.HasPrefix(raw, "\"") && strings.HasSuffix(raw, "\""):
		return strings.TrimSuffix(strings.TrimPrefix(raw, "\""), "\"")
	default:
		return raw
	}
}
