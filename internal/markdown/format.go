package markdown

import (
	"fmt"
	"strings"
)

// FormatTag normalizes a value into a vault tag token, lowercased with
// spaces hyphenated, optionally under a namespace:
//
//	FormatTag("In Progress", "status") == "#status/in-progress"
func FormatTag(value, namespace string) string {
	tag := strings.TrimPrefix(strings.TrimSpace(value), "#")
	tag = strings.ReplaceAll(strings.ToLower(tag), " ", "-")
	if namespace != "" {
		tag = namespace + "/" + tag
	}
	return "#" + tag
}

// FormatTags renders multiple values under one namespace.
func FormatTags(values []string, namespace, sep string) string {
	tags := make([]string, 0, len(values))
	for _, v := range values {
		tags = append(tags, FormatTag(v, namespace))
	}
	return strings.Join(tags, sep)
}

// WikiLink renders a ticket key as a double-bracket reference.
func WikiLink(key string) string {
	return "[[" + key + "]]"
}

// WikiLinkWithText renders a reference with display text.
func WikiLinkWithText(key, text string) string {
	if text == "" {
		return WikiLink(key)
	}
	return "[[" + key + "|" + text + "]]"
}

// WikiLinks joins multiple key references.
func WikiLinks(keys []string, sep string) string {
	links := make([]string, 0, len(keys))
	for _, k := range keys {
		links = append(links, WikiLink(k))
	}
	return strings.Join(links, sep)
}

// InlineCode renders an inline code span. Embedded backticks are
// escaped by doubling the fence width.
func InlineCode(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if fence == "`" {
		return fence + s + fence
	}
	return fence + " " + s + " " + fence
}

// Callout renders a collapsible block-quoted callout with a typed
// header and title line.
func Callout(calloutType, title, body string) string {
	var b strings.Builder
	b.WriteString("> [!" + calloutType + "]- " + title + "\n")
	for _, line := range strings.Split(body, "\n") {
		b.WriteString("> " + line + "\n")
	}
	return b.String()
}

// FormatSize renders a byte count in human-readable binary units.
// Negative counts floor to "0 B"; non-byte units carry one decimal.
func FormatSize(size int64) string {
	if size <= 0 {
		return "0 B"
	}
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	units := []string{"KB", "MB", "GB", "TB"}
	value := float64(size)
	for i, unit := range units {
		value /= 1024
		if value < 1024 || i == len(units)-1 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
	}
	return fmt.Sprintf("%d B", size)
}
