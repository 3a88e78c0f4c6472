// Package markup translates between Jira wiki markup and markdown.
//
// Both directions apply an explicit ordered list of textual rewrite
// rules. The ordering is load-bearing: strong emphasis must rewrite
// before plain emphasis, longer heading markers before shorter ones,
// and list markers before anything that could produce the same
// leading characters. Round-tripping is lossy by design.
package markup

import (
	"regexp"
	"strings"
)

// rule is a single rewrite step. Exactly one of repl or fn is used.
type rule struct {
	re   *regexp.Regexp
	repl string
	fn   func(match string) string
}

func (r rule) apply(text string) string {
	if r.fn != nil {
		return r.re.ReplaceAllStringFunc(text, r.fn)
	}
	return r.re.ReplaceAllString(text, r.repl)
}

var (
	reNumbered    = regexp.MustCompile(`(?m)^#+[ \t]+`)
	reHeading     = regexp.MustCompile(`(?m)^h([1-6])\.[ \t]*(.*)$`)
	reCodeBlock   = regexp.MustCompile(`(?s)\{code(?::([^}\n]*))?\}\n?(.*?)\{code\}`)
	reInlineSpan  = regexp.MustCompile(`\{\{(.*?)\}\}`)
	reBold        = regexp.MustCompile(`(?m)(^|[^\w*])\*([^*\n]+)\*([^\w*]|$)`)
	reItalic      = regexp.MustCompile(`(?m)(^|[^\w_])_([^_\n]+)_([^\w_]|$)`)
	reStrike      = regexp.MustCompile(`(?m)(^|[^\w-])-([^-\n]+)-([^\w-]|$)`)
	rePipedLink   = regexp.MustCompile(`\[([^\]|]+)\|([^\]]+)\]`)
	reBareLink    = regexp.MustCompile(`(?m)\[([^\]|()]+)\]([^(]|$)`)
	reImage       = regexp.MustCompile(`!([^!\s|]+)(\|[^!]*)?!`)
	reBullets     = regexp.MustCompile(`(?m)^(\*+)[ \t]+`)
	reRuler       = regexp.MustCompile(`(?m)^-{4,}[ \t]*$`)
	reTableHeader = regexp.MustCompile(`(?m)^\|\|(.*)\|\|[ \t]*$`)
	reTableRow    = regexp.MustCompile(`(?m)^\|([^|].*)\|[ \t]*$`)
	reCheckbox    = strings.NewReplacer("(/)", "[x]", "(x)", "[ ]", "( )", "[ ]")
)

// toMarkdownRules rewrites Jira wiki markup into markdown. Numbered
// lists convert ahead of headings: both produce or consume a leading
// '#' run, and a heading emitted first would be re-matched as a list
// item.
var toMarkdownRules = []rule{
	{re: reNumbered, repl: "1. "},
	{re: reHeading, fn: func(m string) string {
		sub := reHeading.FindStringSubmatch(m)
		level := int(sub[1][0] - '0')
		return strings.Repeat("#", level) + " " + sub[2]
	}},
	{re: reCodeBlock, fn: func(m string) string {
		sub := reCodeBlock.FindStringSubmatch(m)
		lang, body := sub[1], sub[2]
		if body != "" && !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		return "```" + lang + "\n" + body + "```"
	}},
	{re: reInlineSpan, repl: "`$1`"},
	{re: reBold, repl: "$1**$2**$3"},
	{re: reItalic, repl: "$1*$2*$3"},
	{re: reStrike, repl: "$1~~$2~~$3"},
	{re: rePipedLink, repl: "[$1]($2)"},
	{re: reBareLink, repl: "[$1]($1)$2"},
	{re: reImage, repl: "![]($1)"},
	{re: reBullets, fn: func(m string) string {
		level := strings.Count(m, "*")
		return strings.Repeat("  ", level-1) + "- "
	}},
	{re: reRuler, repl: "---"},
	{re: reTableHeader, fn: func(m string) string {
		sub := reTableHeader.FindStringSubmatch(m)
		return "| " + joinCells(sub[1], "||") + " |"
	}},
	{re: reTableRow, fn: func(m string) string {
		sub := reTableRow.FindStringSubmatch(m)
		return "| " + joinCells(sub[1], "|") + " |"
	}},
}

// joinCells re-delimits table cells with single padded pipes.
func joinCells(row, sep string) string {
	cells := strings.Split(row, sep)
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return strings.Join(cells, " | ")
}

// ToMarkdown converts Jira wiki markup to markdown. It is total:
// malformed or unbalanced markup passes through best-effort and the
// empty string maps to itself.
func ToMarkdown(text string) string {
	if text == "" {
		return ""
	}
	for _, r := range toMarkdownRules {
		text = r.apply(text)
	}
	return strings.TrimSpace(reCheckbox.Replace(text))
}

var (
	reMdFence = regexp.MustCompile("(?s)```([A-Za-z0-9+#-]*)\r?\n(.*?)```")
	reMdCode  = regexp.MustCompile("`([^`\n]+)`")
	// Strong emphasis must win over plain emphasis: the plain
	// delimiter is a prefix of the strong one, so both live in one
	// alternation tried longest-first.
	reMdEmphasis = regexp.MustCompile(`\*\*([^*\n]+)\*\*|\*([^*\n]+)\*`)
	reMdStrike   = regexp.MustCompile(`~~([^~\n]+)~~`)
	// Same trick for links: an image reference contains a link
	// reference, so the image alternative is tried first to keep the
	// two from overlapping.
	reMdLink    = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\n]+)\)|\[([^\]\n]*)\]\(([^)\n]+)\)`)
	reMdBullets = regexp.MustCompile(`(?m)^([ \t]*)-[ \t]+`)
	reMdCheck   = strings.NewReplacer("[x]", "(/)", "[ ]", "( )")
)

// headingRules are ordered level 6 down to 1 so a shorter marker never
// matches the prefix of a longer one.
var headingRules = func() []rule {
	rules := make([]rule, 0, 6)
	for level := 6; level >= 1; level-- {
		re := regexp.MustCompile(`(?m)^` + strings.Repeat("#", level) + `[ \t]?(.*)$`)
		rules = append(rules, rule{re: re, repl: "h" + string(rune('0'+level)) + `. $1`})
	}
	return rules
}()

var toNativeRules = append(headingRules, []rule{
	{re: reMdFence, fn: func(m string) string {
		sub := reMdFence.FindStringSubmatch(m)
		lang, body := sub[1], sub[2]
		if body != "" && !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		open := "{code}"
		if lang != "" {
			open = "{code:" + lang + "}"
		}
		return open + "\n" + body + "{code}"
	}},
	{re: reMdCode, repl: "{{$1}}"},
	{re: reMdEmphasis, fn: func(m string) string {
		sub := reMdEmphasis.FindStringSubmatch(m)
		if sub[1] != "" {
			return "*" + sub[1] + "*"
		}
		return "_" + sub[2] + "_"
	}},
	{re: reMdStrike, repl: "-$1-"},
	{re: reMdLink, fn: func(m string) string {
		sub := reMdLink.FindStringSubmatch(m)
		if sub[2] != "" {
			return "!" + sub[2] + "!"
		}
		return "[" + sub[3] + "|" + sub[4] + "]"
	}},
	{re: reMdBullets, fn: func(m string) string {
		sub := reMdBullets.FindStringSubmatch(m)
		depth := len(strings.ReplaceAll(sub[1], "\t", "  "))/2 + 1
		return strings.Repeat("*", depth) + " "
	}},
}...)

// ToNative converts markdown back to Jira wiki markup. The reverse
// direction is intentionally partial: tables, numbered lists and
// horizontal rules pass through unchanged. Like ToMarkdown it is total
// and never fails.
func ToNative(text string) string {
	if text == "" {
		return ""
	}
	for _, r := range toNativeRules {
		text = r.apply(text)
	}
	return strings.TrimSpace(reMdCheck.Replace(text))
}
