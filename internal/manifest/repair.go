package manifest

import (
	"regexp"
	"strings"
	"unicode"
)

// RepairRule is one textual fix for a manifest that failed to decode.
// Apply must be pure: same input, same output, no side effects.
type RepairRule struct {
	Name  string
	Apply func(string) string
}

// RepairRules is the ordered repair pipeline run once before the second decode attempt.
var RepairRules = []RepairRule{
	{Name: "collapse-whitespace", Apply: collapseWhitespace},
	{Name: "trailing-comma", Apply: removeTrailingCommas},
	{Name: "array-sibling-comma", Apply: insertArraySiblingCommas},
}

// Repair runs every rule in order and returns the result along with the names
// of the rules that changed the text.
func Repair(text string) (string, []string) {
	var applied []string
	for _, rule := range RepairRules {
		next := rule.Apply(text)
		if next != text {
			applied = append(applied, rule.Name)
		}
		text = next
	}
	return text, applied
}

var quotedString = regexp.MustCompile(`(?s)"(?:[^"\\]|\\.)*"`)

var trailingComma = regexp.MustCompile(`,\s*}`)

type segment struct {
	text   string
	quoted bool
}

// splitQuoted cuts text into alternating runs of quoted string literals and everything else.
func splitQuoted(text string) []segment {
	var out []segment
	last := 0
	for _, loc := range quotedString.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			out = append(out, segment{text: text[last:loc[0]]})
		}
		out = append(out, segment{text: text[loc[0]:loc[1]], quoted: true})
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, segment{text: text[last:]})
	}
	return out
}

func joinSegments(segments []segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.text)
	}
	return b.String()
}

// mapUnquoted applies fn to every run outside string literals.
func mapUnquoted(text string, fn func(string) string) string {
	segments := splitQuoted(text)
	for i := range segments {
		if !segments[i].quoted {
			segments[i].text = fn(segments[i].text)
		}
	}
	return joinSegments(segments)
}

func collapseWhitespace(text string) string {
	return mapUnquoted(text, func(s string) string {
		return strings.Join(strings.Fields(s), "")
	})
}

func removeTrailingCommas(text string) string {
	return mapUnquoted(text, func(s string) string {
		return trailingComma.ReplaceAllString(s, "}")
	})
}

// insertArraySiblingCommas turns `]"key":` into `],"key":`.
func insertArraySiblingCommas(text string) string {
	segments := splitQuoted(text)
	for i := 0; i+1 < len(segments); i++ {
		if segments[i].quoted || !segments[i+1].quoted {
			continue
		}
		body := strings.TrimRightFunc(segments[i].text, unicode.IsSpace)
		if !strings.HasSuffix(body, "]") {
			continue
		}
		if !followedByColon(segments, i+2) {
			continue
		}
		segments[i].text = body + "," + segments[i].text[len(body):]
	}
	return joinSegments(segments)
}

func followedByColon(segments []segment, idx int) bool {
	if idx >= len(segments) || segments[idx].quoted {
		return false
	}
	return strings.HasPrefix(strings.TrimLeftFunc(segments[idx].text, unicode.IsSpace), ":")
}
