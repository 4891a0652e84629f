package report

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/modsync/internal/messages"
)

// DefaultDiffMaxLines is the default maximum number of diff lines shown per manifest.
const DefaultDiffMaxLines = 40

// ManifestDiff renders a unified diff between two manifest versions, truncated
// to maxLines. It returns "" when the contents are equal.
func ManifestDiff(key string, before string, after string, maxLines int) (string, bool) {
	if maxLines <= 0 {
		maxLines = DefaultDiffMaxLines
	}
	diff := udiff.Unified(key+" (before)", key+" (after)", before, after)
	lines := splitDiffLines(diff)
	if len(lines) <= maxLines {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := append(lines[:maxLines:maxLines], fmt.Sprintf(messages.ReportDiffTruncatedFmt, maxLines))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

// ColorDiff colours added and removed lines.
func ColorDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			lines[i] = colorLine(line, greenText)
		case strings.HasPrefix(line, "-"):
			lines[i] = colorLine(line, redText)
		}
	}
	return strings.Join(lines, "")
}

func colorLine(line string, paint func(format string, a ...interface{}) string) string {
	body := strings.TrimSuffix(line, "\n")
	if body == line {
		return paint("%s", body)
	}
	return paint("%s", body) + "\n"
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" {
		return ""
	}
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
