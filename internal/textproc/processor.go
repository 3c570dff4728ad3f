// Package textproc turns raw AI reply text into display segments,
// highlighting the interviewer keywords while stripping their markers.
package textproc

import (
	"regexp"
	"strings"

	"github.com/evalio-app/evalio-cli/internal/domain"
)

// keywordRe matches **Evalio** or "empezar", case-insensitive, including
// the marker characters.
var keywordRe = regexp.MustCompile(`(?i)(\*\*evalio\*\*|"empezar")`)

// ProcessAIMessage splits content on the keyword markers. Matched keywords
// become emphasized segments with the markers stripped and canonical casing;
// everything else is passed through verbatim, spacing included.
func ProcessAIMessage(content string) []domain.MessagePart {
	var parts []domain.MessagePart

	last := 0
	for _, loc := range keywordRe.FindAllStringIndex(content, -1) {
		if loc[0] > last {
			parts = append(parts, domain.MessagePart{Text: content[last:loc[0]]})
		}
		match := content[loc[0]:loc[1]]
		if strings.Contains(match, "**") {
			parts = append(parts, domain.MessagePart{Text: "Evalio", Emphasis: true})
		} else {
			parts = append(parts, domain.MessagePart{Text: "empezar", Emphasis: true})
		}
		last = loc[1]
	}
	if last < len(content) {
		parts = append(parts, domain.MessagePart{Text: content[last:]})
	}

	return parts
}

// PlainMessage wraps user-authored content as a single unstyled segment.
func PlainMessage(content string) []domain.MessagePart {
	return []domain.MessagePart{{Text: content}}
}
