package ingredients

import (
	"strings"

	"github.com/samber/lo"
)

// ToolAny is the "no preference" sentinel. It never co-occurs with a
// concrete tool in a selection.
const ToolAny = "상관없음"

// Tools is the canonical selectable set, sentinel last.
var Tools = []string{"프라이팬", "전자레인지", "에어프라이어", "냄비", "오븐", ToolAny}

// Parse splits free text on commas and newlines, trims each token, and drops
// empty ones. Order is preserved and duplicates pass through; de-duplication
// is the pantry merge's job, not the parser's.
func Parse(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ToggleTool flips tool within selected. Selecting the sentinel clears every
// concrete choice; selecting a concrete tool clears the sentinel; otherwise
// it is ordinary multi-select.
func ToggleTool(selected []string, tool string) []string {
	if tool == ToolAny {
		if lo.Contains(selected, ToolAny) {
			return []string{}
		}
		return []string{ToolAny}
	}

	withoutAny := lo.Filter(selected, func(t string, _ int) bool { return t != ToolAny })
	if lo.Contains(withoutAny, tool) {
		return lo.Filter(withoutAny, func(t string, _ int) bool { return t != tool })
	}
	return append(withoutAny, tool)
}
