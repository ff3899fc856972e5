package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/wordsphere/pkg/keyword"
)

// OverlayTitle heads the top-words summary.
const OverlayTitle = "Top words"

// Overlay returns the top-words summary: a title line followed by up to
// five "word (weight)" lines with weights to two decimals. Empty input
// yields an empty string.
func Overlay(words []keyword.Keyword) string {
	top := keyword.Top(words, keyword.OverlaySize)
	if len(top) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(OverlayTitle)
	for _, w := range top {
		fmt.Fprintf(&b, "\n%s (%.2f)", w.Word, w.Weight)
	}
	return b.String()
}
