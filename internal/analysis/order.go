package analysis

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var spaces = regexp.MustCompile(`\s+`)

// labelKey is the join key for a display label: composed, upper-cased,
// trimmed, inner whitespace collapsed.
func labelKey(s string) string {
	s = cases.Upper(language.Vietnamese).String(norm.NFC.String(s))
	return spaces.ReplaceAllString(strings.TrimSpace(s), " ")
}

// sortByLabel orders xs so that numbers embedded in labels compare by
// value ("6A2" before "6A10"). Equal-collating labels fall back to byte order.
func sortByLabel[T any](xs []T, label func(T) string) {
	c := collate.New(language.Vietnamese, collate.Numeric)
	sort.SliceStable(xs, func(i, j int) bool {
		a, b := label(xs[i]), label(xs[j])
		if r := c.CompareString(a, b); r != 0 {
			return r < 0
		}
		return a < b
	})
}

// SortLabels sorts labels in place using the numeric-aware order.
func SortLabels(labels []string) {
	sortByLabel(labels, func(s string) string { return s })
}
