package hierarchy

import (
	"slices"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/cases"
)

// NaturalCompare orders strings case-insensitively with embedded digit runs
// compared by numeric value ("item2" < "item10"). Names equal under folding
// fall back to byte order so the result never depends on input order.
func NaturalCompare(a, b string) int {
	fa := cases.Fold().String(a)
	fb := cases.Fold().String(b)
	switch {
	case natural.Less(fa, fb):
		return -1
	case natural.Less(fb, fa):
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// NaturalSort sorts names in place using NaturalCompare.
func NaturalSort(names []string) {
	slices.SortStableFunc(names, NaturalCompare)
}
