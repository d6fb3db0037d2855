package textfmt

import (
	"sort"
	"strings"
)

// SelectPrefix picks the best label to show next to value on a display of
// the given width. Preference order: the longest label whose "label value"
// combination fits, then the longest label that fits alone, then the
// shortest label as a best effort. An empty candidate list yields "".
func SelectPrefix(prefixes []string, value string, width int) string {
	if len(prefixes) == 0 {
		return ""
	}
	sorted := make([]string, len(prefixes))
	copy(sorted, prefixes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	var single, combined string
	var haveSingle, haveCombined bool
	for _, p := range sorted {
		if !haveSingle && len(p) <= width {
			single = p
			haveSingle = true
		}
		if !haveCombined && len(p)+1+len(value) <= width {
			combined = p
			haveCombined = true
		}
	}

	switch {
	case haveCombined:
		return combined
	case haveSingle:
		return single
	default:
		return sorted[len(sorted)-1]
	}
}

// AnyPrefixShown reports whether any of the labels, filtered to the display
// charset, is already contained in the currently shown text. Used to skip
// re-flashing a label the viewer can already see.
func AnyPrefixShown(prefixes []string, current string, cs Charset) bool {
	for _, p := range prefixes {
		filtered := FilterText(p, cs, ReplacementChar)
		if filtered != "" && strings.Contains(current, filtered) {
			return true
		}
	}
	return false
}
