package textfmt

import (
	"strings"
	"unicode/utf8"
)

// DefaultDelimiters are the characters treated as word breaks when
// chunking a message.
const DefaultDelimiters = " ,.-_"

// ChunkMessage splits text into an ordered sequence of pages no wider than
// width. Text that already fits is returned as a single page. Otherwise the
// text is split on delimiter runs, tokens wider than width are hard-split
// into width-sized pieces, and adjacent tokens are greedily re-merged with a
// single delimiter character wherever the merge still fits. Width is
// measured in characters, one per flap cell, never in bytes.
func ChunkMessage(text string, width int, delimiters string) []string {
	if delimiters == "" {
		delimiters = DefaultDelimiters
	}
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return []string{text}
	}

	words := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})

	// Hard-split tokens that can never fit on one page.
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		runes := []rune(w)
		for len(runes) > width {
			tokens = append(tokens, string(runes[:width]))
			runes = runes[width:]
		}
		tokens = append(tokens, string(runes))
	}

	// Greedy re-merge: keep joining neighbours while the result still fits,
	// re-scanning until a full pass makes no progress.
	sep := string([]rune(delimiters)[0])
	for {
		merged := false
		for i := 0; i+1 < len(tokens); {
			joined := tokens[i] + sep + tokens[i+1]
			if utf8.RuneCountInString(joined) <= width {
				tokens[i] = joined
				tokens = append(tokens[:i+1], tokens[i+2:]...)
				merged = true
			} else {
				i++
			}
		}
		if !merged {
			break
		}
	}

	if len(tokens) == 0 {
		return []string{""}
	}
	return tokens
}
