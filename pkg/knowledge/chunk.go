package knowledge

import (
	"fmt"
	"strings"
	"unicode"
)

// SplitText cuts text into pieces of at most chunkSize runes, each starting overlap runes
// before the previous one ended. Cuts move back to the last space when one is close enough
// so words stay whole.
func SplitText(text string, chunkSize, overlap int) []string {
	runes := []rune(strings.TrimSpace(text))
	if chunkSize <= 0 || len(runes) <= chunkSize {
		return []string{string(runes)}
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	var chunks []string
	for start := 0; start < len(runes); {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}

		// back off to a word boundary within the last quarter of the window
		for cut := end; cut > end-chunkSize/4; cut-- {
			if unicode.IsSpace(runes[cut]) {
				end = cut
				break
			}
		}
		chunks = append(chunks, strings.TrimSpace(string(runes[start:end])))

		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// ChunkSnippets splits any snippet longer than chunkSize. Pieces keep the topic and get ids of
// the form "<id>#<n>"; short snippets pass through unchanged.
func ChunkSnippets(items []Snippet, chunkSize, overlap int) []Snippet {
	if chunkSize <= 0 {
		return items
	}
	out := make([]Snippet, 0, len(items))
	for _, it := range items {
		parts := SplitText(it.Text, chunkSize, overlap)
		if len(parts) == 1 {
			out = append(out, it)
			continue
		}
		for i, p := range parts {
			out = append(out, Snippet{ID: fmt.Sprintf("%s#%d", it.ID, i+1), Text: p, Topic: it.Topic})
		}
	}
	return out
}
