package culture

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer rewrites community phrases into plain English so retrieval and the backend read
// them correctly. The rewritten text is never shown back to the user.
type Normalizer struct {
	lexicon Lexicon
}

func NewNormalizer(lexicon Lexicon) *Normalizer {
	return &Normalizer{lexicon: lexicon}
}

// Normalize returns the rewritten text plus one "<phrase> -> <meaning>" note per phrase found.
func (n *Normalizer) Normalize(text string) (string, []string) {
	if text == "" || n == nil || len(n.lexicon) == 0 {
		return text, nil
	}

	low := strings.ToLower(text)
	title := cases.Title(language.Und)

	out := text
	var notes []string
	for _, e := range n.lexicon {
		if !strings.Contains(low, strings.ToLower(e.Phrase)) {
			continue
		}
		notes = append(notes, e.Phrase+" -> "+e.Meaning)

		out = strings.ReplaceAll(out, e.Phrase, e.Meaning)
		out = strings.ReplaceAll(out, strings.ToLower(e.Phrase), e.Meaning)
		out = strings.ReplaceAll(out, title.String(e.Phrase), e.Meaning)
	}
	return out, notes
}

// Len reports the number of lexicon entries.
func (n *Normalizer) Len() int {
	if n == nil {
		return 0
	}
	return len(n.lexicon)
}
