package culture

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"staystrong-chat-be/pkg/content"
)

// ErrLexiconUnavailable is returned when the lexicon file cannot be read.
var ErrLexiconUnavailable = errors.New("cultural lexicon unavailable")

// Entry maps a community phrase to its plain-English meaning.
type Entry struct {
	Phrase  string `yaml:"phrase"`
	Meaning string `yaml:"meaning"`
}

// Lexicon is ordered longest phrase first so multi-word idioms win over their parts.
type Lexicon []Entry

// NewLexicon drops blank entries and sorts by descending phrase length. Entries of equal
// length keep their input order.
func NewLexicon(entries []Entry) Lexicon {
	out := make(Lexicon, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Phrase) == "" || e.Meaning == "" {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Phrase) > len(out[j].Phrase)
	})
	return out
}

type lexiconFile struct {
	Terms []Entry `yaml:"terms"`
}

// LoadLexicon reads either a bare list of {phrase, meaning} records or a document with a
// "terms" list, in JSON or YAML.
func LoadLexicon(path string) (Lexicon, error) {
	var list []Entry
	if err := content.DecodeFile(path, &list); err == nil {
		return NewLexicon(list), nil
	}

	var doc lexiconFile
	if err := content.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexiconUnavailable, err)
	}
	return NewLexicon(doc.Terms), nil
}
