package safety

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"

	"staystrong-chat-be/pkg/content"
)

// Built-in crisis expressions. They tolerate spacing and slang variants ("kill my self",
// "wanna die") and are matched case-insensitively.
var CrisisBuiltins = []string{
	`\bkill\s*my\s*self\b`,
	`\bi\s*(?:want|wanna|feel like)\s*(?:to\s*)?kill\s*my\s*self\b`,
	`\bkill\s*me\b`,
	`\btake\s*my\s*(?:own\s*)?life\b`,
	`\bend(?:ing)?\s*(?:it\s*all|it|my\s*life)\b`,
	`\bi\s*(?:want|wanna|feel like)\s*(?:to\s*)?(?:die|not\s*be\s*alive)\b`,
	`\bi\s*do(?:n'?t|\s*not)\s*want\s*to\s*(?:live|be\s*alive)\b`,
	`\bsuicid(?:e|al)\b`,
	`\bself[-\s]*harm(?:ing)?\b`,
	`\bhurt(?:ing)?\s*my\s*self\b`,
	`\bcut(?:ting)?\s*my\s*self\b`,
	`\bcan'?t\s*(?:stay|keep\s*my\s*self)\s*safe\b`,
	`\b(?:i'?m|i\s*am|i\s*feel)\s*not\s*safe\b`,
	`\bkys\b`,
}

// Passive ideation below the crisis threshold.
var MonitorBuiltins = []string{
	`\bno\s*reason\s*to\s*live\b`,
	`\bdon'?t\s*care\s*if\s*i\s*die\b`,
	`\bi\s*can'?t\s*go\s*on\b`,
	`\bgive\s*up\s*on\s*(?:life|living|everything)\b`,
	`\bbetter\s*off\s*without\s*me\b`,
}

// PatternSet is an ordered list of case-insensitive expressions; the first match wins.
type PatternSet struct {
	patterns []*regexp.Regexp
}

// NewPatternSet compiles exprs in order. An invalid expression is an error.
func NewPatternSet(exprs ...[]string) (*PatternSet, error) {
	ps := &PatternSet{}
	for _, group := range exprs {
		for _, e := range group {
			re, err := regexp.Compile(`(?i)` + e)
			if err != nil {
				return nil, fmt.Errorf("compile pattern %q: %w", e, err)
			}
			ps.patterns = append(ps.patterns, re)
		}
	}
	return ps, nil
}

// MustPatternSet is NewPatternSet for expressions known at compile time.
func MustPatternSet(exprs ...[]string) *PatternSet {
	ps, err := NewPatternSet(exprs...)
	if err != nil {
		panic(err)
	}
	return ps
}

// Match returns the first matched phrase.
func (ps *PatternSet) Match(text string) (string, bool) {
	if ps == nil {
		return "", false
	}
	for _, re := range ps.patterns {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

func (ps *PatternSet) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.patterns)
}

// LoadLocalPatterns reads an optional list of extra regular expressions. A missing file is not
// an error; it simply contributes nothing.
func LoadLocalPatterns(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	var exprs []string
	if err := content.DecodeFile(path, &exprs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	out := exprs[:0]
	for _, e := range exprs {
		if e != "" {
			out = append(out, e)
		}
	}
	return out, nil
}
