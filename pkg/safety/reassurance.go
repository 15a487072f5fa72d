package safety

import (
	"regexp"
	"strings"
)

var affirmativePhrases = []string{
	"i'm okay", "im okay", "i am okay", "i'm ok", "im ok", "i am ok",
	"i'm fine", "im fine", "fine", "okay", "ok",
	"all good", "allgood", "doing good", "good now", "feeling good",
	"better now", "feeling better", "bit better", "im better", "i'm better",
	"sorted", "no worries", "no worry",
	"safe now", "i'm safe", "im safe", "i am safe",
	"not now", "not really", "no thanks", "no thank you", "nah", "no",
	"maybe later", "later", "another time", "not needed", "no need",
}

var overridePhrases = []string{
	"not safe", "unsafe", "can't stay safe", "cant stay safe",
	"still struggling", "struggling", "worse", "really bad", "not okay", "not ok",
	"hurt myself", "self-harm", "self harm", "suicide", "end it", "end my life",
	"want to die", "want to end it", "kill myself", "kill me",
	"need help", "please help", "help me",
}

var (
	affirmativeRe = phraseAlternation(affirmativePhrases)
	overrideRe    = phraseAlternation(overridePhrases)
)

// Phrases match on word boundaries so "no" does not fire inside "know" or "not".
func phraseAlternation(phrases []string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// IsReassurance reports whether a reply to the safety check says the user is okay and does
// not want support right now. Any negative-safety phrase overrides.
func IsReassurance(text string) bool {
	t := normalizeApostrophes(strings.TrimSpace(text))
	if t == "" {
		return false
	}
	if overrideRe.MatchString(t) {
		return false
	}
	return affirmativeRe.MatchString(t)
}

func normalizeApostrophes(s string) string {
	return strings.NewReplacer("’", "'", "‘", "'").Replace(s)
}
