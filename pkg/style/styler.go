package style

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxSentences       = 4
	MaxCrisisSentences = 2
)

// Whole sentences that are removed wherever they appear.
var disclaimerSentences = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[^.!?\n]*\bI am an AI\b[^.!?\n]*[.!?]*`),
	regexp.MustCompile(`(?i)[^.!?\n]*\bI'?m an AI\b[^.!?\n]*[.!?]*`),
	regexp.MustCompile(`(?i)[^.!?\n]*\bI do not provide medical advice\b[^.!?\n]*[.!?]*`),
	regexp.MustCompile(`(?i)[^.!?\n]*\bI (?:cannot|can'?t) diagnose\b[^.!?\n]*[.!?]*`),
	regexp.MustCompile(`(?i)[^.!?\n]*\bI am not a substitute for\b[^.!?\n]*[.!?]*`),
	regexp.MustCompile(`(?i)[^.!?\n]*\bnot a (?:licensed|qualified) (?:professional|clinician|therapist)\b[^.!?\n]*[.!?]*`),
}

// Lead-in clauses that are cut while the rest of the sentence is kept.
var disclaimerLeadIn = regexp.MustCompile(`(?i)\bAs an AI(?: language model| assistant)?,?\s*`)

var (
	spaceRunRe       = regexp.MustCompile(`[ \t]+`)
	blankLinesRe     = regexp.MustCompile(`\n{3,}`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:])`)
	lineEdgeSpaceRe  = regexp.MustCompile(`(?m)^[ \t]+|[ \t]+$`)
)

type substitution struct {
	re   *regexp.Regexp
	with string
}

// Formal -> local register. Applied only when local style is on and never in crisis mode.
var registerMap = []substitution{
	{regexp.MustCompile(`(?i)\bhello\b`), "hey"},
	{regexp.MustCompile(`(?i)\bhi\b`), "hey"},
	{regexp.MustCompile(`(?i)\bdiscuss\b`), "yarn"},
	{regexp.MustCompile(`(?i)\btalk\b`), "yarn"},
	{regexp.MustCompile(`(?i)\bconversation\b`), "yarn"},
	{regexp.MustCompile(`(?i)\bexcellent\b`), "deadly"},
	{regexp.MustCompile(`(?i)\bgreat\b`), "deadly"},
	{regexp.MustCompile(`(?i)\bfamily\b`), "mob"},
	{regexp.MustCompile(`(?i)\bcommunity\b`), "mob"},
	{regexp.MustCompile(`(?i)\b(?:land|homeland)\b`), "Country"},
	{regexp.MustCompile(`\bI am\b`), "I'm"},
	{regexp.MustCompile(`(?i)\byou are\b`), "you're"},
}

// Styler post-processes backend replies.
type Styler struct {
	localStyle bool
}

func NewStyler(localStyle bool) *Styler {
	return &Styler{localStyle: localStyle}
}

// Style strips disclaimers, tidies whitespace and caps the sentence count (2 in crisis mode,
// 4 otherwise). Register substitution runs last, outside crisis mode only.
func (s *Styler) Style(text string, crisisMode bool) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	out := StripDisclaimers(text)
	out = TidyWhitespace(out)

	limit := MaxSentences
	if crisisMode {
		limit = MaxCrisisSentences
	}
	out = Shorten(out, limit)

	if !crisisMode && s != nil && s.localStyle {
		out = ApplyRegister(out)
	}
	return out
}

// StripDisclaimers removes AI self-reference and diagnostic disclaimers.
func StripDisclaimers(text string) string {
	out := text
	for _, re := range disclaimerSentences {
		out = re.ReplaceAllString(out, "")
	}
	out = cutLeadIns(out)
	if out != text {
		out = capitalizeFirst(out)
	}
	return out
}

// TidyWhitespace collapses runs of spaces and more than one blank line.
func TidyWhitespace(text string) string {
	out := spaceRunRe.ReplaceAllString(text, " ")
	out = lineEdgeSpaceRe.ReplaceAllString(out, "")
	out = spaceBeforePunct.ReplaceAllString(out, "$1")
	out = blankLinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// Shorten keeps the first max sentences. A sentence ends at '.', '!' or '?' followed by
// whitespace or the end of the text.
func Shorten(text string, max int) string {
	parts := SplitSentences(text)
	if len(parts) > max {
		parts = parts[:max]
	}
	return strings.Join(parts, " ")
}

// SplitSentences splits on sentence-terminal punctuation and drops empty pieces. A number
// followed by '.' at the start of a line is a list marker, not a sentence.
func SplitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	var parts []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if runes[i] == '.' && isListMarker(runes, i) {
			continue
		}
		if p := strings.TrimSpace(string(runes[start : i+1])); p != "" {
			parts = append(parts, p)
		}
		start = i + 1
	}
	if start < len(runes) {
		if p := strings.TrimSpace(string(runes[start:])); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// ApplyRegister swaps formal words for their local equivalents.
func ApplyRegister(text string) string {
	out := text
	for _, sub := range registerMap {
		out = sub.re.ReplaceAllString(out, sub.with)
	}
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isListMarker reports whether the '.' at dot closes a bare number that opens a line.
func isListMarker(runes []rune, dot int) bool {
	j := dot - 1
	for j >= 0 && unicode.IsDigit(runes[j]) {
		j--
	}
	if j == dot-1 {
		return false
	}
	for j >= 0 && (runes[j] == ' ' || runes[j] == '\t') {
		j--
	}
	return j < 0 || runes[j] == '\n'
}

// cutLeadIns drops "As an AI," clauses. The fragment that follows is capitalized only when the
// clause opened a sentence.
func cutLeadIns(text string) string {
	locs := disclaimerLeadIn.FindAllStringIndex(text, -1)
	if locs == nil {
		return text
	}

	var b strings.Builder
	prev := 0
	for _, loc := range locs {
		if loc[0] < prev {
			continue
		}
		b.WriteString(text[prev:loc[0]])
		prev = loc[1]
		if prev < len(text) && opensSentence(text[:loc[0]]) {
			r, size := utf8.DecodeRuneInString(text[prev:])
			b.WriteRune(unicode.ToUpper(r))
			prev += size
		}
	}
	b.WriteString(text[prev:])
	return b.String()
}

func opensSentence(before string) bool {
	trimmed := strings.TrimRight(before, " \t")
	if trimmed == "" {
		return true
	}
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	return isTerminal(last) || last == '\n'
}

// capitalizeFirst upper-cases the first letter of text and nothing else.
func capitalizeFirst(text string) string {
	for i, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		if !unicode.IsLower(r) {
			return text
		}
		return text[:i] + string(unicode.ToUpper(r)) + text[i+utf8.RuneLen(r):]
	}
	return text
}
