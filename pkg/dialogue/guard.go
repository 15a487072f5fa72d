package dialogue

import (
	"regexp"
	"strings"
	"unicode"
)

// Phone-like shapes: 000/112, 1800/1300 xxx xxx, 13 xx xx, international prefixes and any
// long digit run. 000 and 112 only count when they are not the tail of a larger number.
var contactLikeRe = regexp.MustCompile(`(?:^|[^\d,.])(?:000|112)\b|` +
	`\b1[38]00[\s-]?\d{3}[\s-]?\d{3}\b|` +
	`\b13[\s-]?\d{2}[\s-]?\d{2}\b|` +
	`\+\d[\d\s-]{6,}\d|` +
	`\b\d{8,}\b`)

// ContactGuard catches contact numbers that slip into a backend reply.
type ContactGuard struct {
	configured []*regexp.Regexp
}

// NewContactGuard adds a tolerant pattern for each configured number on top of the generic
// phone shapes.
func NewContactGuard(numbers []string) *ContactGuard {
	g := &ContactGuard{}
	for _, n := range numbers {
		if re := numberPattern(n); re != nil {
			g.configured = append(g.configured, re)
		}
	}
	return g
}

// ContainsContact reports whether text carries anything that looks like a contact number.
func (g *ContactGuard) ContainsContact(text string) bool {
	if contactLikeRe.MatchString(text) {
		return true
	}
	if g == nil {
		return false
	}
	for _, re := range g.configured {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// numberPattern matches the digits of n with optional spaces or dashes between them.
func numberPattern(n string) *regexp.Regexp {
	var digits []string
	for _, r := range n {
		if unicode.IsDigit(r) {
			digits = append(digits, string(r))
		}
	}
	if len(digits) < 3 {
		return nil
	}
	return regexp.MustCompile(`(?:^|[^\d,.])` + strings.Join(digits, `[\s-]?`) + `\b`)
}
