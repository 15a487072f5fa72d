package safety

import (
	"sort"
	"strings"

	"staystrong-chat-be/pkg/content"
)

// Contacts maps a service key (e.g. "lifeline") to its phone number.
type Contacts map[string]string

// FallbackContacts is used whenever the configured contacts cannot be loaded, so a crisis
// disclosure is never empty.
func FallbackContacts() Contacts {
	return Contacts{
		"emergency":        "000",
		"emergency_mobile": "112",
		"13yarn":           "13 92 76",
		"lifeline":         "13 11 14",
		"kids_helpline":    "1800 551 800",
		"suicide_callback": "1300 659 467",
		"beyond_blue":      "1300 22 4636",
		"mensline":         "1300 789 978",
		"headspace":        "1800 650 890",
		"qlife":            "1800 184 527",
	}
}

// Display labels, in the order they are listed to the user.
var contactLabels = []struct {
	key   string
	label string
}{
	{"emergency", "Emergency"},
	{"emergency_mobile", "Emergency (mobile)"},
	{"13yarn", "13YARN"},
	{"lifeline", "Lifeline"},
	{"kids_helpline", "Kids Helpline"},
	{"suicide_callback", "Suicide Call Back"},
	{"beyond_blue", "Beyond Blue"},
	{"mensline", "MensLine"},
	{"headspace", "headspace"},
	{"qlife", "QLife"},
}

// LoadContacts reads a service -> number mapping. Any failure, or a file without a single
// usable number, yields FallbackContacts and fromFile=false.
func LoadContacts(path string) (contacts Contacts, fromFile bool, err error) {
	if path == "" {
		return FallbackContacts(), false, nil
	}

	var raw map[string]string
	if err := content.DecodeFile(path, &raw); err != nil {
		return FallbackContacts(), false, err
	}

	out := make(Contacts, len(raw))
	for k, v := range raw {
		if k = strings.TrimSpace(k); k != "" && strings.TrimSpace(v) != "" {
			out[k] = strings.TrimSpace(v)
		}
	}
	if len(out) == 0 {
		return FallbackContacts(), false, nil
	}
	return out, true, nil
}

// Lines renders "- <Label>: <number>" lines, known services first in display order, then any
// other keys sorted alphabetically.
func (c Contacts) Lines() []string {
	seen := make(map[string]bool, len(c))
	lines := make([]string, 0, len(c))

	for _, l := range contactLabels {
		if num, ok := c[l.key]; ok && num != "" {
			lines = append(lines, "- "+l.label+": "+num)
			seen[l.key] = true
		}
	}

	var rest []string
	for k := range c {
		if !seen[k] && c[k] != "" {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		lines = append(lines, "- "+k+": "+c[k])
	}
	return lines
}

// Numbers returns every configured number.
func (c Contacts) Numbers() []string {
	out := make([]string, 0, len(c))
	for _, v := range c {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func (c Contacts) clone() Contacts {
	out := make(Contacts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
