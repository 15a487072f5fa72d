package content

import (
	"errors"
	"fmt"
	"io/fs"
)

// String keys understood by the dialogue components.
const (
	KeyStrengthsPrompt  = "strengths_prompt"
	KeyWorriesPrompt    = "worries_prompt"
	KeyGoalPrompt       = "goal_prompt"
	KeySupportPrompt    = "support_prompt"
	KeyNextStepPrompt   = "next_step_prompt"
	KeyWrapPrompt       = "wrap_prompt"
	KeyClarifyStrengths = "clarify_strengths"
	KeyWorryShiftAck    = "worry_shift_ack"
	KeyStyleGuide       = "style_guide"
)

var defaultStrings = map[string]string{
	KeyStrengthsPrompt: "What are the things that keep you strong? This could be family, Elders, friends, culture, Country, sport, music or art. " +
		"Share as many as you like, and type \"next\" when you are ready to move on.",
	KeyWorriesPrompt: "Thank you for sharing. What are the worries that take your strength away? Some people talk about study or work stress, " +
		"money, relationships, health, smoking or alcohol, or sleep. Type \"next\" when you are ready to move on.",
	KeyGoalPrompt:       "Let us pick one small change that feels possible this week. What would you like to work on?",
	KeySupportPrompt:    "Who or what could help you with that goal?",
	KeyNextStepPrompt:   "What is one small next step you could take in the next day or two?",
	KeyWrapPrompt:       "You have done well today. You named your strengths, your worries, a goal and a first step. You can come back to this plan any time.",
	KeyClarifyStrengths: "By strengths we mean the people, places and things that keep you going, like family, culture, Country, sport or music.",
	KeyWorryShiftAck:    "It sounds like something is weighing on you, so let us talk about that first.",
}

// Pack is the editable content file: UI strings plus optional examples.
type Pack struct {
	Strings  map[string]string `yaml:"strings"`
	Examples map[string]any    `yaml:"examples"`
}

// DefaultPack returns the built-in strings.
func DefaultPack() *Pack {
	s := make(map[string]string, len(defaultStrings))
	for k, v := range defaultStrings {
		s[k] = v
	}
	return &Pack{Strings: s, Examples: map[string]any{}}
}

// LoadPack overlays the file at path on the built-in strings. An empty path means built-ins
// only; a configured path that is missing or unreadable is a configuration error.
func LoadPack(path string) (*Pack, error) {
	pack := DefaultPack()
	if path == "" {
		return pack, nil
	}

	var file Pack
	if err := DecodeFile(path, &file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("content pack not found at %s: %w", path, err)
		}
		return nil, err
	}

	for k, v := range file.Strings {
		if v != "" {
			pack.Strings[k] = v
		}
	}
	for k, v := range file.Examples {
		pack.Examples[k] = v
	}
	return pack, nil
}

// String returns the value for key, or "" when neither the file nor the defaults define it.
func (p *Pack) String(key string) string {
	if p == nil {
		return defaultStrings[key]
	}
	if v, ok := p.Strings[key]; ok {
		return v
	}
	return defaultStrings[key]
}
