package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sixSentences = "One. Two! Three? Four. Five. Six."

func TestStyler_SentenceCap(t *testing.T) {
	tests := []struct {
		name   string
		crisis bool
		want   string
	}{
		{name: "normal", crisis: false, want: "One. Two! Three? Four."},
		{name: "crisis", crisis: true, want: "One. Two!"},
	}

	s := NewStyler(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Style(sixSentences, tt.crisis)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(SplitSentences(got)), MaxSentences)
		})
	}
}

func TestStyler_StripsDisclaimers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "whole sentence",
			in:   "I am an AI and cannot feel things. That sounds hard. I do not provide medical advice.",
			want: "That sounds hard.",
		},
		{
			name: "contraction",
			in:   "I'm an AI assistant. You did well today.",
			want: "You did well today.",
		},
		{
			name: "lead-in clause",
			in:   "As an AI language model, I think sleep matters a lot.",
			want: "I think sleep matters a lot.",
		},
		{
			name: "lead-in mid sentence keeps case",
			in:   "Honestly, as an AI, this is what I would try: rest.",
			want: "Honestly, this is what I would try: rest.",
		},
		{
			name: "not a professional",
			in:   "Walking helps some people. I'm not a licensed professional, but you could try it.",
			want: "Walking helps some people.",
		},
	}

	s := NewStyler(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Style(tt.in, false))
		})
	}
}

func TestStyler_LeavesCleanTextAlone(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "abbreviation", in: "You can try it, e.g. a walk. Or rest."},
		{name: "lowercase after newline", in: "Try this:\nbreathe slowly for a minute."},
		{name: "lowercase opener", in: "sounds like a long week. Be kind to yourself."},
	}

	s := NewStyler(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.in, StripDisclaimers(tt.in))
		})
	}
	assert.Equal(t, "You can try it, e.g. a walk. Or rest.", s.Style("You can try it, e.g. a walk. Or rest.", false))
}

func TestStyler_NumberedListInCrisis(t *testing.T) {
	in := "Here are two ideas:\n1. Take a short walk.\n2. Call a friend.\nYou matter."

	assert.Equal(t, "Here are two ideas:\n1. Take a short walk. 2. Call a friend.", NewStyler(false).Style(in, true))
}

func TestStyler_Register(t *testing.T) {
	in := "Hello, it is great to talk with your family."

	assert.Equal(t, "hey, it is deadly to yarn with your mob.", NewStyler(true).Style(in, false))
	assert.Equal(t, in, NewStyler(true).Style(in, true), "crisis mode never swaps words")
	assert.Equal(t, in, NewStyler(false).Style(in, false))
}

func TestStyler_EmptyInput(t *testing.T) {
	assert.Empty(t, NewStyler(true).Style("   \n ", false))
}

func TestTidyWhitespace(t *testing.T) {
	assert.Equal(t, "Hey there, you.\n\nNext bit.", TidyWhitespace("  Hey   there ,  you .\n\n\n\nNext bit.  "))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"No ending", []string{"No ending"}},
		{"Version 3.2 is out. Nice", []string{"Version 3.2 is out.", "Nice"}},
		{"Wait... what?! Ok.", []string{"Wait...", "what?!", "Ok."}},
		{"Steps:\n1. Breathe.\n2. Sip water.", []string{"Steps:\n1. Breathe.", "2. Sip water."}},
		{"I slept 5. Then I woke.", []string{"I slept 5.", "Then I woke."}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}
