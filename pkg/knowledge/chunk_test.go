package knowledge

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		want      []string
	}{
		{name: "short text", text: "  one line  ", chunkSize: 50, want: []string{"one line"}},
		{name: "disabled", text: "anything at all", chunkSize: 0, want: []string{"anything at all"}},
		{name: "word boundary", text: "aaaa bbbb cccc dddd", chunkSize: 10, want: []string{"aaaa bbbb", "cccc dddd"}},
		{name: "no spaces", text: "abcdefghij", chunkSize: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "overlap", text: "abcdefghij", chunkSize: 4, overlap: 1, want: []string{"abcd", "defg", "ghij"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitText(tt.text, tt.chunkSize, tt.overlap))
		})
	}
}

func TestSplitText_RespectsChunkSize(t *testing.T) {
	text := strings.Repeat("Yarning with Elders helps. ", 40)

	for _, c := range SplitText(text, 120, 20) {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 120)
		assert.NotEmpty(t, c)
	}
}

func TestChunkSnippets(t *testing.T) {
	items := []Snippet{
		{ID: "short", Text: "Keep it small.", Topic: "goals"},
		{ID: "long", Text: "aaaa bbbb cccc dddd", Topic: "sleep"},
	}

	got := ChunkSnippets(items, 10, 0)

	require.Len(t, got, 3)
	assert.Equal(t, items[0], got[0])
	assert.Equal(t, Snippet{ID: "long#1", Text: "aaaa bbbb", Topic: "sleep"}, got[1])
	assert.Equal(t, Snippet{ID: "long#2", Text: "cccc dddd", Topic: "sleep"}, got[2])

	assert.Equal(t, items, ChunkSnippets(items, 0, 0))
}
