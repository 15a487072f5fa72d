package safety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContacts(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "contacts.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"lifeline":"13 11 14","13yarn":" 13 92 76 ","blank":""}`), 0o644))
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{}`), 0o644))

	tests := []struct {
		name         string
		path         string
		wantFromFile bool
		wantErr      bool
		wantLen      int
	}{
		{"file", good, true, false, 2},
		{"no path", "", false, false, len(FallbackContacts())},
		{"missing file", filepath.Join(dir, "nope.json"), false, true, len(FallbackContacts())},
		{"empty file", empty, false, false, len(FallbackContacts())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, fromFile, err := LoadContacts(tt.path)
			assert.Equal(t, tt.wantFromFile, fromFile)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Len(t, c, tt.wantLen)
		})
	}
}

func TestContacts_LinesOrder(t *testing.T) {
	lines := FallbackContacts().Lines()

	require.Len(t, lines, 10)
	assert.Equal(t, "- Emergency: 000", lines[0])
	assert.Equal(t, "- 13YARN: 13 92 76", lines[2])
	assert.Equal(t, "- QLife: 1800 184 527", lines[9])
}
