package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DecodeFile reads a JSON or YAML document into out. YAML is a superset of JSON, so a single
// decoder serves both; struct fields use yaml tags.
func DecodeFile(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
