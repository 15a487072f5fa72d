package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSource reads the vector blob and its row-aligned metadata list from disk.
type FileSource struct {
	VectorsPath  string
	MetadataPath string
}

func NewFileSource(vectorsPath, metadataPath string) *FileSource {
	return &FileSource{VectorsPath: vectorsPath, MetadataPath: metadataPath}
}

func (s *FileSource) Load(ctx context.Context) ([]Snippet, error) {
	for _, p := range []string{s.VectorsPath, s.MetadataPath} {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s is missing", ErrIndexNotBuilt, p)
			}
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
	}

	vf, err := os.Open(s.VectorsPath)
	if err != nil {
		return nil, fmt.Errorf("open vectors: %w", err)
	}
	defer vf.Close()

	vectors, err := ReadNPY(vf)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.VectorsPath, err)
	}

	raw, err := os.ReadFile(s.MetadataPath)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var meta []Snippet
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.MetadataPath, err)
	}

	if len(meta) != len(vectors) {
		return nil, fmt.Errorf("%w: %d vectors, %d metadata records", ErrIndexMismatch, len(vectors), len(meta))
	}

	for i := range meta {
		meta[i].Embedding = vectors[i]
	}
	return meta, nil
}

// Save writes snippets as a vector blob plus metadata list, creating parent directories.
func (s *FileSource) Save(snippets []Snippet) error {
	rows := make([][]float32, len(snippets))
	for i, sn := range snippets {
		rows[i] = sn.Embedding
	}

	for _, p := range []string{s.VectorsPath, s.MetadataPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
	}

	vf, err := os.Create(s.VectorsPath)
	if err != nil {
		return fmt.Errorf("create vectors: %w", err)
	}
	if err := WriteNPY(vf, rows); err != nil {
		vf.Close()
		return fmt.Errorf("write vectors: %w", err)
	}
	if err := vf.Close(); err != nil {
		return err
	}

	meta, err := json.MarshalIndent(snippets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.MetadataPath, meta, 0o644)
}
