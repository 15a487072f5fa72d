package knowledge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"staystrong-chat-be/pkg/embedding"
)

// LoadCorpus reads every *.jsonl file in dir (sorted by name) as {id, text, topic} records.
// Blank lines are skipped.
func LoadCorpus(dir string) ([]Snippet, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var items []Snippet
	for _, f := range files {
		recs, err := readJSONL(f)
		if err != nil {
			return nil, err
		}
		items = append(items, recs...)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no snippets found in %s (*.jsonl)", dir)
	}
	return items, nil
}

func readJSONL(path string) ([]Snippet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Snippet
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var s Snippet
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if s.ID == "" || s.Text == "" {
			return nil, fmt.Errorf("%s:%d: id and text are required", path, line)
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// EmbedCorpus fills in unit-length document vectors. progress, when non-nil, is called after
// each snippet.
func EmbedCorpus(ctx context.Context, items []Snippet, embedder embedding.EmbeddingProvider, progress func(done, total int)) ([]Snippet, error) {
	out := make([]Snippet, len(items))
	for i, it := range items {
		res, err := embedder.Generate(ctx, it.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("embed snippet %q: %w", it.ID, err)
		}
		it.Embedding = embedding.NormalizeVector(res.Embedding.Values)
		out[i] = it
		if progress != nil {
			progress(i+1, len(items))
		}
	}
	return out, nil
}
