package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/hmmtag/hmm"
	"github.com/revelaction/hmmtag/storage"
)

// ModelStore keeps one JSON file per model in a directory.
type ModelStore struct {
	root string
}

var _ storage.ModelRepository = (*ModelStore)(nil)

func NewModelStore(root string) *ModelStore {
	return &ModelStore{root: root}
}

func (s *ModelStore) path(name string) string {
	return filepath.Join(s.root, name+extJSON)
}

func (s *ModelStore) ModelNames() ([]string, error) {
	files, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if filepath.Ext(file.Name()) != extJSON {
			continue
		}

		names = append(names, strings.TrimSuffix(file.Name(), extJSON))
	}
	sort.Strings(names)

	return names, nil
}

func (s *ModelStore) ReadModel(name string) (*hmm.Model, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}

	var m hmm.Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("model %s: JSON decoding error: %w", name, err)
	}

	return &m, nil
}

func (s *ModelStore) WriteModel(name string, m *hmm.Model) error {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid model name %q", name)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	// write then rename so a reader never sees half a model
	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write model %s: %w", name, err)
	}

	return os.Rename(tmp, s.path(name))
}
