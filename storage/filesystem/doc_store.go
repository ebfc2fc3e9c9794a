package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/hmmtag/corpus"
	sent "github.com/revelaction/hmmtag/sentence"
	"github.com/revelaction/hmmtag/storage"
)

const (
	extJSON = ".json"
	extText = ".txt"
)

// DocStore reads a directory of tagged text (.txt) and JSON (.json) docs.
type DocStore struct {
	docDir string
	opts   corpus.Options

	// In-memory cache
	docs   []sent.Doc
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document handler. Doc ids follow the
// sorted file names.
func NewDocStore(docDir string, opts corpus.Options) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		switch filepath.Ext(file.Name()) {
		case extJSON, extText:
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	docs := make([]sent.Doc, len(names))
	for idx, name := range names {
		docs[idx] = sent.Doc{Id: idx, Title: name}
	}

	return &DocStore{
		docDir: docDir,
		opts:   opts,
		docs:   docs,
		loaded: make([]bool, len(docs)),
	}, nil
}

// Preload loads all docs into memory.
func (h *DocStore) Preload(cb func(current, total int, name string)) error {
	total := len(h.docs)
	for i := range h.docs {
		if cb != nil {
			cb(i+1, total, h.docs[i].Title)
		}
		if _, err := h.Read(i); err != nil {
			return err
		}
	}
	return nil
}

func (h *DocStore) List() ([]sent.Doc, error) {
	list := make([]sent.Doc, len(h.docs))
	for i, d := range h.docs {
		list[i] = sent.Doc{Id: d.Id, Title: d.Title}
	}
	return list, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}

	if h.loaded[id] {
		return h.docs[id], nil
	}

	doc := &h.docs[id] // pointer to modify in place
	full, err := ReadDoc(filepath.Join(h.docDir, doc.Title), h.opts)
	if err != nil {
		return sent.Doc{}, err
	}

	doc.Sentences = full.Sentences
	for i := range doc.Sentences {
		doc.Sentences[i].DocId = id
	}
	h.loaded[id] = true

	return *doc, nil
}

// Write stores doc as a JSON file named after its title.
func (h *DocStore) Write(doc sent.Doc) error {
	name := doc.Title
	if filepath.Ext(name) != extJSON {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + extJSON
	}
	doc.Title = name

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(h.docDir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	// a rewritten title must not be listed twice
	for i := range h.docs {
		if h.docs[i].Title == name {
			h.loaded[i] = false
			return nil
		}
	}

	h.docs = append(h.docs, sent.Doc{Id: len(h.docs), Title: name})
	h.loaded = append(h.loaded, false)
	return nil
}

// ReadDoc reads a tagged text or a JSON doc from the given path.
func ReadDoc(path string, opts corpus.Options) (sent.Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	title := filepath.Base(path)

	if filepath.Ext(path) == extJSON {
		var doc sent.Doc
		if err := json.NewDecoder(f).Decode(&doc); err != nil {
			return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
		}
		doc.Title = title
		return doc, nil
	}

	sentences, err := corpus.Read(f, opts)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("corpus %s: %w", title, err)
	}

	return sent.Doc{Title: title, Sentences: sentences}, nil
}
