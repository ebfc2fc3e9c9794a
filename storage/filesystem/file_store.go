package filesystem

import (
	"fmt"
	"path/filepath"

	"github.com/revelaction/hmmtag/corpus"
	sent "github.com/revelaction/hmmtag/sentence"
	"github.com/revelaction/hmmtag/storage"
)

// FileStore reads a single tagged text or JSON file as a one doc corpus.
type FileStore struct {
	path string
	opts corpus.Options
}

var _ storage.DocReader = (*FileStore)(nil)

func NewFileStore(path string, opts corpus.Options) *FileStore {
	return &FileStore{path: path, opts: opts}
}

// IsDocFile reports whether path has a doc extension handled by ReadDoc.
func IsDocFile(path string) bool {
	switch filepath.Ext(path) {
	case extText, extJSON:
		return true
	}
	return false
}

func (s *FileStore) List() ([]sent.Doc, error) {
	return []sent.Doc{{Id: 0, Title: filepath.Base(s.path)}}, nil
}

func (s *FileStore) Read(id int) (sent.Doc, error) {
	if id != 0 {
		return sent.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}

	doc, err := ReadDoc(s.path, s.opts)
	if err != nil {
		return sent.Doc{}, err
	}

	doc.Id = 0
	for i := range doc.Sentences {
		doc.Sentences[i].DocId = 0
	}
	return doc, nil
}
