package storage

import (
	"github.com/revelaction/hmmtag/hmm"
	sent "github.com/revelaction/hmmtag/sentence"
)

// DocReader defines read operations for corpus storage
type DocReader interface {
	// List returns the metadata (Id, Title) of documents.
	// Content (Sentences) is not loaded.
	List() ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)
}

// DocWriter defines write operations for corpus storage
type DocWriter interface {
	// Write persists a document and its sentences to storage
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// ModelReader defines read operations for trained models
type ModelReader interface {
	// ReadModel returns the model stored under name
	ReadModel(name string) (*hmm.Model, error)

	// ModelNames returns the names of all stored models, sorted
	ModelNames() ([]string, error)
}

// ModelWriter defines write operations for trained models
type ModelWriter interface {
	// WriteModel persists m under name, replacing any previous model
	WriteModel(name string, m *hmm.Model) error
}

// ModelRepository combines read and write operations
type ModelRepository interface {
	ModelReader
	ModelWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}

// ReadAll reads every document of the repository.
func ReadAll(r DocReader) (sent.Library, error) {
	docs, err := r.List()
	if err != nil {
		return nil, err
	}

	lib := make(sent.Library, 0, len(docs))
	for _, meta := range docs {
		doc, err := r.Read(meta.Id)
		if err != nil {
			return nil, err
		}
		lib = append(lib, doc)
	}
	return lib, nil
}
