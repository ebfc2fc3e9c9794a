package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/revelaction/hmmtag/corpus"
	"github.com/revelaction/hmmtag/storage"
	"github.com/revelaction/hmmtag/storage/filesystem"
	"github.com/revelaction/hmmtag/storage/sqlite/zombiezen"
)

func isSQLitePath(path string) bool {
	switch filepath.Ext(path) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// NewDocReader returns the corpus at path: a directory of docs, a single
// tagged text or JSON file, or a SQLite database.
func NewDocReader(p *Pool, path string, opts corpus.Options) (storage.DocReader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path, opts)
	}

	if filesystem.IsDocFile(path) {
		return filesystem.NewFileStore(path, opts), nil
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

// NewDocWriter returns a writable corpus repository. A missing path ending
// in a SQLite extension is created as a database, any other missing path as
// a directory.
func NewDocWriter(p *Pool, path string, opts corpus.Options) (storage.DocWriter, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return filesystem.NewDocStore(path, opts)
	case err == nil, isSQLitePath(path):
		pool, err := p.Open(path)
		if err != nil {
			return nil, err
		}
		return zombiezen.NewDocStore(pool), nil
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create corpus directory: %w", err)
	}
	return filesystem.NewDocStore(path, opts)
}

// NewModelRepository returns the model repository at path following the same
// rules as NewDocWriter.
func NewModelRepository(p *Pool, path string) (storage.ModelRepository, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return filesystem.NewModelStore(path), nil
	case err == nil, isSQLitePath(path):
		pool, err := p.Open(path)
		if err != nil {
			return nil, err
		}
		return zombiezen.NewModelStore(pool), nil
	}

	return filesystem.NewModelStore(path), nil
}
