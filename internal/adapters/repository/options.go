package repository

import (
	"os"

	"github.com/okian/medaltips/pkg/logger"
)

const defaultFileMode os.FileMode = 0o644

// Option applies a configuration option to a file-backed store.
type Option func(*fileStore)

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *fileStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFileMode sets the permission bits of written files.
func WithFileMode(perm os.FileMode) Option {
	return func(s *fileStore) {
		if perm != 0 {
			s.perm = perm
		}
	}
}

// fileStore holds what both stores share: one target file written whole.
type fileStore struct {
	path string
	perm os.FileMode
	log  logger.Logger
}

func newFileStore(path string, opts []Option) fileStore {
	s := fileStore{path: path, perm: defaultFileMode, log: logger.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Path returns the target file.
func (s *fileStore) Path() string { return s.path }
