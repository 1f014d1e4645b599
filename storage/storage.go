// Package storage keeps shared contract PDFs as flat files named by random
// UUIDs. A contract id maps to three files in the store directory:
//
//	<id>.pdf         the shared copy
//	<id>.json        optional landmark metadata
//	<id>-signed.pdf  the signed copy
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/orsabag2/rent/layout"
)

// URLPrefix is the public path under which stored files are served.
const URLPrefix = "/contracts/"

const signedSuffix = "-signed"

var (
	ErrNotFound        = errors.New("storage: contract not found")
	ErrInvalidID       = errors.New("storage: invalid contract id")
	ErrInvalidMetadata = errors.New("storage: invalid metadata")
)

// Store is a directory of contract files.
type Store struct {
	dir string
}

// New opens the store at dir, creating the directory when needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: creating %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// Save stores a PDF under a fresh id. A non-empty meta must be landmark
// JSON; it is kept next to the PDF and read back by Metadata.
func (s *Store) Save(pdf io.Reader, meta []byte) (string, error) {
	if len(bytes.TrimSpace(meta)) > 0 {
		if _, err := decodeLandmarks(meta); err != nil {
			return "", err
		}
	}

	id := uuid.NewString()
	path := s.file(id, ".pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: creating %s: %w", path, err)
	}
	_, err = io.Copy(f, pdf)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage: writing %s: %w", path, err)
	}

	if len(bytes.TrimSpace(meta)) > 0 {
		if err := os.WriteFile(s.file(id, ".json"), meta, 0o644); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("storage: writing metadata: %w", err)
		}
	}
	return id, nil
}

// Path returns the path of the shared copy of id. It fails with
// ErrNotFound when the copy does not exist.
func (s *Store) Path(id string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}
	return s.existing(s.file(id, ".pdf"))
}

// SignedPath returns where the signed copy of id lives, whether or not it
// exists yet.
func (s *Store) SignedPath(id string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}
	return s.file(id+signedSuffix, ".pdf"), nil
}

// Signed returns the path of an existing signed copy of id.
func (s *Store) Signed(id string) (string, error) {
	path, err := s.SignedPath(id)
	if err != nil {
		return "", err
	}
	return s.existing(path)
}

// Metadata returns the landmarks saved with id. A contract shared without
// metadata has no landmarks.
func (s *Store) Metadata(id string) (layout.Landmarks, error) {
	var lms layout.Landmarks
	if err := ValidateID(id); err != nil {
		return lms, err
	}
	data, err := os.ReadFile(s.file(id, ".json"))
	if errors.Is(err, os.ErrNotExist) {
		return lms, nil
	}
	if err != nil {
		return lms, fmt.Errorf("storage: reading metadata: %w", err)
	}
	return decodeLandmarks(data)
}

// decodeLandmarks rejects unknown keys, so metadata in another shape never
// passes as a contract without landmarks.
func decodeLandmarks(data []byte) (layout.Landmarks, error) {
	var lms layout.Landmarks
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&lms); err != nil {
		return layout.Landmarks{}, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	return lms, nil
}

// RemoveSigned deletes the signed copy of id. A missing copy is not an error.
func (s *Store) RemoveSigned(id string) error {
	path, err := s.SignedPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: removing %s: %w", path, err)
	}
	return nil
}

// Lookup maps a public file name such as "<id>.pdf" or "<id>-signed.pdf"
// to its path in the store.
func (s *Store) Lookup(name string) (string, error) {
	base, ok := strings.CutSuffix(name, ".pdf")
	if !ok {
		return "", ErrNotFound
	}
	id := strings.TrimSuffix(base, signedSuffix)
	if ValidateID(id) != nil {
		return "", ErrNotFound
	}
	return s.existing(s.file(base, ".pdf"))
}

func (s *Store) file(base, ext string) string {
	return filepath.Join(s.dir, base+ext)
}

func (s *Store) existing(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("storage: %w", err)
	}
	return path, nil
}

// ValidateID reports whether id is a canonical lowercase UUID as issued by
// Save. Ids never reach the filesystem without passing this check.
func ValidateID(id string) error {
	if u, err := uuid.Parse(id); err != nil || u.String() != id {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// URL returns the public path of the shared copy of id.
func URL(id string) string { return URLPrefix + id + ".pdf" }

// SignedURL returns the public path of the signed copy of id.
func SignedURL(id string) string { return URLPrefix + id + signedSuffix + ".pdf" }
