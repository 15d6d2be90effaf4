package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/carousel"
)

// File is the on-disk seed document.
type File struct {
	Entries []domain.Entry `json:"entries" yaml:"entries"`
}

// FSStore loads carousel seeds from the filesystem. Files ending in .json are decoded as
// JSON; anything else is decoded as YAML.
type FSStore struct {
	path string
}

// NewFSStore constructs a store for the seed file at path.
func NewFSStore(path string) *FSStore {
	return &FSStore{path: path}
}

// Path returns the seed file location.
func (s *FSStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Load reads and decodes the seed file.
func (s *FSStore) Load() ([]domain.Entry, error) {
	if s == nil || s.path == "" {
		return nil, errors.New("seed path not configured")
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return Decode(raw, filepath.Ext(s.path))
}

// Decode parses a seed document; ext selects the decoder.
func Decode(raw []byte, ext string) ([]domain.Entry, error) {
	var file File
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("decode seed json: %w", err)
		}
	} else if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}
	if file.Entries == nil {
		file.Entries = []domain.Entry{}
	}
	return file.Entries, nil
}
