package templates

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arnavshah/day-planner-go/pkg/models"
	"github.com/arnavshah/day-planner-go/pkg/sheets"
)

var (
	ErrNotFound    = errors.New("template not found")
	ErrInvalidName = errors.New("template name must be a plain .xlsx file name")
)

// Entry describes one stored template document
type Entry struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Catalog stores role template documents in a directory
type Catalog struct {
	dir string
}

// NewCatalog opens the catalog at dir, creating it when missing
func NewCatalog(dir string) (*Catalog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create template dir: %w", err)
	}
	return &Catalog{dir: dir}, nil
}

func (c *Catalog) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		name += ".xlsx"
	}
	return filepath.Join(c.dir, name), nil
}

// Save writes a template document, replacing any existing one with the same name
func (c *Catalog) Save(name string, r io.Reader) (string, error) {
	path, err := c.path(name)
	if err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(c.dir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return filepath.Base(path), nil
}

// List returns the stored templates sorted by name
func (c *Catalog) List() ([]Entry, error) {
	items, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}
	entries := []Entry{}
	for _, it := range items {
		if it.IsDir() || strings.HasPrefix(it.Name(), ".") || !strings.EqualFold(filepath.Ext(it.Name()), ".xlsx") {
			continue
		}
		info, err := it.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Name: it.Name(), Size: info.Size(), Modified: info.ModTime()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Open returns the raw template document
func (c *Catalog) Open(name string) (io.ReadCloser, error) {
	path, err := c.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return f, err
}

// Template loads and parses the header row of a stored template
func (c *Catalog) Template(name string) (models.RoleTemplate, error) {
	f, err := c.Open(name)
	if err != nil {
		return models.RoleTemplate{}, err
	}
	defer f.Close()
	return sheets.ParseTemplate(f, name)
}
