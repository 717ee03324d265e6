// Package stymlfs loads styml documents through an afero.Fs, so callers
// can point the fixture server or a test at an in-memory filesystem
// instead of touching disk.
package stymlfs

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/dfeneyrou/styml-go"
)

// Loader reads and parses styml documents from a given afero.Fs.
type Loader struct {
	fs afero.Fs
}

// New returns a Loader backed by fs.
func New(fs afero.Fs) Loader {
	return Loader{fs: fs}
}

// Load reads the file at path and parses it as a styml document.
func (l Loader) Load(path string) (*styml.Document, error) {
	src, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	doc, err := styml.ParseBytes(src)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return doc, nil
}

// Save renders doc in YAML form and writes it to path.
func (l Loader) Save(path string, doc *styml.Document) error {
	if err := afero.WriteFile(l.fs, path, []byte(doc.YAML()), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Exists reports whether path is present on the backing filesystem.
func (l Loader) Exists(path string) (bool, error) {
	return afero.Exists(l.fs, path)
}
