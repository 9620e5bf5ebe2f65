package fs // import "github.com/storyworld/storyworld/store/fs"

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/storyworld/storyworld/log"
	"go.uber.org/zap"
)

// Adapter persists one collection per JSON file, always as a whole
// snapshot. There are no partial updates.
type Adapter struct {
	dir string
}

func NewAdapter(dir string) (*Adapter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "unable to create collections folder %s", dir)
	}
	return &Adapter{dir: dir}, nil
}

// Path returns the backing file of the named collection.
func (a *Adapter) Path(name string) string {
	return filepath.Join(a.dir, name+".json")
}

// Load reads the named collection into v. An absent file leaves v
// untouched. A file that fails to parse is logged and treated as empty,
// the caller is not told.
func (a *Adapter) Load(name string, v any) error {
	data, err := os.ReadFile(a.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "unable to read collection %s", name)
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Warn("Collection file is corrupt, starting empty",
			zap.String("collection", name),
			zap.Error(err))
		return nil
	}
	return nil
}

// Save overwrites the backing file with the full snapshot. The write
// goes to a temp file first and is renamed into place, so readers never
// observe a partial file.
func (a *Adapter) Save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "unable to marshal collection %s", name)
	}

	tmp, err := os.CreateTemp(a.dir, name+"-*.json.tmp")
	if err != nil {
		return errors.Wrapf(err, "unable to create temp file for collection %s", name)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "unable to write collection %s", name)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "unable to close collection %s", name)
	}

	if err := os.Rename(tmpName, a.Path(name)); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "unable to replace collection %s", name)
	}
	return nil
}

func (a *Adapter) Close() error {
	return nil
}
