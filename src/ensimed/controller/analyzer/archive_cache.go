package analyzer

import (
	"fmt"
	"io"
	"path"
	"sort"
	"sync"

	ensimederrors "github.com/ensime/ensimed/src/ensimed/internal/errors"
	"github.com/klauspost/compress/zip"
	"go.uber.org/multierr"
	"golang.org/x/sync/singleflight"
)

type openArchive struct {
	reader *zip.ReadCloser
	files  map[string]*zip.File
}

// archiveCache keeps one open handle per archive for the lifetime of the process.
// Archives are assumed immutable, so handles are never invalidated.
type archiveCache struct {
	group singleflight.Group

	mu       sync.RWMutex
	archives map[string]*openArchive
}

func newArchiveCache() *archiveCache {
	return &archiveCache{archives: make(map[string]*openArchive)}
}

func (c *archiveCache) lookup(archive string) (*openArchive, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.archives[archive]
	return a, ok
}

// open returns the handle for archive. Concurrent first opens of the same archive share one read.
func (c *archiveCache) open(archive string) (*openArchive, error) {
	if a, ok := c.lookup(archive); ok {
		return a, nil
	}

	v, err, _ := c.group.Do(archive, func() (interface{}, error) {
		if a, ok := c.lookup(archive); ok {
			return a, nil
		}

		r, err := zip.OpenReader(archive)
		if err != nil {
			return nil, fmt.Errorf("opening archive %q: %w", archive, err)
		}
		a := &openArchive{reader: r, files: make(map[string]*zip.File, len(r.File))}
		for _, f := range r.File {
			a.files[f.Name] = f
		}

		c.mu.Lock()
		c.archives[archive] = a
		c.mu.Unlock()
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*openArchive), nil
}

// read returns the contents of entry inside archive.
func (c *archiveCache) read(archive, entry string) ([]byte, error) {
	a, err := c.open(archive)
	if err != nil {
		return nil, err
	}

	f, ok := a.files[path.Clean(entry)]
	if !ok {
		return nil, &ensimederrors.SourceNotFoundError{URI: archive + "!/" + entry}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %q in archive %q: %w", entry, archive, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %q from archive %q: %w", entry, archive, err)
	}
	return data, nil
}

// entries lists the regular files inside archive with extension ext, sorted by name.
func (c *archiveCache) entries(archive, ext string) ([]string, error) {
	a, err := c.open(archive)
	if err != nil {
		return nil, err
	}

	var names []string
	for name, f := range a.files {
		if f.FileInfo().IsDir() || path.Ext(name) != ext {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (c *archiveCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.archives)
}

func (c *archiveCache) close() (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, a := range c.archives {
		err = multierr.Append(err, a.reader.Close())
		delete(c.archives, name)
	}
	return err
}
