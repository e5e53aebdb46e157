package analyzer

import (
	"sort"
	"sync"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/gateway/compiler"
	"go.lsp.dev/uri"
)

type workingSetEntry struct {
	info   entity.SourceFileInfo
	handle compiler.File
}

// workingSet maps unit URIs to compiler handles. It is safe for concurrent use.
type workingSet struct {
	mu      sync.RWMutex
	entries map[uri.URI]workingSetEntry
}

func newWorkingSet() *workingSet {
	return &workingSet{entries: make(map[uri.URI]workingSetEntry)}
}

// put installs handle for info, replacing any previous handle of the same unit.
func (w *workingSet) put(info entity.SourceFileInfo, handle compiler.File) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries[info.URI()] = workingSetEntry{info: info, handle: handle}
}

func (w *workingSet) get(u uri.URI) (workingSetEntry, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entries[u]
	return e, ok
}

func (w *workingSet) remove(u uri.URI) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.entries[u]
	delete(w.entries, u)
	return ok
}

func (w *workingSet) len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}

// snapshot returns the entries ordered by URI. Later puts do not affect the result.
func (w *workingSet) snapshot() []workingSetEntry {
	w.mu.RLock()
	entries := make([]workingSetEntry, 0, len(w.entries))
	for _, e := range w.entries {
		entries = append(entries, e)
	}
	w.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].handle.URI() < entries[j].handle.URI() })
	return entries
}

func handles(entries []workingSetEntry) []compiler.File {
	result := make([]compiler.File, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.handle)
	}
	return result
}
