// Package entity contains the domain types for the ensimed service.
package entity

import (
	"fmt"
	"path/filepath"

	"go.lsp.dev/uri"
)

const _archiveScheme = "zip"

// SourceFileInfo identifies a source unit on disk or inside an archive, with an optional unsaved-buffer override.
// Two values describe the same unit when their URIs are equal.
type SourceFileInfo struct {
	Path     string  `json:"path,omitempty"`
	Archive  string  `json:"archive,omitempty"`
	Entry    string  `json:"entry,omitempty"`
	Contents *string `json:"contents,omitempty"`
	Version  int32   `json:"version,omitempty"`
}

// DiskFile returns a SourceFileInfo for a file read from disk.
func DiskFile(path string) SourceFileInfo {
	return SourceFileInfo{Path: path}
}

// ArchiveEntry returns a SourceFileInfo for an entry stored inside an archive.
func ArchiveEntry(archive, entry string) SourceFileInfo {
	return SourceFileInfo{Archive: archive, Entry: entry}
}

// WithContents returns a copy of f whose contents override what is stored on disk or in the archive.
func (f SourceFileInfo) WithContents(contents string) SourceFileInfo {
	f.Contents = &contents
	return f
}

// IsArchiveEntry reports whether the unit lives inside an archive.
func (f SourceFileInfo) IsArchiveEntry() bool {
	return f.Archive != ""
}

// Validate checks that exactly one way of locating the unit is set.
func (f SourceFileInfo) Validate() error {
	switch {
	case f.Path != "" && f.Archive != "":
		return fmt.Errorf("source file %q cannot also name archive %q", f.Path, f.Archive)
	case f.Archive != "" && f.Entry == "":
		return fmt.Errorf("archive %q requires an entry", f.Archive)
	case f.Path == "" && f.Archive == "":
		return fmt.Errorf("source file requires a path or an archive entry")
	}
	return nil
}

// URI returns the logical identity of the unit.
func (f SourceFileInfo) URI() uri.URI {
	if f.IsArchiveEntry() {
		return uri.URI(fmt.Sprintf("%s:%s!/%s", _archiveScheme, uri.File(f.Archive), filepath.ToSlash(f.Entry)))
	}
	return uri.File(f.Path)
}

// Name returns a human readable name for diagnostics and logs.
func (f SourceFileInfo) Name() string {
	if f.IsArchiveEntry() {
		return f.Archive + "!/" + f.Entry
	}
	return f.Path
}

// Same reports whether both values identify the same unit.
func (f SourceFileInfo) Same(other SourceFileInfo) bool {
	return f.URI() == other.URI()
}
