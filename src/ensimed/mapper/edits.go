package mapper

import (
	"fmt"
	"sort"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffsToFileEdits converts diffs into edits on file, with offsets within the diffs' source text.
func DiffsToFileEdits(file string, diffs []diffmatchpatch.Diff) []entity.FileEdit {
	edits := make([]entity.FileEdit, 0, len(diffs))
	offset := 0
	for _, d := range diffs {
		start := offset
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			offset += len(d.Text)
			edits = append(edits, entity.FileEdit{File: file, From: start, To: offset})
		case diffmatchpatch.DiffEqual:
			offset += len(d.Text)
		case diffmatchpatch.DiffInsert:
			// A delete followed by an insert at the same place is one replacement.
			if n := len(edits); n > 0 && edits[n-1].To == start && edits[n-1].Text == "" && edits[n-1].From != edits[n-1].To {
				edits[n-1].Text = d.Text
				continue
			}
			edits = append(edits, entity.FileEdit{File: file, From: start, To: start, Text: d.Text})
		}
	}
	return edits
}

// ApplyFileEdits applies edits to content. Offsets refer to the original content and edits must not overlap.
func ApplyFileEdits(content []byte, edits []entity.FileEdit) ([]byte, error) {
	sorted := make([]entity.FileEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })

	var out []byte
	last := 0
	for _, e := range sorted {
		if e.From < last || e.To < e.From || e.To > len(content) {
			return nil, fmt.Errorf("invalid edit [%d, %d) of %s (size %d)", e.From, e.To, e.File, len(content))
		}
		out = append(out, content[last:e.From]...)
		out = append(out, e.Text...)
		last = e.To
	}
	return append(out, content[last:]...), nil
}

// GroupEditsByFile splits edits per file, keeping the order in which files first appear.
func GroupEditsByFile(edits []entity.FileEdit) (files []string, byFile map[string][]entity.FileEdit) {
	byFile = make(map[string][]entity.FileEdit)
	for _, e := range edits {
		if _, ok := byFile[e.File]; !ok {
			files = append(files, e.File)
		}
		byFile[e.File] = append(byFile[e.File], e)
	}
	return files, byFile
}
