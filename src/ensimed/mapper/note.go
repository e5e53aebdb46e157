package mapper

import (
	"sort"
	"strings"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/gateway/compiler"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

const _diagnosticSource = "ensimed"

// KindToSeverity collapses the front end's diagnostic kinds into the severities reported to clients.
// Unknown kinds are reported as information.
func KindToSeverity(k compiler.Kind) entity.Severity {
	switch k {
	case compiler.KindError:
		return entity.SeverityError
	case compiler.KindWarning, compiler.KindMandatoryWarning:
		return entity.SeverityWarning
	default:
		return entity.SeverityInfo
	}
}

// DiagnosticToNote converts a front-end diagnostic into a Note.
// When the front end could not determine the extent of the problem, the note
// spans the single point the diagnostic was reported at.
func DiagnosticToNote(d compiler.Diagnostic) entity.Note {
	start, end := d.Start, d.End
	if !start.Valid {
		start = d.Point
	}
	if !end.Valid {
		end = start
	}
	return entity.Note{
		File:      d.Name,
		Message:   d.Message,
		Severity:  KindToSeverity(d.Kind),
		Start:     start.Offset,
		End:       end.Offset,
		Line:      start.Line,
		Column:    start.Column,
		EndLine:   end.Line,
		EndColumn: end.Column,
	}
}

// SeverityToDiagnosticSeverity maps a note severity onto the editor protocol.
func SeverityToDiagnosticSeverity(s entity.Severity) protocol.DiagnosticSeverity {
	switch s {
	case entity.SeverityError:
		return protocol.DiagnosticSeverityError
	case entity.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

// NoteToDiagnostic converts a note into an editor diagnostic.
func NoteToDiagnostic(n entity.Note) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: lineColumnToPosition(n.Line, n.Column),
			End:   lineColumnToPosition(n.EndLine, n.EndColumn),
		},
		Severity: SeverityToDiagnosticSeverity(n.Severity),
		Source:   _diagnosticSource,
		Message:  n.Message,
	}
}

// NotesToPublishDiagnostics groups notes by file, ordered by file name.
func NotesToPublishDiagnostics(notes []entity.Note) []protocol.PublishDiagnosticsParams {
	byFile := make(map[string][]protocol.Diagnostic)
	for _, n := range notes {
		byFile[n.File] = append(byFile[n.File], NoteToDiagnostic(n))
	}

	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	result := make([]protocol.PublishDiagnosticsParams, 0, len(files))
	for _, f := range files {
		result = append(result, protocol.PublishDiagnosticsParams{
			URI:         fileURI(f),
			Diagnostics: byFile[f],
		})
	}
	return result
}

func lineColumnToPosition(line, column int) protocol.Position {
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}
	return protocol.Position{Line: uint32(line - 1), Character: uint32(column - 1)}
}

// fileURI turns a note's file name back into a URI. Archive entries are named "archive!/entry".
func fileURI(name string) protocol.DocumentURI {
	if archive, entry, ok := strings.Cut(name, "!/"); ok {
		return protocol.DocumentURI(entity.ArchiveEntry(archive, entry).URI())
	}
	return protocol.DocumentURI(uri.File(name))
}
