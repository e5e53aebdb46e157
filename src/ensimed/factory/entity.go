package factory

import (
	"fmt"
	"math/rand"

	"github.com/ensime/ensimed/src/ensimed/entity"
)

// Note returns a random error note in file.
func Note(file string) entity.Note {
	line := rand.Intn(100) + 1
	column := rand.Intn(80) + 1
	start := rand.Intn(1000)
	return entity.Note{
		File:      file,
		Message:   fmt.Sprintf("problem %d", rand.Intn(1000)),
		Severity:  entity.SeverityError,
		Start:     start,
		End:       start + 1,
		Line:      line,
		Column:    column,
		EndLine:   line,
		EndColumn: column + 1,
	}
}

// Events returns n distinguishable background message events.
func Events(n int) []entity.Event {
	events := make([]entity.Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, entity.BackgroundMessageEvent(i, fmt.Sprintf("event %d", i)))
	}
	return events
}

// FileEdit returns an edit replacing [from, to) of file with text.
func FileEdit(file string, from, to int, text string) entity.FileEdit {
	return entity.FileEdit{File: file, From: from, To: to, Text: text}
}
