package mapper

import (
	"encoding/json"
	"testing"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventToNotification(t *testing.T) {
	n, err := EventToNotification(entity.AnalyzerReadyEvent())
	require.NoError(t, err)
	assert.Equal(t, EventMethod, n.Method())
	assert.JSONEq(t, `{"kind":"AnalyzerReady"}`, string(n.Params()))

	n, err = EventToNotification(entity.NewNotesEvent(true, []entity.Note{factory.Note("/work/a.go")}))
	require.NoError(t, err)

	var payload EventPayload
	require.NoError(t, json.Unmarshal(n.Params(), &payload))
	assert.Equal(t, entity.EventNewNotes, payload.Kind)
	assert.True(t, payload.IsFull)
	assert.Len(t, payload.Notes, 1)
	require.Len(t, payload.Diagnostics, 1)
	assert.Len(t, payload.Diagnostics[0].Diagnostics, 1)
}
