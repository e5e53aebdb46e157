package offsets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
)

func TestPositionOffset(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pos     protocol.Position
		offset  int
		wantErr bool
	}{
		{
			name:   "start of second line",
			text:   "sample\ncontent\n",
			pos:    protocol.Position{Line: 1, Character: 0},
			offset: 7,
		},
		{
			name:   "middle of line",
			text:   "sample\ncontent\n",
			pos:    protocol.Position{Line: 1, Character: 3},
			offset: 10,
		},
		{
			name:    "line out of range",
			text:    "sample\ncontent\n",
			pos:     protocol.Position{Line: 15},
			wantErr: true,
		},
		{
			name:   "end of file",
			text:   "sample\ncontent\n",
			pos:    protocol.Position{Line: 3, Character: 0},
			offset: 15,
		},
		{
			name:    "past end of file",
			text:    "sample\ncontent\n",
			pos:     protocol.Position{Line: 3, Character: 1},
			wantErr: true,
		},
		{
			name:    "past end of line",
			text:    "ab\ncd\n",
			pos:     protocol.Position{Line: 0, Character: 5},
			wantErr: true,
		},
		{
			name:   "multi-byte rune",
			text:   "é = 1\n",
			pos:    protocol.Position{Line: 0, Character: 1},
			offset: 2,
		},
		{
			name:   "surrogate pair",
			text:   "😀x\n",
			pos:    protocol.Position{Line: 0, Character: 2},
			offset: 4,
		},
		{
			name:    "invalid utf8",
			text:    "a\xffb\n",
			pos:     protocol.Position{Line: 0, Character: 2},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, err := New([]byte(tt.text)).PositionOffset(tt.pos)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestOffsetPosition(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		offset  int
		pos     protocol.Position
		wantErr bool
	}{
		{
			name:   "first line",
			text:   "sample\ncontent\n",
			offset: 3,
			pos:    protocol.Position{Line: 0, Character: 3},
		},
		{
			name:   "second line",
			text:   "sample\ncontent\n",
			offset: 9,
			pos:    protocol.Position{Line: 1, Character: 2},
		},
		{
			name:   "end of file",
			text:   "sample\ncontent\n",
			offset: 15,
			pos:    protocol.Position{Line: 2, Character: 0},
		},
		{
			name:   "crlf line ending",
			text:   "ab\r\ncd",
			offset: 3,
			pos:    protocol.Position{Line: 0, Character: 2},
		},
		{
			name:   "non-ascii",
			text:   "😀x\n",
			offset: 4,
			pos:    protocol.Position{Line: 0, Character: 2},
		},
		{
			name:    "negative",
			text:    "abc",
			offset:  -1,
			wantErr: true,
		},
		{
			name:    "past end",
			text:    "abc",
			offset:  4,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := New([]byte(tt.text)).OffsetPosition(tt.offset)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pos, pos)
		})
	}
}

func TestRange(t *testing.T) {
	m := New([]byte("package a\n\nvar x int\n"))
	r, err := m.Range(15, 16)
	require.NoError(t, err)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 2, Character: 4},
		End:   protocol.Position{Line: 2, Character: 5},
	}, r)

	_, err = m.Range(0, 100)
	assert.Error(t, err)
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 0, UTF16Len(nil))
	assert.Equal(t, 3, UTF16Len([]byte("abc")))
	assert.Equal(t, 1, UTF16Len([]byte("é")))
	assert.Equal(t, 2, UTF16Len([]byte("😀")))
}
