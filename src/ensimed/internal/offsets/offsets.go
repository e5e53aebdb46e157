// Byte offset conversions adapted from the gopls "protocol" package.
// Based on the following: https://github.com/golang/tools/blob/67d73b2960c82b2c8db0b9d0694c66a789a1db11/gopls/internal/lsp/protocol/mapper.go

// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// License Revision: https://github.com/golang/tools/blob/67d73b2960c82b2c8db0b9d0694c66a789a1db11/LICENSE

// Package offsets converts between byte offsets and editor positions.
package offsets

import (
	"bytes"
	"fmt"
	"sort"
	"unicode/utf8"

	"go.lsp.dev/protocol"
)

// Mapper converts positions within one immutable buffer.
type Mapper struct {
	content   []byte
	lineStart []int // byte offset of the start of each 0-based line
	nonASCII  bool
}

// New indexes the line starts of content.
func New(content []byte) *Mapper {
	m := &Mapper{
		content:   content,
		lineStart: make([]int, 1, bytes.Count(content, []byte("\n"))+1),
	}
	for offset, b := range content {
		if b == '\n' {
			m.lineStart = append(m.lineStart, offset+1)
		}
		if b >= utf8.RuneSelf {
			m.nonASCII = true
		}
	}
	return m
}

// PositionOffset converts an editor position (0-based line, UTF-16 column) to a byte offset.
func (m *Mapper) PositionOffset(p protocol.Position) (int, error) {
	lines := uint32(len(m.lineStart))
	switch {
	case p.Line > lines:
		return 0, fmt.Errorf("line %d out of range 0-%d", p.Line, lines)
	case p.Line == lines:
		if p.Character == 0 {
			return len(m.content), nil
		}
		return 0, fmt.Errorf("column is beyond end of file")
	}

	start := m.lineStart[p.Line]
	rest := m.content[start:]
	col8 := 0
	for col16 := 0; col16 < int(p.Character); col16++ {
		r, size := utf8.DecodeRune(rest)
		switch {
		case size == 0:
			return 0, fmt.Errorf("column is beyond end of file")
		case r == '\n':
			return 0, fmt.Errorf("column is beyond end of line")
		case size == 1 && r == utf8.RuneError:
			return 0, fmt.Errorf("buffer contains invalid UTF-8 text")
		}
		rest = rest[size:]

		if r >= 0x10000 {
			// Surrogate pair; a position between the two codes lands before the rune.
			col16++
			if col16 == int(p.Character) {
				break
			}
		}
		col8 += size
	}
	return start + col8, nil
}

// OffsetPosition converts a byte offset to an editor position.
func (m *Mapper) OffsetPosition(offset int) (protocol.Position, error) {
	if offset < 0 || offset > len(m.content) {
		return protocol.Position{}, fmt.Errorf("invalid offset %d (want 0-%d)", offset, len(m.content))
	}

	line, start, cr := m.line(offset)
	col16 := offset - start
	if m.nonASCII {
		col16 = UTF16Len(m.content[start:offset])
	}
	if cr {
		col16--
	}
	return protocol.Position{Line: uint32(line), Character: uint32(col16)}, nil
}

// Range converts a pair of byte offsets to an editor range.
func (m *Mapper) Range(start, end int) (protocol.Range, error) {
	s, err := m.OffsetPosition(start)
	if err != nil {
		return protocol.Range{}, err
	}
	e, err := m.OffsetPosition(end)
	if err != nil {
		return protocol.Range{}, err
	}
	return protocol.Range{Start: s, End: e}, nil
}

// line returns the 0-based line enclosing offset, the offset of its first byte,
// and whether offset is the \n of a \r\n line ending.
func (m *Mapper) line(offset int) (int, int, bool) {
	line := sort.Search(len(m.lineStart), func(i int) bool {
		return offset < m.lineStart[i]
	}) - 1

	eol := len(m.content)
	if line+1 < len(m.lineStart) {
		eol = m.lineStart[line+1] - 1
	}
	cr := offset == eol && offset > 0 && m.content[offset-1] == '\r'
	return line, m.lineStart[line], cr
}

// UTF16Len returns the number of codes in the UTF-16 transcoding of s.
func UTF16Len(s []byte) int {
	var n int
	for len(s) > 0 {
		n++
		if s[0] < utf8.RuneSelf {
			s = s[1:]
			continue
		}
		r, size := utf8.DecodeRune(s)
		if r >= 0x10000 {
			n++
		}
		s = s[size:]
	}
	return n
}
