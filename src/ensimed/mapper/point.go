package mapper

import (
	"fmt"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/internal/offsets"
	"go.lsp.dev/protocol"
)

// PointToOffset resolves a point within content to a byte offset.
func PointToOffset(content []byte, p entity.PointParams) (int, error) {
	if p.Offset != nil {
		return *p.Offset, nil
	}
	if p.Position == nil {
		return 0, fmt.Errorf("point has neither offset nor position")
	}
	return offsets.New(content).PositionOffset(*p.Position)
}

// OffsetsToRange converts a byte range within content to an editor range.
func OffsetsToRange(content []byte, start, end int) (*protocol.Range, error) {
	r, err := offsets.New(content).Range(start, end)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
