package mapper

import (
	"context"
	"time"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/gofrs/uuid"
)

// NewSession initializes a Session entity for a freshly accepted connection.
func NewSession(u uuid.UUID, remoteAddr string, now time.Time) *entity.Session {
	return &entity.Session{
		UUID:        u,
		RemoteAddr:  remoteAddr,
		ConnectedAt: now,
	}
}

// SessionToContext returns a child context carrying the session UUID.
func SessionToContext(ctx context.Context, s *entity.Session) context.Context {
	return context.WithValue(ctx, entity.SessionContextKey, s.UUID)
}

// ContextToSessionUUID extracts the session UUID from a context.
func ContextToSessionUUID(ctx context.Context) (uuid.UUID, bool) {
	s, ok := ctx.Value(entity.SessionContextKey).(uuid.UUID)
	return s, ok
}
