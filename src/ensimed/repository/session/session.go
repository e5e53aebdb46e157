// Package session stores the client connections currently attached to the server.
package session

import (
	"context"
	"sort"
	"sync"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/internal/errors"
	"github.com/ensime/ensimed/src/ensimed/mapper"
	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
)

// Module provides the session repository to an Fx application.
var Module = fx.Provide(New)

// Repository is an entity-scoped repository.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	GetFromContext(ctx context.Context) (*entity.Session, error)
	// All returns every live session ordered by connection time.
	All(ctx context.Context) ([]*entity.Session, error)
	Set(ctx context.Context, s *entity.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	SessionCount(ctx context.Context) (int, error)
}

type repository struct {
	mu       sync.Mutex
	memstore map[uuid.UUID]entity.Session
	active   tally.Gauge
}

// New returns a repository to a key-value Session data store.
func New(stats tally.Scope) Repository {
	return &repository{
		memstore: make(map[uuid.UUID]entity.Session),
		active:   stats.SubScope("connections").Gauge("active"),
	}
}

// Get returns a copy of the Session associated with the given id.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.memstore[id]
	if !ok {
		return nil, &errors.UUIDNotFoundError{UUID: id}
	}
	return &s, nil
}

// GetFromContext returns the Session associated with the given context.
func (r *repository) GetFromContext(ctx context.Context) (*entity.Session, error) {
	id, ok := mapper.ContextToSessionUUID(ctx)
	if !ok {
		return nil, errors.New("no session in context")
	}
	return r.Get(ctx, id)
}

func (r *repository) All(ctx context.Context) ([]*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := make([]*entity.Session, 0, len(r.memstore))
	for _, s := range r.memstore {
		found = append(found, &s)
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].ConnectedAt.Before(found[j].ConnectedAt)
	})
	return found, nil
}

// Set sets the Session to its associated uuid.
func (r *repository) Set(ctx context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s == nil {
		return errors.New("can't save nil session")
	}
	r.memstore[s.UUID] = *s
	r.active.Update(float64(len(r.memstore)))
	return nil
}

// Delete removes the Session associated with the given id.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.memstore, id)
	r.active.Update(float64(len(r.memstore)))
	return nil
}

// SessionCount returns the total count of active sessions.
func (r *repository) SessionCount(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.memstore), nil
}
