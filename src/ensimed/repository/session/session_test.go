package session

import (
	"context"
	"testing"
	"time"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/factory"
	"github.com/ensime/ensimed/src/ensimed/internal/errors"
	"github.com/ensime/ensimed/src/ensimed/mapper"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
)

func TestSessionRepository(t *testing.T) {
	t.Run("should Set and Get successfully", func(t *testing.T) {
		s := factory.Session()
		repository := New(tally.NewTestScope("testing", nil))

		require.NoError(t, repository.Set(context.Background(), s))
		val, err := repository.Get(context.Background(), s.UUID)
		require.NoError(t, err)
		assert.Equal(t, s, val)

		val.Replayed = true
		stored, err := repository.Get(context.Background(), s.UUID)
		require.NoError(t, err)
		assert.False(t, stored.Replayed)
	})

	t.Run("should fail to get something that was not Set", func(t *testing.T) {
		repository := New(tally.NewTestScope("testing", nil))

		id := factory.UUID()
		_, err := repository.Get(context.Background(), id)
		var nf *errors.UUIDNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, id, nf.UUID)
	})

	t.Run("should reject nil sessions", func(t *testing.T) {
		repository := New(tally.NewTestScope("testing", nil))
		assert.Error(t, repository.Set(context.Background(), nil))
	})
}

func TestGetFromContext(t *testing.T) {
	t.Run("should get when uuid is in context", func(t *testing.T) {
		s := factory.Session()
		repository := New(tally.NewTestScope("testing", nil))
		ctx := mapper.SessionToContext(context.Background(), s)
		require.NoError(t, repository.Set(ctx, s))

		val, err := repository.GetFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, s.UUID, val.UUID)
	})

	t.Run("should fail when uuid is missing from context", func(t *testing.T) {
		repository := New(tally.NewTestScope("testing", nil))
		_, err := repository.GetFromContext(context.Background())
		assert.Error(t, err)
	})

	t.Run("should fail when the session is not in the repository", func(t *testing.T) {
		repository := New(tally.NewTestScope("testing", nil))
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, uuid.Nil)
		_, err := repository.GetFromContext(ctx)
		assert.Error(t, err)
	})
}

func TestDeleteAndCount(t *testing.T) {
	ctx := context.Background()
	scope := tally.NewTestScope("", nil)
	repository := New(scope)

	first := factory.Session()
	second := factory.Session()
	second.ConnectedAt = first.ConnectedAt.Add(-time.Minute)
	require.NoError(t, repository.Set(ctx, first))
	require.NoError(t, repository.Set(ctx, second))

	count, err := repository.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, float64(2), scope.Snapshot().Gauges()["connections.active+"].Value())

	all, err := repository.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.UUID, all[0].UUID)
	assert.Equal(t, first.UUID, all[1].UUID)

	require.NoError(t, repository.Delete(ctx, second.UUID))
	require.NoError(t, repository.Delete(ctx, second.UUID))
	count, err = repository.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, float64(1), scope.Snapshot().Gauges()["connections.active+"].Value())
}
