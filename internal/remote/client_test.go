package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inte-real/inte-real-backend/internal/pipeline/domain"
	"github.com/inte-real/inte-real-backend/internal/storage/localstore"
)

func TestLoadOrCreateIdentity(t *testing.T) {
	ctx := context.Background()
	fb, err := localstore.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	store := localstore.New(fb)

	first := LoadOrCreateIdentity(ctx, store)
	require.NotEmpty(t, first)

	// stable across sessions
	second := LoadOrCreateIdentity(ctx, store)
	assert.Equal(t, first, second)

	// a different store mints a different identity
	fb2, err := localstore.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	other := LoadOrCreateIdentity(ctx, localstore.New(fb2))
	assert.NotEqual(t, first, other)
}

func TestClientWithoutIdentity(t *testing.T) {
	c := NewClient(nil)
	assert.Empty(t, c.Identity())

	err := c.UpsertProject(context.Background(), domain.Project{ID: "p1"})
	assert.ErrorIs(t, err, ErrNoIdentity)

	err = c.DeletePrompt(context.Background(), "r1")
	assert.ErrorIs(t, err, ErrNoIdentity)

	c.SetIdentity("uid-1")
	assert.Equal(t, "uid-1", c.Identity())
}

func TestSyncErrorWrapping(t *testing.T) {
	inner := errors.New("deadline exceeded")
	err := &SyncError{Op: "upsert_project", Key: "p1", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "upsert_project")
	assert.Contains(t, err.Error(), "p1")
}
