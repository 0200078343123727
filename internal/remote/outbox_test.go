package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inte-real/inte-real-backend/internal/pipeline/domain"
)

type fakeSyncer struct {
	err      error
	upserts  []domain.Project
	deletes  []string
	prompts  []domain.PromptRecord
	pDeletes []string
}

func (f *fakeSyncer) UpsertProject(_ context.Context, p domain.Project) error {
	f.upserts = append(f.upserts, p)
	return f.err
}

func (f *fakeSyncer) DeleteProject(_ context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	return f.err
}

func (f *fakeSyncer) UpsertPrompt(_ context.Context, rec domain.PromptRecord) error {
	f.prompts = append(f.prompts, rec)
	return f.err
}

func (f *fakeSyncer) DeletePrompt(_ context.Context, id string) error {
	f.pDeletes = append(f.pDeletes, id)
	return f.err
}

func TestOutboxDisabled(t *testing.T) {
	o := NewOutbox(nil)
	o.EnqueueUpsertProject(domain.Project{ID: "p1"})
	o.Flush(context.Background())

	h := o.Health()
	assert.False(t, h.Enabled)
	assert.Zero(t, h.Pending)
}

func TestOutboxFlushSuccess(t *testing.T) {
	syncer := &fakeSyncer{}
	o := NewOutbox(syncer)

	o.EnqueueUpsertProject(domain.Project{ID: "p1", Name: "one"})
	o.EnqueueUpsertPrompt(domain.PromptRecord{ID: "r1"})
	o.EnqueueDeleteProject("p2")
	o.EnqueueDeletePrompt("r2")

	require.Equal(t, 4, o.Health().Pending)
	o.Flush(context.Background())

	assert.Len(t, syncer.upserts, 1)
	assert.Equal(t, []string{"p2"}, syncer.deletes)
	assert.Len(t, syncer.prompts, 1)
	assert.Equal(t, []string{"r2"}, syncer.pDeletes)

	h := o.Health()
	assert.True(t, h.Enabled)
	assert.Zero(t, h.Pending)
	assert.NotNil(t, h.LastSyncedAt)
	assert.Empty(t, h.LastError)
}

func TestOutboxCoalescesUpserts(t *testing.T) {
	syncer := &fakeSyncer{}
	o := NewOutbox(syncer)

	o.EnqueueUpsertProject(domain.Project{ID: "p1", Name: "stale"})
	o.EnqueueUpsertProject(domain.Project{ID: "p1", Name: "fresh"})
	assert.Equal(t, 1, o.Health().Pending)

	o.Flush(context.Background())
	require.Len(t, syncer.upserts, 1)
	assert.Equal(t, "fresh", syncer.upserts[0].Name)
}

func TestOutboxRetriesWithBackoffThenDrops(t *testing.T) {
	syncer := &fakeSyncer{err: errors.New("firestore unavailable")}
	o := NewOutbox(syncer)
	o.baseBackoff = 0 // retry immediately under test

	o.EnqueueUpsertProject(domain.Project{ID: "p1"})

	for i := 0; i < o.maxAttempts; i++ {
		o.Flush(context.Background())
	}

	h := o.Health()
	assert.Zero(t, h.Pending)
	assert.Equal(t, 1, h.Dropped)
	assert.Equal(t, "firestore unavailable", h.LastError)
	assert.Len(t, syncer.upserts, o.maxAttempts)
}

func TestOutboxFailedOpWaitsForBackoff(t *testing.T) {
	syncer := &fakeSyncer{err: errors.New("boom")}
	o := NewOutbox(syncer)

	o.EnqueueUpsertProject(domain.Project{ID: "p1"})
	o.Flush(context.Background())
	require.Len(t, syncer.upserts, 1)

	// next attempt is not due yet
	o.Flush(context.Background())
	assert.Len(t, syncer.upserts, 1)
	assert.Equal(t, 1, o.Health().Pending)
}

func TestOutboxMissingIdentityDoesNotBurnAttempts(t *testing.T) {
	syncer := &fakeSyncer{err: ErrNoIdentity}
	o := NewOutbox(syncer)
	o.baseBackoff = 0

	o.EnqueueUpsertProject(domain.Project{ID: "p1"})
	for i := 0; i < o.maxAttempts*2; i++ {
		o.Flush(context.Background())
	}

	h := o.Health()
	assert.Equal(t, 1, h.Pending, "op should still be queued")
	assert.Zero(t, h.Dropped)

	// identity arrives, op goes through
	syncer.err = nil
	o.Flush(context.Background())
	assert.Zero(t, o.Health().Pending)
}

func TestOutboxFullDropsOldest(t *testing.T) {
	syncer := &fakeSyncer{}
	o := NewOutbox(syncer)
	o.maxQueue = 3

	for _, id := range []string{"a", "b", "c", "d"} {
		o.EnqueueDeleteProject(id)
	}

	h := o.Health()
	assert.Equal(t, 3, h.Pending)
	assert.Equal(t, 1, h.Dropped)

	o.Flush(context.Background())
	assert.Equal(t, []string{"b", "c", "d"}, syncer.deletes)
}
