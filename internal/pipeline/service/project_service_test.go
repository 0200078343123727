package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inte-real/inte-real-backend/internal/pipeline/domain"
	"github.com/inte-real/inte-real-backend/internal/remote"
	"github.com/inte-real/inte-real-backend/internal/storage/localstore"
)

type recordingSyncer struct {
	mu       sync.Mutex
	upserted []domain.Project
	deleted  []string
	prompts  []domain.PromptRecord
	pDeleted []string
}

func (r *recordingSyncer) UpsertProject(_ context.Context, p domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserted = append(r.upserted, p)
	return nil
}

func (r *recordingSyncer) DeleteProject(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *recordingSyncer) UpsertPrompt(_ context.Context, rec domain.PromptRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, rec)
	return nil
}

func (r *recordingSyncer) DeletePrompt(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pDeleted = append(r.pDeleted, id)
	return nil
}

func newTestService(t *testing.T) (*ProjectService, *localstore.Store) {
	fb, err := localstore.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	local := localstore.New(fb)
	svc := NewProjectService(context.Background(), local, remote.NewOutbox(nil), nil, nil)
	return svc, local
}

func TestCreateProject(t *testing.T) {
	ctx := context.Background()
	svc, local := newTestService(t)

	t.Run("rejects blank name or usage", func(t *testing.T) {
		_, err := svc.CreateProject(ctx, "", "office", "", "")
		assert.ErrorIs(t, err, domain.ErrEmptyField)

		_, err = svc.CreateProject(ctx, "   ", "office", "", "")
		assert.ErrorIs(t, err, domain.ErrEmptyField)

		_, err = svc.CreateProject(ctx, "신사옥", "  ", "", "")
		assert.ErrorIs(t, err, domain.ErrEmptyField)
	})

	t.Run("new project starts at flow with all stages empty", func(t *testing.T) {
		p, err := svc.CreateProject(ctx, "  강남 클리닉  ", "의원", "김원장", "서울 강남구")
		require.NoError(t, err)

		assert.Equal(t, "강남 클리닉", p.Name)
		assert.Equal(t, "의원", p.Usage)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, domain.StageFlow, p.CurrentStage)
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
		require.Len(t, p.Stages, 5)
		for _, k := range domain.StageOrder {
			assert.Nil(t, p.Stages[k].CompletedAt)
		}
		assert.Equal(t, 0, domain.ProgressPercent(p))
	})

	t.Run("newest project is listed first", func(t *testing.T) {
		_, err := svc.CreateProject(ctx, "두번째", "카페", "", "")
		require.NoError(t, err)

		list := svc.Projects()
		require.Len(t, list, 2)
		assert.Equal(t, "두번째", list[0].Name)
		assert.Equal(t, "강남 클리닉", list[1].Name)
	})

	t.Run("card colors round-robin the palette", func(t *testing.T) {
		fresh := NewProjectService(ctx, localstore.New(mustFileBackend(t)), remote.NewOutbox(nil), nil, nil)
		var colors []string
		for i := 0; i < 6; i++ {
			p, err := fresh.CreateProject(ctx, "p", "u", "", "")
			require.NoError(t, err)
			colors = append(colors, p.Color)
		}
		for i, want := range domain.CardColors {
			assert.Equal(t, want, colors[i])
		}
		// sixth project wraps around
		assert.Equal(t, domain.CardColors[0], colors[5])
	})

	t.Run("collection survives a restart", func(t *testing.T) {
		reloaded := NewProjectService(ctx, local, remote.NewOutbox(nil), nil, nil)
		assert.Len(t, reloaded.Projects(), 2)
	})
}

func mustFileBackend(t *testing.T) *localstore.FileBackend {
	fb, err := localstore.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return fb
}

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	p, err := svc.CreateProject(ctx, "리모델링", "주택", "", "")
	require.NoError(t, err)

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateProject(ctx, "missing", ProjectPatch{})
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("nil fields stay untouched", func(t *testing.T) {
		loc := "제주"
		got, err := svc.UpdateProject(ctx, p.ID, ProjectPatch{Location: &loc})
		require.NoError(t, err)
		assert.Equal(t, "제주", got.Location)
		assert.Equal(t, "리모델링", got.Name)
		assert.Equal(t, "주택", got.Usage)
		assert.True(t, got.UpdatedAt.After(p.UpdatedAt) || got.UpdatedAt.Equal(p.UpdatedAt))
	})

	t.Run("rejects unknown stage keys", func(t *testing.T) {
		bad := domain.StageKey("paint")
		_, err := svc.UpdateProject(ctx, p.ID, ProjectPatch{CurrentStage: &bad})
		assert.ErrorIs(t, err, domain.ErrInvalidStage)

		_, err = svc.UpdateProject(ctx, p.ID, ProjectPatch{
			Stages: map[domain.StageKey]domain.StageResult{"paint": {}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStage)
	})

	t.Run("stage patch merges over existing stages", func(t *testing.T) {
		got, err := svc.UpdateProject(ctx, p.ID, ProjectPatch{
			Stages: map[domain.StageKey]domain.StageResult{
				domain.StageTone: {Prompt: "tone prompt"},
			},
		})
		require.NoError(t, err)
		require.Len(t, got.Stages, 5)
		assert.Equal(t, "tone prompt", got.Stages[domain.StageTone].Prompt)
	})
}

func TestCompleteStage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	p, err := svc.CreateProject(ctx, "강남 클리닉", "의원", "", "")
	require.NoError(t, err)

	t.Run("invalid stage", func(t *testing.T) {
		_, err := svc.CompleteStage(ctx, p.ID, "paint", domain.StageResult{})
		assert.ErrorIs(t, err, domain.ErrInvalidStage)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.CompleteStage(ctx, "missing", domain.StageFlow, domain.StageResult{})
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("completion stamps the stage and advances", func(t *testing.T) {
		got, err := svc.CompleteStage(ctx, p.ID, domain.StageFlow, domain.StageResult{
			Prompt:      "flow prompt",
			SelectedAlt: "안 2",
		})
		require.NoError(t, err)

		r := got.Stages[domain.StageFlow]
		require.NotNil(t, r.CompletedAt)
		assert.Equal(t, "flow prompt", r.Prompt)
		assert.Equal(t, "안 2", r.SelectedAlt)
		assert.Equal(t, domain.StageTone, got.CurrentStage)
		assert.Equal(t, 20, domain.ProgressPercent(got))
	})

	t.Run("re-completing overwrites the previous result", func(t *testing.T) {
		first, err := svc.GetProject(p.ID)
		require.NoError(t, err)
		firstDone := *first.Stages[domain.StageFlow].CompletedAt

		got, err := svc.CompleteStage(ctx, p.ID, domain.StageFlow, domain.StageResult{Prompt: "revised"})
		require.NoError(t, err)

		r := got.Stages[domain.StageFlow]
		assert.Equal(t, "revised", r.Prompt)
		assert.Empty(t, r.SelectedAlt)
		assert.False(t, r.CompletedAt.Before(firstDone))
		assert.Equal(t, 20, domain.ProgressPercent(got))
	})

	t.Run("the last stage stays current", func(t *testing.T) {
		for _, k := range []domain.StageKey{domain.StageTone, domain.StageRise, domain.StageFuse, domain.StageLens} {
			_, err := svc.CompleteStage(ctx, p.ID, k, domain.StageResult{})
			require.NoError(t, err)
		}
		got, err := svc.GetProject(p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StageLens, got.CurrentStage)
		assert.Equal(t, 100, domain.ProgressPercent(got))

		stats := svc.Stats()
		assert.Equal(t, 1, stats.CompletedProjects)
	})
}

func TestPrompts(t *testing.T) {
	ctx := context.Background()
	svc, local := newTestService(t)

	p, err := svc.CreateProject(ctx, "카페", "카페", "", "")
	require.NoError(t, err)

	t.Run("rejects invalid stage", func(t *testing.T) {
		_, err := svc.SavePrompt(ctx, p.ID, p.Name, "paint", "text")
		assert.ErrorIs(t, err, domain.ErrInvalidStage)
	})

	t.Run("identical prompts saved twice produce two records", func(t *testing.T) {
		first, err := svc.SavePrompt(ctx, p.ID, p.Name, domain.StageFlow, "same text")
		require.NoError(t, err)
		second, err := svc.SavePrompt(ctx, p.ID, p.Name, domain.StageFlow, "same text")
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		list := svc.Prompts()
		require.Len(t, list, 2)
		// newest first
		assert.Equal(t, second.ID, list[0].ID)
	})

	t.Run("records survive deleting their project", func(t *testing.T) {
		require.NoError(t, svc.DeleteProject(ctx, p.ID))
		_, err := svc.GetProject(p.ID)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
		assert.Len(t, svc.Prompts(), 2)
	})

	t.Run("delete removes one record", func(t *testing.T) {
		list := svc.Prompts()
		require.NoError(t, svc.DeletePrompt(ctx, list[0].ID))
		assert.Len(t, svc.Prompts(), 1)

		assert.ErrorIs(t, svc.DeletePrompt(ctx, "missing"), domain.ErrPromptNotFound)
	})

	t.Run("records survive a restart", func(t *testing.T) {
		reloaded := NewProjectService(ctx, local, remote.NewOutbox(nil), nil, nil)
		assert.Len(t, reloaded.Prompts(), 1)
	})
}

func TestReconcileFromRemote(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CreateProject(ctx, "로컬 전용", "카페", "", "")
	require.NoError(t, err)
	_, err = svc.SavePrompt(ctx, "x", "로컬 전용", domain.StageFlow, "local prompt")
	require.NoError(t, err)

	remoteProjects := []domain.Project{
		{ID: "r1", Name: "원격 A", Usage: "office", Stages: domain.EmptyStages(), CurrentStage: domain.StageFlow},
		{ID: "r2", Name: "원격 B", Usage: "shop", Stages: domain.EmptyStages(), CurrentStage: domain.StageTone},
	}
	svc.ReconcileFromRemote(ctx, remoteProjects)
	svc.ReconcilePrompts(ctx, nil)

	list := svc.Projects()
	require.Len(t, list, 2)
	assert.Equal(t, "원격 A", list[0].Name)
	assert.Empty(t, svc.Prompts())
}

func TestMutationsReachTheSyncer(t *testing.T) {
	ctx := context.Background()
	fb, err := localstore.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	local := localstore.New(fb)

	syncer := &recordingSyncer{}
	outbox := remote.NewOutbox(syncer)
	svc := NewProjectService(ctx, local, outbox, nil, nil)

	p, err := svc.CreateProject(ctx, "동기화", "office", "", "")
	require.NoError(t, err)
	rec, err := svc.SavePrompt(ctx, p.ID, p.Name, domain.StageFlow, "text")
	require.NoError(t, err)
	require.NoError(t, svc.DeletePrompt(ctx, rec.ID))
	require.NoError(t, svc.DeleteProject(ctx, p.ID))

	outbox.Flush(ctx)

	require.Len(t, syncer.upserted, 1)
	assert.Equal(t, p.ID, syncer.upserted[0].ID)
	assert.Equal(t, []string{p.ID}, syncer.deleted)
	require.Len(t, syncer.prompts, 1)
	assert.Equal(t, []string{rec.ID}, syncer.pDeleted)
}
