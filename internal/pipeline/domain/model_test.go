package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStage(t *testing.T) {
	assert.Equal(t, StageTone, NextStage(StageFlow))
	assert.Equal(t, StageRise, NextStage(StageTone))
	assert.Equal(t, StageFuse, NextStage(StageRise))
	assert.Equal(t, StageLens, NextStage(StageFuse))

	// the last stage stays current
	assert.Equal(t, StageLens, NextStage(StageLens))
}

func TestValidStage(t *testing.T) {
	for _, k := range StageOrder {
		assert.True(t, ValidStage(k))
	}
	assert.False(t, ValidStage("paint"))
	assert.False(t, ValidStage(""))
}

func TestEmptyStages(t *testing.T) {
	m := EmptyStages()
	require.Len(t, m, 5)
	for _, k := range StageOrder {
		r, ok := m[k]
		require.True(t, ok, "stage %s missing", k)
		assert.Nil(t, r.CompletedAt)
		assert.Empty(t, r.Prompt)
	}
}

func TestProgressPercent(t *testing.T) {
	p := Project{Stages: EmptyStages()}
	assert.Equal(t, 0, ProgressPercent(&p))

	now := time.Now()
	p.Stages[StageFlow] = StageResult{CompletedAt: &now}
	assert.Equal(t, 20, ProgressPercent(&p))

	p.Stages[StageTone] = StageResult{CompletedAt: &now}
	p.Stages[StageRise] = StageResult{CompletedAt: &now}
	assert.Equal(t, 60, ProgressPercent(&p))

	p.Stages[StageFuse] = StageResult{CompletedAt: &now}
	p.Stages[StageLens] = StageResult{CompletedAt: &now}
	assert.Equal(t, 100, ProgressPercent(&p))
}

func TestComputeStats(t *testing.T) {
	now := time.Now()

	done := Project{Stages: EmptyStages()}
	for _, k := range StageOrder {
		done.Stages[k] = StageResult{CompletedAt: &now}
	}
	partial := Project{Stages: EmptyStages()}
	partial.Stages[StageFlow] = StageResult{CompletedAt: &now}
	partial.Stages[StageTone] = StageResult{CompletedAt: &now}

	stats := ComputeStats(
		[]Project{done, partial, {Stages: EmptyStages()}},
		[]PromptRecord{{ID: "a"}, {ID: "b"}},
	)

	assert.Equal(t, 3, stats.TotalProjects)
	assert.Equal(t, 1, stats.CompletedProjects)
	assert.Equal(t, 2, stats.TotalPrompts)

	require.Len(t, stats.StageCompletion, 5)
	byKey := map[StageKey]StageCompletion{}
	for _, sc := range stats.StageCompletion {
		byKey[sc.Key] = sc
	}
	assert.Equal(t, 2, byKey[StageFlow].Count)
	assert.Equal(t, 2, byKey[StageTone].Count)
	assert.Equal(t, 1, byKey[StageRise].Count)
	assert.Equal(t, "FLOW", byKey[StageFlow].Label)
	assert.Equal(t, "#528A42", byKey[StageFlow].Color)

	// funnel keeps the fixed stage order
	assert.Equal(t, StageFlow, stats.StageCompletion[0].Key)
	assert.Equal(t, StageLens, stats.StageCompletion[4].Key)
}
