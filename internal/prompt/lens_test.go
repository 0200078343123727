package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLens(t *testing.T) {
	t.Run("requires a known time slot", func(t *testing.T) {
		assert.Empty(t, BuildLens(LensInput{}))
		assert.Empty(t, BuildLens(LensInput{TimeKey: "midnight"}))
		assert.NotEmpty(t, BuildLens(LensInput{TimeKey: "morning"}))
	})

	t.Run("time slot label and clock appear in the header", func(t *testing.T) {
		out := BuildLens(LensInput{TimeKey: "evening"})
		assert.Contains(t, out, `"time_of_day": "저녁 (18:30)"`)
		assert.Contains(t, out, "Golden hour warm light")
	})

	t.Run("night disables natural light", func(t *testing.T) {
		out := BuildLens(LensInput{TimeKey: "night"})
		assert.Contains(t, out, "NONE — interior lighting only")

		out = BuildLens(LensInput{TimeKey: "afternoon"})
		assert.Contains(t, out, "Natural daylight as primary source")
	})

	t.Run("focus falls back to the whole-space default", func(t *testing.T) {
		out := BuildLens(LensInput{TimeKey: "morning"})
		assert.Contains(t, out, "공간 전체 마감재 및 분위기")

		out = BuildLens(LensInput{TimeKey: "morning", Focus: "주방 상판 질감"})
		assert.Contains(t, out, `"enhancement_target": "주방 상판 질감"`)
	})

	t.Run("resolution keeps only the leading token", func(t *testing.T) {
		out := BuildLens(LensInput{TimeKey: "morning", Resolution: "8K (7680×4320)"})
		assert.Contains(t, out, "8K resolution, RAW photo")
		assert.NotContains(t, out, "7680")
	})

	t.Run("negative hints extend the base negative prompt", func(t *testing.T) {
		base := BuildLens(LensInput{TimeKey: "morning"})
		require.Contains(t, base, "LED strips, blurry, low quality")

		out := BuildLens(LensInput{TimeKey: "morning", NegativeHints: "people, pets"})
		assert.Contains(t, out, "low quality, people, pets")
	})
}
