package prompt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFuse(t *testing.T) {
	t.Run("requires the structure image", func(t *testing.T) {
		assert.Empty(t, BuildFuse(FuseInput{StyleStrength: 50}))
		assert.NotEmpty(t, BuildFuse(FuseInput{StructureUploaded: true}))
	})

	t.Run("structure and style weights are complementary", func(t *testing.T) {
		for _, strength := range []int{20, 35, 50, 80} {
			out := BuildFuse(FuseInput{StructureUploaded: true, StyleStrength: strength})
			require.NotEmpty(t, out)
			assert.Contains(t, out, fmt.Sprintf(`"structure_weight": %d%%`, 100-strength))
			assert.Contains(t, out, fmt.Sprintf(`"style_weight": %d%%`, strength))
		}
	})

	t.Run("keywords join or fall back to a placeholder", func(t *testing.T) {
		out := BuildFuse(FuseInput{StructureUploaded: true, Keywords: []string{"warm wood", "brass accents"}})
		assert.Contains(t, out, `"target_keywords": "warm wood, brass accents"`)

		out = BuildFuse(FuseInput{StructureUploaded: true})
		assert.Contains(t, out, "스타일 키워드 미선택")
	})

	t.Run("reference count floors at one", func(t *testing.T) {
		out := BuildFuse(FuseInput{StructureUploaded: true})
		assert.Contains(t, out, `"count": 1`)

		out = BuildFuse(FuseInput{StructureUploaded: true, ReferenceCount: 3})
		assert.Contains(t, out, `"count": 3`)
	})

	t.Run("additional notes appear only when given", func(t *testing.T) {
		out := BuildFuse(FuseInput{StructureUploaded: true})
		assert.NotContains(t, out, "additional_notes")

		out = BuildFuse(FuseInput{StructureUploaded: true, AdditionalNotes: "창가 좌석 강조"})
		assert.Contains(t, out, `"additional_notes": "창가 좌석 강조"`)
	})
}
