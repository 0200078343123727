package prompt

import (
	"fmt"
	"strings"
)

// FuseInput is the form state of the FUSE (style transfer) stage.
type FuseInput struct {
	StructureUploaded bool     `json:"structureUploaded"`
	ReferenceCount    int      `json:"referenceCount"`
	StyleStrength     int      `json:"styleStrength"` // 20-80 slider
	Keywords          []string `json:"keywords"`
	AdditionalNotes   string   `json:"additionalNotes"`
}

// BuildFuse renders the FUSE style-fusion prompt. The structure image is the
// geometry source, so nothing is produced until one is uploaded. The embedded
// structure weight is always the complement of the style strength.
func BuildFuse(in FuseInput) string {
	if !in.StructureUploaded {
		return ""
	}

	structWeight := 100 - in.StyleStrength
	refWeight := in.StyleStrength

	keywordStr := "스타일 키워드 미선택"
	if len(in.Keywords) > 0 {
		keywordStr = strings.Join(in.Keywords, ", ")
	}

	refCount := in.ReferenceCount
	if refCount <= 0 {
		refCount = 1
	}

	notesClause := ""
	if in.AdditionalNotes != "" {
		notesClause = fmt.Sprintf(",\n  \"additional_notes\": \"%s\"", escapeJSON(in.AdditionalNotes))
	}

	return fmt.Sprintf(`{
  "task": "Style DNA Transfer — Geometry Lock + Reference Style Fusion",
  "master_constraint": {
    "geometry": "ABSOLUTE STRUCTURE LOCK — Do NOT alter, move, or resize any wall, column, or architectural element.",
    "camera": "FIXED camera angle and position from the source 3D mass image."
  },
  "source_image": {
    "type": "3D massing / structural base image",
    "role": "Defines all geometry, proportions, and spatial volumes. Treated as immutable."
  },
  "reference_images": {
    "count": %d,
    "role": "Style DNA extraction only — extract aesthetic, material palette, and lighting mood",
    "extract": ["color palette", "material textures", "lighting atmosphere", "decorative language"]
  },
  "style_fusion": {
    "structure_weight": %d%%,
    "style_weight": %d%%,
    "target_keywords": "%s",
    "output_mood": "Photorealistic architectural interior visualization"
  },
  "rendering": {
    "quality": "8K ultra-photorealistic CGI, Octane/V-Ray style",
    "lighting": "Natural global illumination derived from reference images",
    "materials": "PBR physically-correct shading — transfer textures from reference, apply to structure geometry"
  }%s,
  "output": "Single high-fidelity interior image — structure from source, aesthetic DNA from references"
}`, refCount, structWeight, refWeight, escapeJSON(keywordStr), notesClause)
}
