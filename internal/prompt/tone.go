package prompt

import "fmt"

// ConceptLabel maps TONE concept keys to their display labels.
var ConceptLabel = map[string]string{
	"natural": "내추럴",
	"modern":  "모던",
	"artdeco": "아트데코",
	"minimal": "미니멀",
	"nordic":  "노르딕",
	"custom":  "커스텀",
}

// ToneInput is the form state of the TONE (coloring and materials) stage.
type ToneInput struct {
	Concept       string `json:"concept"`
	CustomConcept string `json:"customConcept"`
	Flooring      string `json:"flooring"`
	Walls         string `json:"walls"`
	Furniture     string `json:"furniture"`
	Lighting      int    `json:"lighting"` // 0-100 slider
}

// BuildTone renders the TONE material/coloring prompt. A selected concept is
// the only hard requirement.
func BuildTone(in ToneInput) string {
	if in.Concept == "" {
		return ""
	}

	conceptLabel := in.Concept
	if in.Concept == "custom" {
		conceptLabel = in.CustomConcept
		if conceptLabel == "" {
			conceptLabel = "커스텀 컨셉"
		}
	} else if label, ok := ConceptLabel[in.Concept]; ok {
		conceptLabel = label
	}

	var lightingDesc string
	switch {
	case in.Lighting < 30:
		lightingDesc = "부드러운 자연광, 따뜻한 아침 빛"
	case in.Lighting < 60:
		lightingDesc = "Soft natural daylight with warm glow"
	case in.Lighting < 80:
		lightingDesc = "밝고 화사한 낮 조명"
	default:
		lightingDesc = "Bright dramatic lighting, high contrast"
	}

	conceptLabel = escapeJSON(conceptLabel)

	return fmt.Sprintf(`{
  "visual_style": "Photorealistic top-down orthographic 3D render, %s palette.",
  "materials": {
    "flooring": "%s with grain texture and realistic shadow.",
    "walls_furniture": "%s walls, %s furniture elements."
  },
  "lighting_depth": {
    "type": "%s",
    "special_effect": "Extreme Ambient Occlusion (AO) for deep, dark contact shadows in corners and under furniture for hyper-realistic depth."
  },
  "styling_props": "High-detail decor items with individual shadows — books, vases, kitchenware.",
  "technical_overlay": "Overlay original black CAD dimension lines and numeric values only. Remove all Hangul text labels.",
  "concept_theme": "%s",
  "output": "Maintain exact CAD floor plan structure. Only apply materials and lighting. Do NOT alter layout."
}`, conceptLabel, escapeJSON(in.Flooring), escapeJSON(in.Walls), escapeJSON(in.Furniture), lightingDesc, conceptLabel)
}
