package prompt

import (
	"fmt"
	"strings"
)

// TimeSlot describes one LENS time-of-day option.
type TimeSlot struct {
	Key   string
	Label string
	Time  string
}

// TimeSlots in display order.
var TimeSlots = []TimeSlot{
	{Key: "morning", Label: "오전", Time: "07:00"},
	{Key: "afternoon", Label: "오후", Time: "14:00"},
	{Key: "evening", Label: "저녁", Time: "18:30"},
	{Key: "night", Label: "야간", Time: "22:00"},
}

var lightingByTime = map[string]string{
	"morning":   "Soft warm morning sunlight streaming through windows, low-angle golden rays, gentle ambient fill, warm 2700K color tone",
	"afternoon": "Bright natural daylight, neutral white light, strong directional shadows, crisp illumination, 5500K daylight",
	"evening":   "Golden hour warm light, long shadows, rich amber and orange tones, dramatic side-lighting, 3000K warm glow",
	"night":     "Interior lighting dominant, warm accent spots, soft pools of light, rich dark shadows, ambient mood lighting, no exterior light",
}

// LensInput is the form state of the LENS (final rendering) stage.
type LensInput struct {
	TimeKey       string `json:"timeKey"` // morning, afternoon, evening, night
	Focus         string `json:"focus"`
	Resolution    string `json:"resolution"` // e.g. "8K (7680×4320)"
	NegativeHints string `json:"negativeHints"`
}

// BuildLens renders the LENS enhancement prompt. A time-of-day selection is
// the only hard requirement.
func BuildLens(in LensInput) string {
	if in.TimeKey == "" {
		return ""
	}
	var slot *TimeSlot
	for i := range TimeSlots {
		if TimeSlots[i].Key == in.TimeKey {
			slot = &TimeSlots[i]
			break
		}
	}
	if slot == nil {
		return ""
	}

	resPart := strings.SplitN(in.Resolution, " ", 2)[0]

	focus := in.Focus
	if focus == "" {
		focus = "공간 전체 마감재 및 분위기"
	}

	naturalLight := "Natural daylight as primary source, no added artificial fixtures"
	if in.TimeKey == "night" {
		naturalLight = "NONE — interior lighting only"
	}

	negative := "CGI look, 3D render artifact, sketch, distorted geometry, added structures, extra lights, LED strips, blurry, low quality"
	if in.NegativeHints != "" {
		negative += ", " + escapeJSON(in.NegativeHints)
	}

	return fmt.Sprintf(`{
  "task_type": "AI Photorealistic Image-to-Image Enhancement",
  "master_priority": "ABSOLUTE GEOMETRY & CAMERA LOCK — No structural changes, No camera move.",
  "time_of_day": "%s (%s)",
  "enhancement_target": "%s",
  "lighting_setup": {
    "type": "%s",
    "ceiling_lock": "Maintain original ceiling shape and fixtures exactly. Do NOT add new light fixtures.",
    "natural_light": "%s"
  },
  "visual_rules": {
    "materials": "PBR (Physically Based Rendering) textures — realistic wood, stone, fabric with natural reflections.",
    "rendering": "Octane/V-Ray style, physically-correct shading, no artificial glow, no LED strip lights.",
    "depth_of_field": "Subtle foreground focus, natural bokeh on background elements."
  },
  "technical_specs": {
    "quality": "%s resolution, RAW photo, DSLR architectural photography, sharp focus.",
    "post_processing": "Minimal — preserve natural material accuracy, no HDR over-processing."
  },
  "negative_prompt": "%s"
}`, slot.Label, slot.Time, escapeJSON(focus), lightingByTime[in.TimeKey], naturalLight, resPart, negative)
}
