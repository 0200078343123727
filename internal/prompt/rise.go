package prompt

import "fmt"

// RiseInput is the form state of the RISE (isometric 3D) stage.
type RiseInput struct {
	ViewType      string `json:"viewType"` // "iso", "persp", or "both"
	WallHeight    string `json:"wallHeight"`
	RenderStyle   string `json:"renderStyle"`
	PerspPoint    string `json:"perspPoint"`
	PerspDir      string `json:"perspDir"`
	RenderQuality string `json:"renderQuality"` // "draft" or "final"
}

// BuildRise renders the RISE view prompt. A view type and a wall height are
// required; the perspective block additionally needs a camera point, so a
// pure perspective request without one stays empty.
func BuildRise(in RiseInput) string {
	if in.ViewType == "" || in.WallHeight == "" {
		return ""
	}

	qualitySpec := "4K resolution, Photorealistic architectural visualization"
	if in.RenderQuality == "final" {
		qualitySpec = "8K resolution, Ultra-photorealistic architectural CGI, Octane & V-Ray render quality"
	}

	style := escapeJSON(in.RenderStyle)

	var isoPrompt string
	if in.ViewType != "persp" {
		isoPrompt = fmt.Sprintf(`{
  "view_iso": {
    "perspective_and_view": "Isometric 3D cutaway view, 45-degree top-right angle (dollhouse perspective), no roof showing full interior.",
    "subject_and_structure": "%s interior. %smm wall height. Dark charcoal load-bearing walls contrasting with white textured partition walls.",
    "rendering_style": "%s, professional presentation.",
    "materials_and_lighting": "PBR realistic materials (natural flooring, fabric, glass). Natural sunlight streaming in, soft shadows cast on a clean neutral gray background plane."
  }
}`, style, in.WallHeight, qualitySpec)
	}

	var perspPrompt string
	if (in.ViewType == "persp" || in.ViewType == "both") && in.PerspPoint != "" {
		dir := in.PerspDir
		if dir == "" {
			dir = "정면"
		}
		perspPrompt = fmt.Sprintf(`{
  "view_perspective": {
    "camera_position": "Standing at %s, looking %s",
    "subject_and_structure": "%s interior perspective view. %smm ceiling height.",
    "rendering_style": "%s.",
    "materials_and_lighting": "PBR textures, natural daylight, soft ray-traced shadows, global illumination.",
    "master_constraint": "ABSOLUTE CAMERA LOCK — No structural changes, No camera movement from specified position."
  }
}`, escapeJSON(in.PerspPoint), escapeJSON(dir), style, in.WallHeight, qualitySpec)
	}

	switch in.ViewType {
	case "both":
		return fmt.Sprintf("// ─── Isometric View ───\n%s\n\n// ─── Perspective View ───\n%s", isoPrompt, perspPrompt)
	case "iso":
		return isoPrompt
	default:
		return perspPrompt
	}
}
