package prompt

import (
	"fmt"
	"strings"
)

// SpaceRow is one named space in the FLOW zoning form.
type SpaceRow struct {
	Name string `json:"name"`
	Zone string `json:"zone"` // public, core, support, service
	Area string `json:"area"` // square meters, free-form numeric text
}

// FlowInput is the form state of the FLOW (space zoning) stage.
type FlowInput struct {
	Corridor string     `json:"corridor"` // "single" or "double"
	Usage    string     `json:"usage"`
	Spaces   []SpaceRow `json:"spaces"`
	HasImage bool       `json:"hasImage"`
}

// numericArea extracts the first numeric token from the free-form area text.
// Area is interpolated into an unquoted number position, so anything else
// would break the emitted block's shape.
func numericArea(s string) string {
	start := -1
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start < 0 {
		return ""
	}
	return s[start:]
}

// BuildFlow renders the FLOW zoning prompt. It returns "" until a corridor
// type, a building usage, and at least one space row with both name and a
// numeric area are present.
func BuildFlow(in FlowInput) string {
	filtered := make([]SpaceRow, 0, len(in.Spaces))
	for _, s := range in.Spaces {
		s.Area = numericArea(s.Area)
		if s.Name != "" && s.Area != "" {
			filtered = append(filtered, s)
		}
	}
	if in.Corridor == "" || in.Usage == "" || len(filtered) == 0 {
		return ""
	}

	corridorLabel := "double-loaded"
	corridorKr := "중복도"
	if in.Corridor == "single" {
		corridorLabel = "single-loaded"
		corridorKr = "단일편복도"
	}

	rows := make([]string, 0, len(filtered))
	for _, s := range filtered {
		rows = append(rows, fmt.Sprintf(`      { "name": "%s", "zone": "%s", "area_m2": %s }`,
			escapeJSON(s.Name), escapeJSON(s.Zone), s.Area))
	}
	spacesJSON := strings.Join(rows, ",\n")

	imageNote := "[평면도 미첨부: 아래 공간 정보만으로 조닝 3안을 생성하세요]"
	if in.HasImage {
		imageNote = "[첨부 이미지: 코어·기둥·외벽만 표시된 기본 평면도를 분석하여 조닝하세요]"
	}

	return fmt.Sprintf(`%s

STEP 1 — 복도 유형: %s (%s)

STEP 2 — 공간 정보:
  건물 용도: %s
  공간 목록:
[
%s
]

STEP 3 — 도면 생성 요청 (AI 자동 수행):
{
  "zoning_logic": {
    "corridor_type": "%s",
    "hierarchy": "Public → Core → Support → Service",
    "public_zone_rules": {
      "internal_walls": "NONE — no partition walls within the public zone",
      "corridor_boundary": "COMPLETELY OPEN — no wall, door, or opening between public zone and corridor"
    },
    "entry_rules": {
      "position": "FIXED at bottom exterior wall, left side (~1/4 from left edge)",
      "symbol": "Door swing arc opening inward + vertical entry arrow below"
    },
    "corridor_width": { "dimension_on_drawing": "Show net clear width only (mm)" },
    "constraint": "Do NOT alter, move, or resize any existing walls or structural elements"
  },
  "dimension_rules": {
    "basis": "Wall centerlines (CL)",
    "tick_style": "Architectural Tick '/' slash at every dim endpoint. No arrows.",
    "unit": "mm",
    "row_spacing": "Minimum 24px between parallel dim rows"
  },
  "visual_style": {
    "type": "2D Architectural Floor Plan",
    "coloring": "Public=coral, Core=mint, Support=warm yellow, Service=lavender, Corridor=warm gray",
    "no_legal_text": "Do NOT include building code references or regulatory citations"
  },
  "output": {
    "count": 3,
    "format": "각각 독립된 이미지로 3가지 조닝 대안 제시",
    "per_alternative": "각 안마다 동선 분석 코멘트 + 장단점 포함"
  }
}`, imageNote, corridorKr, corridorLabel, in.Usage, spacesJSON, corridorLabel)
}
