package domain

import "time"

// StageKey identifies one of the five fixed pipeline stages.
type StageKey string

const (
	StageFlow StageKey = "flow"
	StageTone StageKey = "tone"
	StageRise StageKey = "rise"
	StageFuse StageKey = "fuse"
	StageLens StageKey = "lens"
)

// StageOrder is the fixed progression a project moves through.
var StageOrder = []StageKey{StageFlow, StageTone, StageRise, StageFuse, StageLens}

// StageLabel maps stage keys to their display labels.
var StageLabel = map[StageKey]string{
	StageFlow: "FLOW", StageTone: "TONE", StageRise: "RISE", StageFuse: "FUSE", StageLens: "LENS",
}

// StageColor maps stage keys to their accent colors.
var StageColor = map[StageKey]string{
	StageFlow: "#528A42", StageTone: "#C08018", StageRise: "#8B5E2A", StageFuse: "#B04428", StageLens: "#3458AA",
}

// CardColors is the palette used for project accents, round-robined by creation order.
var CardColors = []string{"#528A42", "#C08018", "#8B5E2A", "#B04428", "#3458AA"}

// ValidStage reports whether s is one of the five known stage keys.
func ValidStage(s StageKey) bool {
	_, ok := StageLabel[s]
	return ok
}

// NextStage returns the stage following s in the fixed order.
// The last stage maps to itself.
func NextStage(s StageKey) StageKey {
	for i, k := range StageOrder {
		if k == s && i+1 < len(StageOrder) {
			return StageOrder[i+1]
		}
	}
	return s
}

// StageResult is the accumulated output of one stage of one project.
// CompletedAt is set exactly when the user advances past the stage and is
// the sole "done" signal used by progress and stats.
type StageResult struct {
	Prompt       string     `json:"prompt,omitempty" firestore:"prompt,omitempty"`
	SelectedAlt  string     `json:"selectedAlt,omitempty" firestore:"selectedAlt,omitempty"`
	ResultImages []string   `json:"resultImages,omitempty" firestore:"resultImages,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty" firestore:"completedAt,omitempty"`
}

// Project is the top-level unit of work. Stages always holds all five keys.
type Project struct {
	ID           string                   `json:"id" firestore:"id"`
	Name         string                   `json:"name" firestore:"name"`
	Usage        string                   `json:"usage" firestore:"usage"`
	Client       string                   `json:"client,omitempty" firestore:"client,omitempty"`
	Location     string                   `json:"location,omitempty" firestore:"location,omitempty"`
	CreatedAt    time.Time                `json:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt" firestore:"updatedAt"`
	Stages       map[StageKey]StageResult `json:"stages" firestore:"stages"`
	CurrentStage StageKey                 `json:"currentStage" firestore:"currentStage"`
	Color        string                   `json:"color" firestore:"color"`
}

// EmptyStages returns a stage map with all five keys initialized empty.
func EmptyStages() map[StageKey]StageResult {
	m := make(map[StageKey]StageResult, len(StageOrder))
	for _, k := range StageOrder {
		m[k] = StageResult{}
	}
	return m
}

// PromptRecord is an immutable log entry for one generated prompt.
// Records are independent of the owning project and survive its deletion.
type PromptRecord struct {
	ID          string    `json:"id" firestore:"id"`
	ProjectID   string    `json:"projectId" firestore:"projectId"`
	ProjectName string    `json:"projectName" firestore:"projectName"`
	Stage       StageKey  `json:"stage" firestore:"stage"`
	Prompt      string    `json:"prompt" firestore:"prompt"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}

// CompletedStageCount counts stages whose CompletedAt is set.
func CompletedStageCount(p *Project) int {
	n := 0
	for _, k := range StageOrder {
		if r, ok := p.Stages[k]; ok && r.CompletedAt != nil {
			n++
		}
	}
	return n
}

// ProgressPercent is the rounded completion percentage across the five stages.
func ProgressPercent(p *Project) int {
	return int(float64(CompletedStageCount(p))/float64(len(StageOrder))*100 + 0.5)
}
