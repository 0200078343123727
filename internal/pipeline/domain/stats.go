package domain

// StageCompletion is the per-stage slice of the dashboard funnel.
type StageCompletion struct {
	Key   StageKey `json:"key"`
	Label string   `json:"label"`
	Color string   `json:"color"`
	Count int      `json:"count"`
}

// Stats is derived from the current collections on every read; nothing here
// is stored.
type Stats struct {
	TotalProjects     int               `json:"totalProjects"`
	CompletedProjects int               `json:"completedProjects"`
	TotalPrompts      int               `json:"totalPrompts"`
	StageCompletion   []StageCompletion `json:"stageCompletion"`
}

// ComputeStats derives dashboard stats over the given collections.
func ComputeStats(projects []Project, prompts []PromptRecord) Stats {
	s := Stats{
		TotalProjects:   len(projects),
		TotalPrompts:    len(prompts),
		StageCompletion: make([]StageCompletion, 0, len(StageOrder)),
	}
	for i := range projects {
		if CompletedStageCount(&projects[i]) == len(StageOrder) {
			s.CompletedProjects++
		}
	}
	for _, k := range StageOrder {
		sc := StageCompletion{Key: k, Label: StageLabel[k], Color: StageColor[k]}
		for i := range projects {
			if r, ok := projects[i].Stages[k]; ok && r.CompletedAt != nil {
				sc.Count++
			}
		}
		s.StageCompletion = append(s.StageCompletion, sc)
	}
	return s
}
