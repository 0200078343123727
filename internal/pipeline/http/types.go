package http

import "github.com/inte-real/inte-real-backend/internal/pipeline/domain"

type createReq struct {
	Name     string `json:"name"`
	Usage    string `json:"usage"`
	Client   string `json:"client"`
	Location string `json:"location"`
}

// completeReq is the stage result minus completedAt, which the store sets.
type completeReq struct {
	Prompt       string   `json:"prompt"`
	SelectedAlt  string   `json:"selectedAlt"`
	ResultImages []string `json:"resultImages"`
}

func (r completeReq) toResult() domain.StageResult {
	return domain.StageResult{
		Prompt:       r.Prompt,
		SelectedAlt:  r.SelectedAlt,
		ResultImages: r.ResultImages,
	}
}

type savePromptReq struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Stage       string `json:"stage"`
	Prompt      string `json:"prompt"`
}
