package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/inte-real/inte-real-backend/internal/pipeline/domain"
)

var stageDesc = map[domain.StageKey]string{
	domain.StageFlow: "공간 조닝 (Space Zoning)",
	domain.StageTone: "컬러링 & 재질 (Coloring & Materials)",
	domain.StageRise: "아이소메트릭 3D (Isometric 3D View)",
	domain.StageFuse: "믹스보드 & 컨셉 (Style Transfer)",
	domain.StageLens: "AI 렌더링 (Final Rendering)",
}

var stageIcon = map[domain.StageKey]string{
	domain.StageFlow: "🏗️", domain.StageTone: "🎨", domain.StageRise: "🏠",
	domain.StageFuse: "🎭", domain.StageLens: "📸",
}

type stageView struct {
	Label       string
	Desc        string
	Icon        string
	Color       string
	Done        bool
	CompletedAt string
	SelectedAlt string
	Images      []template.URL
	Prompt      string
}

type reportView struct {
	Project        *domain.Project
	GeneratedAt    string
	CompletedCount int
	Progress       int
	Stages         []stageView
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>{{.Project.Name}} — IN-TE-REAL 프로젝트 보고서</title>
  <style>
    *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
    body { font-family: 'Apple SD Gothic Neo', 'Malgun Gothic', sans-serif; background: #f7f6f2; color: #2a2a2a; line-height: 1.65; }
    .cover { background: linear-gradient(135deg, #1a2035 0%, #2d3a5a 60%, #3d4f70 100%); color: #fff; padding: 72px 60px; min-height: 260px; }
    .cover-brand { font-size: 12px; font-weight: 800; letter-spacing: 0.18em; opacity: 0.6; margin-bottom: 20px; text-transform: uppercase; }
    .cover h1 { font-size: 34px; margin-bottom: 12px; }
    .cover-meta { font-size: 13px; opacity: 0.8; }
    .content { max-width: 880px; margin: 0 auto; padding: 40px 24px 80px; }
    .summary { background: #fff; border-radius: 10px; padding: 20px 24px; margin-bottom: 32px; box-shadow: 0 1px 4px rgba(0,0,0,0.06); }
    .stage-section { background: #fff; border-radius: 10px; padding: 24px; margin-bottom: 24px; box-shadow: 0 1px 4px rgba(0,0,0,0.06); }
    .stage-section.pending { opacity: 0.75; }
    .stage-header { display: flex; gap: 14px; align-items: center; padding-left: 14px; margin-bottom: 14px; }
    .stage-icon { font-size: 26px; }
    .stage-status { font-size: 12px; color: #777; }
    .selected-alt { font-size: 13px; margin-bottom: 12px; }
    .images-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 12px; margin-bottom: 12px; }
    .images-grid img { width: 100%; border-radius: 6px; }
    figcaption { font-size: 11px; color: #888; text-align: center; margin-top: 4px; }
    .prompt-block { background: #f4f3ee; border-radius: 6px; padding: 14px; font-size: 11px; white-space: pre-wrap; word-break: break-all; }
    .empty-note { font-size: 13px; color: #999; }
  </style>
</head>
<body>
  <div class="cover">
    <div class="cover-brand">IN-TE-REAL · Interior Design Pipeline</div>
    <h1>{{.Project.Name}}</h1>
    <div class="cover-meta">
      용도: {{.Project.Usage}}{{if .Project.Client}} · 의뢰인: {{.Project.Client}}{{end}}{{if .Project.Location}} · 위치: {{.Project.Location}}{{end}}<br/>
      발행일: {{.GeneratedAt}} · 진행률 {{.Progress}}% ({{.CompletedCount}}/5 단계 완료)
    </div>
  </div>
  <div class="content">
    <div class="summary">5단계 파이프라인(FLOW → TONE → RISE → FUSE → LENS)의 단계별 결과물 모음입니다.</div>
{{range .Stages}}
    <section class="stage-section {{if .Done}}done{{else}}pending{{end}}">
      <div class="stage-header" style="border-left: 5px solid {{.Color}};">
        <span class="stage-icon">{{.Icon}}</span>
        <div>
          <h2 style="color:{{.Color}};">{{.Label}} — {{.Desc}}</h2>
          <span class="stage-status">{{if .Done}}✓ 완료 · {{.CompletedAt}}{{else}}진행 중{{end}}</span>
        </div>
      </div>
      {{if .SelectedAlt}}<div class="selected-alt">최종 선택안: <strong>{{.SelectedAlt}}</strong></div>{{end}}
      {{if .Images}}
      <div class="images-grid">
        {{$label := .Label}}{{range $i, $img := .Images}}
        <figure>
          <img src="{{$img}}" alt="{{$label}} 결과물" />
          <figcaption>{{$label}} 결과물 {{$i}}</figcaption>
        </figure>
        {{end}}
      </div>
      {{end}}
      {{if .Prompt}}
      <details>
        <summary>AI 프롬프트 보기</summary>
        <pre class="prompt-block">{{.Prompt}}</pre>
      </details>
      {{end}}
      {{if and (not .Done) (not .Images) (not .Prompt)}}<p class="empty-note">이 단계는 아직 진행되지 않았습니다.</p>{{end}}
    </section>
{{end}}
  </div>
</body>
</html>
`))

// GenerateHTML renders the standalone project report page.
func GenerateHTML(p *domain.Project) (string, error) {
	view := reportView{
		Project:        p,
		GeneratedAt:    time.Now().Format("2006년 1월 2일"),
		CompletedCount: domain.CompletedStageCount(p),
		Progress:       domain.ProgressPercent(p),
	}

	for _, k := range domain.StageOrder {
		stage := p.Stages[k]
		sv := stageView{
			Label:       domain.StageLabel[k],
			Desc:        stageDesc[k],
			Icon:        stageIcon[k],
			Color:       domain.StageColor[k],
			Done:        stage.CompletedAt != nil,
			SelectedAlt: stage.SelectedAlt,
			Prompt:      stage.Prompt,
		}
		if stage.CompletedAt != nil {
			sv.CompletedAt = stage.CompletedAt.Format("2006. 1. 2.")
		}
		for _, img := range stage.ResultImages {
			// Result images are data URIs or URLs the user uploaded.
			sv.Images = append(sv.Images, template.URL(img))
		}
		view.Stages = append(view.Stages, sv)
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}
