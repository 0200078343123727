package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inte-real/inte-real-backend/internal/notify"
	"github.com/inte-real/inte-real-backend/internal/pipeline/domain"
	"github.com/inte-real/inte-real-backend/internal/remote"
	"github.com/inte-real/inte-real-backend/internal/storage/localstore"
	"github.com/inte-real/inte-real-backend/internal/storage/postgres"
)

// ProjectService is the single writer for the Project and PromptRecord
// collections. Every mutation persists the full collection to the local
// store synchronously and enqueues the remote mirror write on the outbox, so
// callers never wait on the network. Constructed once at startup and passed
// to consumers explicitly.
type ProjectService struct {
	mu       sync.Mutex
	projects []domain.Project
	prompts  []domain.PromptRecord

	local    *localstore.Store
	outbox   *remote.Outbox
	archive  *postgres.PromptArchive // optional durable prompt mirror
	notifier *notify.Store           // optional dashboard alerts
}

// NewProjectService loads both collections from the local store.
func NewProjectService(ctx context.Context, local *localstore.Store, outbox *remote.Outbox, archive *postgres.PromptArchive, notifier *notify.Store) *ProjectService {
	return &ProjectService{
		projects: localstore.LoadList[domain.Project](ctx, local, localstore.KeyProjects),
		prompts:  localstore.LoadList[domain.PromptRecord](ctx, local, localstore.KeyPrompts),
		local:    local,
		outbox:   outbox,
		archive:  archive,
		notifier: notifier,
	}
}

// ProjectPatch is a shallow-merge update for UpdateProject. Nil fields are
// left untouched.
type ProjectPatch struct {
	Name         *string                          `json:"name,omitempty"`
	Usage        *string                          `json:"usage,omitempty"`
	Client       *string                          `json:"client,omitempty"`
	Location     *string                          `json:"location,omitempty"`
	CurrentStage *domain.StageKey                 `json:"currentStage,omitempty"`
	Color        *string                          `json:"color,omitempty"`
	Stages       map[domain.StageKey]domain.StageResult `json:"stages,omitempty"`
}

// CreateProject allocates a new project with all five stages empty, the flow
// stage current, and the next palette color. The project is returned before
// any remote write happens.
func (s *ProjectService) CreateProject(ctx context.Context, name, usage, client, location string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	usage = strings.TrimSpace(usage)
	if name == "" || usage == "" {
		return nil, domain.ErrEmptyField
	}

	s.mu.Lock()
	now := time.Now()
	p := domain.Project{
		ID:           uuid.NewString(),
		Name:         name,
		Usage:        usage,
		Client:       client,
		Location:     location,
		CreatedAt:    now,
		UpdatedAt:    now,
		Stages:       domain.EmptyStages(),
		CurrentStage: domain.StageFlow,
		Color:        domain.CardColors[len(s.projects)%len(domain.CardColors)],
	}
	s.projects = append([]domain.Project{p}, s.projects...)
	s.persistProjects(ctx)
	s.mu.Unlock()

	s.outbox.EnqueueUpsertProject(p)
	if s.notifier != nil {
		s.notifier.Push(ctx, notify.TypeSuccess, "프로젝트 생성", name+" 프로젝트가 생성되었습니다.")
	}
	return &p, nil
}

// UpdateProject shallow-merges patch into the project and refreshes
// updatedAt. An unknown id mutates nothing.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, domain.ErrProjectNotFound
	}

	p := s.projects[idx]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Usage != nil {
		p.Usage = *patch.Usage
	}
	if patch.Client != nil {
		p.Client = *patch.Client
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.CurrentStage != nil {
		if !domain.ValidStage(*patch.CurrentStage) {
			s.mu.Unlock()
			return nil, domain.ErrInvalidStage
		}
		p.CurrentStage = *patch.CurrentStage
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Stages != nil {
		merged := make(map[domain.StageKey]domain.StageResult, len(domain.StageOrder))
		for k, v := range p.Stages {
			merged[k] = v
		}
		for k, v := range patch.Stages {
			if !domain.ValidStage(k) {
				s.mu.Unlock()
				return nil, domain.ErrInvalidStage
			}
			merged[k] = v
		}
		p.Stages = merged
	}
	p.UpdatedAt = time.Now()

	s.projects[idx] = p
	s.persistProjects(ctx)
	s.mu.Unlock()

	s.outbox.EnqueueUpsertProject(p)
	return &p, nil
}

// DeleteProject removes the project locally and mirrors the delete remotely.
// PromptRecords referencing it are deliberately left in place: the prompt
// log is an audit trail that outlives its project.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrProjectNotFound
	}
	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)
	s.persistProjects(ctx)
	s.mu.Unlock()

	s.outbox.EnqueueDeleteProject(id)
	return nil
}

// CompleteStage stores the stage's result with completedAt set and moves
// currentStage to the stage following it (the last stage stays current).
// Re-completing a stage overwrites its result and timestamp.
func (s *ProjectService) CompleteStage(ctx context.Context, projectID string, stage domain.StageKey, result domain.StageResult) (*domain.Project, error) {
	if !domain.ValidStage(stage) {
		return nil, domain.ErrInvalidStage
	}

	s.mu.Lock()
	idx := s.indexOf(projectID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, domain.ErrProjectNotFound
	}

	now := time.Now()
	result.CompletedAt = &now

	p := s.projects[idx]
	stages := make(map[domain.StageKey]domain.StageResult, len(domain.StageOrder))
	for k, v := range p.Stages {
		stages[k] = v
	}
	stages[stage] = result
	p.Stages = stages
	p.CurrentStage = domain.NextStage(stage)
	p.UpdatedAt = now

	s.projects[idx] = p
	s.persistProjects(ctx)
	s.mu.Unlock()

	s.outbox.EnqueueUpsertProject(p)
	if s.notifier != nil {
		s.notifier.Push(ctx, notify.TypeSuccess, domain.StageLabel[stage]+" 단계 완료",
			p.Name+" 프로젝트의 "+domain.StageLabel[stage]+" 단계가 완료되었습니다.")
	}
	return &p, nil
}

// SavePrompt prepends a new immutable record. Identical prompts saved twice
// produce two records.
func (s *ProjectService) SavePrompt(ctx context.Context, projectID, projectName string, stage domain.StageKey, promptText string) (*domain.PromptRecord, error) {
	if !domain.ValidStage(stage) {
		return nil, domain.ErrInvalidStage
	}

	rec := domain.PromptRecord{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		ProjectName: projectName,
		Stage:       stage,
		Prompt:      promptText,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.prompts = append([]domain.PromptRecord{rec}, s.prompts...)
	s.persistPrompts(ctx)
	s.mu.Unlock()

	s.outbox.EnqueueUpsertPrompt(rec)
	if s.archive != nil {
		if err := s.archive.Insert(ctx, rec); err != nil {
			log.Printf("[warn] prompt archive insert failed: %v", err)
		}
	}
	return &rec, nil
}

// DeletePrompt removes one record locally, remotely, and from the archive.
func (s *ProjectService) DeletePrompt(ctx context.Context, id string) error {
	s.mu.Lock()
	found := false
	for i := range s.prompts {
		if s.prompts[i].ID == id {
			s.prompts = append(s.prompts[:i], s.prompts[i+1:]...)
			found = true
			break
		}
	}
	if found {
		s.persistPrompts(ctx)
	}
	s.mu.Unlock()

	if !found {
		return domain.ErrPromptNotFound
	}
	s.outbox.EnqueueDeletePrompt(id)
	if s.archive != nil {
		if _, err := s.archive.Delete(ctx, id); err != nil {
			log.Printf("[warn] prompt archive delete failed: %v", err)
		}
	}
	return nil
}

// ReconcileFromRemote replaces the local project collection wholesale with a
// remote snapshot. No merging: the caller has already decided to trust
// remote.
func (s *ProjectService) ReconcileFromRemote(ctx context.Context, snapshot []domain.Project) {
	if snapshot == nil {
		snapshot = []domain.Project{}
	}
	s.mu.Lock()
	s.projects = snapshot
	s.persistProjects(ctx)
	s.mu.Unlock()
}

// ReconcilePrompts is the prompt-collection counterpart of
// ReconcileFromRemote.
func (s *ProjectService) ReconcilePrompts(ctx context.Context, snapshot []domain.PromptRecord) {
	if snapshot == nil {
		snapshot = []domain.PromptRecord{}
	}
	s.mu.Lock()
	s.prompts = snapshot
	s.persistPrompts(ctx)
	s.mu.Unlock()
}

// Projects returns a copy of the current project list.
func (s *ProjectService) Projects() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// GetProject looks up one project by id.
func (s *ProjectService) GetProject(id string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrProjectNotFound
	}
	p := s.projects[idx]
	return &p, nil
}

// Prompts returns a copy of the current prompt list, most recent first.
func (s *ProjectService) Prompts() []domain.PromptRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PromptRecord, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// Stats recomputes the dashboard stats from current state.
func (s *ProjectService) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeStats(s.projects, s.prompts)
}

// Archive exposes the optional durable prompt mirror (nil when disabled).
func (s *ProjectService) Archive() *postgres.PromptArchive {
	return s.archive
}

func (s *ProjectService) indexOf(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// persistProjects and persistPrompts assume s.mu is held.
func (s *ProjectService) persistProjects(ctx context.Context) {
	localstore.SaveList(ctx, s.local, localstore.KeyProjects, s.projects)
}

func (s *ProjectService) persistPrompts(ctx context.Context) {
	localstore.SaveList(ctx, s.local, localstore.KeyPrompts, s.prompts)
}
