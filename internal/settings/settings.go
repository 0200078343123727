package settings

import (
	"context"
	"log"
	"sync"

	"github.com/inte-real/inte-real-backend/internal/remote"
	"github.com/inte-real/inte-real-backend/internal/storage/localstore"
)

// AppSettings is the user profile shown in the dashboard chrome.
type AppSettings struct {
	UserName       string `json:"userName"`
	Role           string `json:"role"`
	Theme          string `json:"theme"` // "light" or "auto"
	SidebarCompact bool   `json:"sidebarCompact"`
}

// Defaults returns the out-of-the-box settings.
func Defaults() AppSettings {
	return AppSettings{
		UserName: "Mission Control",
		Role:     "Commander",
		Theme:    "auto",
	}
}

// Service holds the current settings, local-first with a best-effort remote
// profile document. Remote values win field-wise on reconcile; when no remote
// profile exists yet the local one is seeded to it.
type Service struct {
	mu      sync.RWMutex
	current AppSettings
	local   *localstore.Store
	client  *remote.Client
}

func NewService(ctx context.Context, local *localstore.Store, client *remote.Client) *Service {
	s := &Service{current: Defaults(), local: local, client: client}
	var stored AppSettings
	if localstore.LoadValue(ctx, local, localstore.KeySettings, &stored) {
		s.current = merge(s.current, stored)
	}
	return s
}

// Get returns the current settings.
func (s *Service) Get() AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the settings, persists locally, and mirrors remotely
// best-effort.
func (s *Service) Update(ctx context.Context, next AppSettings) AppSettings {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	localstore.SaveValue(ctx, s.local, localstore.KeySettings, next)
	if s.client != nil {
		if err := s.client.UpsertSettingsDoc(ctx, toDoc(next)); err != nil {
			log.Printf("[warn] settings sync failed: %v", err)
		}
	}
	return next
}

// ReconcileFromRemote pulls the remote profile once an identity is available.
func (s *Service) ReconcileFromRemote(ctx context.Context) {
	if s.client == nil {
		return
	}
	doc, err := s.client.FetchSettingsDoc(ctx)
	if err != nil {
		log.Printf("[warn] settings fetch failed: %v", err)
		return
	}
	if len(doc) == 0 {
		// Seed the remote profile from the local copy.
		if err := s.client.UpsertSettingsDoc(ctx, toDoc(s.Get())); err != nil {
			log.Printf("[warn] settings seed failed: %v", err)
		}
		return
	}

	s.mu.Lock()
	s.current = merge(s.current, fromDoc(doc))
	merged := s.current
	s.mu.Unlock()
	localstore.SaveValue(ctx, s.local, localstore.KeySettings, merged)
}

func merge(base, over AppSettings) AppSettings {
	if over.UserName != "" {
		base.UserName = over.UserName
	}
	if over.Role != "" {
		base.Role = over.Role
	}
	if over.Theme != "" {
		base.Theme = over.Theme
	}
	base.SidebarCompact = over.SidebarCompact
	return base
}

func toDoc(s AppSettings) map[string]any {
	return map[string]any{
		"userName":       s.UserName,
		"role":           s.Role,
		"theme":          s.Theme,
		"sidebarCompact": s.SidebarCompact,
	}
}

func fromDoc(doc map[string]any) AppSettings {
	var s AppSettings
	if v, ok := doc["userName"].(string); ok {
		s.UserName = v
	}
	if v, ok := doc["role"].(string); ok {
		s.Role = v
	}
	if v, ok := doc["theme"].(string); ok {
		s.Theme = v
	}
	if v, ok := doc["sidebarCompact"].(bool); ok {
		s.SidebarCompact = v
	}
	return s
}
