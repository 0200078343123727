package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inte-real/inte-real-backend/internal/storage/localstore"
)

// Notification types.
const (
	TypeSuccess = "success"
	TypeInfo    = "info"
	TypeWarning = "warning"
	TypeError   = "error"
)

// maxKept caps the stored list; older entries fall off the end.
const maxKept = 50

// Notification is one dashboard alert.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

// Store keeps the notification list most-recent-first, mirrored to the local
// snapshot store on every mutation.
type Store struct {
	mu    sync.Mutex
	items []Notification
	local *localstore.Store
}

func NewStore(ctx context.Context, local *localstore.Store) *Store {
	return &Store{
		items: localstore.LoadList[Notification](ctx, local, localstore.KeyNotifications),
		local: local,
	}
}

// Push prepends a notification and trims to the cap.
func (s *Store) Push(ctx context.Context, typ, title, message string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]Notification{n}, s.items...)
	if len(s.items) > maxKept {
		s.items = s.items[:maxKept]
	}
	s.persist(ctx)
	return n
}

// List returns a copy of the current notifications.
func (s *Store) List(_ context.Context) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

// UnreadCount counts notifications not yet marked read.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// MarkAllRead flags every notification as read.
func (s *Store) MarkAllRead(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		s.items[i].Read = true
	}
	s.persist(ctx)
}

// Delete removes one notification by id.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return true
		}
	}
	return false
}

// Clear removes everything.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []Notification{}
	s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) {
	localstore.SaveList(ctx, s.local, localstore.KeyNotifications, s.items)
}
