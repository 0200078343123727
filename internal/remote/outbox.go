package remote

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/inte-real/inte-real-backend/internal/pipeline/domain"
)

// Syncer is the remote write surface the outbox drains into.
type Syncer interface {
	UpsertProject(ctx context.Context, p domain.Project) error
	DeleteProject(ctx context.Context, id string) error
	UpsertPrompt(ctx context.Context, rec domain.PromptRecord) error
	DeletePrompt(ctx context.Context, id string) error
}

// Op kinds.
const (
	OpUpsertProject = "upsert_project"
	OpDeleteProject = "delete_project"
	OpUpsertPrompt  = "upsert_prompt"
	OpDeletePrompt  = "delete_prompt"
)

type op struct {
	kind     string
	key      string
	project  *domain.Project
	prompt   *domain.PromptRecord
	attempts int
	notAfter time.Time // earliest next attempt
}

// Health is a snapshot of sync state for the "last synced" indicator.
type Health struct {
	Enabled      bool       `json:"enabled"`
	Pending      int        `json:"pending"`
	Dropped      int        `json:"dropped"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	LastError    string     `json:"lastError,omitempty"`
}

// Outbox buffers remote writes so store mutations never block on the
// network. A single worker drains it with exponential backoff; an op that
// keeps failing is dropped after maxAttempts and counted. When the queue is
// full the oldest entry is dropped first. An upsert for a key already queued
// replaces the stale payload instead of growing the queue.
type Outbox struct {
	syncer      Syncer
	maxQueue    int
	maxAttempts int
	baseBackoff time.Duration

	mu           sync.Mutex
	queue        []op
	dropped      int
	lastSyncedAt *time.Time
	lastError    string

	stop chan struct{}
	once sync.Once
}

func NewOutbox(s Syncer) *Outbox {
	return &Outbox{
		syncer:      s,
		maxQueue:    256,
		maxAttempts: 5,
		baseBackoff: 2 * time.Second,
		stop:        make(chan struct{}),
	}
}

// EnqueueUpsertProject queues a project write.
func (o *Outbox) EnqueueUpsertProject(p domain.Project) {
	o.enqueue(op{kind: OpUpsertProject, key: p.ID, project: &p})
}

// EnqueueDeleteProject queues a project delete.
func (o *Outbox) EnqueueDeleteProject(id string) {
	o.enqueue(op{kind: OpDeleteProject, key: id})
}

// EnqueueUpsertPrompt queues a prompt-record write.
func (o *Outbox) EnqueueUpsertPrompt(rec domain.PromptRecord) {
	o.enqueue(op{kind: OpUpsertPrompt, key: rec.ID, prompt: &rec})
}

// EnqueueDeletePrompt queues a prompt-record delete.
func (o *Outbox) EnqueueDeletePrompt(id string) {
	o.enqueue(op{kind: OpDeletePrompt, key: id})
}

func (o *Outbox) enqueue(newOp op) {
	if o == nil || o.syncer == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	for i := range o.queue {
		if o.queue[i].kind == newOp.kind && o.queue[i].key == newOp.key {
			o.queue[i] = newOp
			return
		}
	}
	if len(o.queue) >= o.maxQueue {
		o.queue = o.queue[1:]
		o.dropped++
		log.Printf("[warn] outbox full, dropped oldest entry (total dropped: %d)", o.dropped)
	}
	o.queue = append(o.queue, newOp)
}

// Flush attempts every due op once. Ops blocked on identity are retried
// later without burning an attempt.
func (o *Outbox) Flush(ctx context.Context) {
	if o == nil || o.syncer == nil {
		return
	}
	now := time.Now()

	o.mu.Lock()
	due := make([]op, 0, len(o.queue))
	rest := o.queue[:0]
	for _, q := range o.queue {
		if q.notAfter.After(now) {
			rest = append(rest, q)
			continue
		}
		due = append(due, q)
	}
	o.queue = rest
	o.mu.Unlock()

	for _, q := range due {
		err := o.execute(ctx, q)
		o.mu.Lock()
		switch {
		case err == nil:
			ts := time.Now()
			o.lastSyncedAt = &ts
			o.lastError = ""
		case errors.Is(err, ErrNoIdentity):
			q.notAfter = time.Now().Add(o.baseBackoff)
			o.queue = append(o.queue, q)
		default:
			o.lastError = err.Error()
			q.attempts++
			if q.attempts >= o.maxAttempts {
				o.dropped++
				log.Printf("[warn] outbox op=%s key=%s dropped after %d attempts: %v", q.kind, q.key, q.attempts, err)
			} else {
				q.notAfter = time.Now().Add(o.baseBackoff << uint(q.attempts-1))
				o.queue = append(o.queue, q)
			}
		}
		o.mu.Unlock()
	}
}

func (o *Outbox) execute(ctx context.Context, q op) error {
	switch q.kind {
	case OpUpsertProject:
		return o.syncer.UpsertProject(ctx, *q.project)
	case OpDeleteProject:
		return o.syncer.DeleteProject(ctx, q.key)
	case OpUpsertPrompt:
		return o.syncer.UpsertPrompt(ctx, *q.prompt)
	case OpDeletePrompt:
		return o.syncer.DeletePrompt(ctx, q.key)
	}
	return nil
}

// Start launches the drain loop. Safe to call on a disabled outbox.
func (o *Outbox) Start(ctx context.Context, interval time.Duration) {
	if o == nil || o.syncer == nil {
		return
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				o.Flush(ctx)
			case <-o.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the drain loop.
func (o *Outbox) Stop() {
	o.once.Do(func() { close(o.stop) })
}

// Health reports the current sync state.
func (o *Outbox) Health() Health {
	if o == nil || o.syncer == nil {
		return Health{Enabled: false}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return Health{
		Enabled:      true,
		Pending:      len(o.queue),
		Dropped:      o.dropped,
		LastSyncedAt: o.lastSyncedAt,
		LastError:    o.lastError,
	}
}
