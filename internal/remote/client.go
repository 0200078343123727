package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/inte-real/inte-real-backend/internal/pipeline/domain"
	"github.com/inte-real/inte-real-backend/internal/storage/localstore"
)

// ErrNoIdentity is returned while no anonymous identity has been resolved
// yet. Callers treat it as "try again later", not as a failure.
var ErrNoIdentity = errors.New("remote: identity not resolved")

// SyncError carries enough context for sync health reporting instead of
// being swallowed at the call site.
type SyncError struct {
	Op  string
	Key string
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s key=%s: %v", e.Op, e.Key, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

type identityDoc struct {
	UID string `json:"uid"`
}

// LoadOrCreateIdentity returns the stable anonymous user id, minting and
// persisting one on first use.
func LoadOrCreateIdentity(ctx context.Context, store *localstore.Store) string {
	var id identityDoc
	if localstore.LoadValue(ctx, store, localstore.KeyIdentity, &id) && id.UID != "" {
		return id.UID
	}
	id.UID = uuid.NewString()
	localstore.SaveValue(ctx, store, localstore.KeyIdentity, id)
	return id.UID
}

// Client mirrors collections to the per-user Firestore namespace
// users/{uid}/projects and users/{uid}/prompts. It is never the source of
// truth; the local store stays authoritative for synchronous reads.
type Client struct {
	fs *firestore.Client

	mu  sync.RWMutex
	uid string
}

func NewClient(fs *firestore.Client) *Client {
	return &Client{fs: fs}
}

// SetIdentity resolves the anonymous identity; until it is called every
// operation returns ErrNoIdentity.
func (c *Client) SetIdentity(uid string) {
	c.mu.Lock()
	c.uid = uid
	c.mu.Unlock()
}

func (c *Client) Identity() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.uid
}

func (c *Client) userDoc() (*firestore.DocumentRef, error) {
	uid := c.Identity()
	if uid == "" {
		return nil, ErrNoIdentity
	}
	return c.fs.Collection("users").Doc(uid), nil
}

// UpsertProject writes one project document keyed by its id.
func (c *Client) UpsertProject(ctx context.Context, p domain.Project) error {
	user, err := c.userDoc()
	if err != nil {
		return err
	}
	if _, err := user.Collection("projects").Doc(p.ID).Set(ctx, p); err != nil {
		return &SyncError{Op: "upsert_project", Key: p.ID, Err: err}
	}
	return nil
}

// DeleteProject removes one project document.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	user, err := c.userDoc()
	if err != nil {
		return err
	}
	if _, err := user.Collection("projects").Doc(id).Delete(ctx); err != nil {
		return &SyncError{Op: "delete_project", Key: id, Err: err}
	}
	return nil
}

// UpsertPrompt writes one prompt-record document keyed by its id.
func (c *Client) UpsertPrompt(ctx context.Context, rec domain.PromptRecord) error {
	user, err := c.userDoc()
	if err != nil {
		return err
	}
	if _, err := user.Collection("prompts").Doc(rec.ID).Set(ctx, rec); err != nil {
		return &SyncError{Op: "upsert_prompt", Key: rec.ID, Err: err}
	}
	return nil
}

// DeletePrompt removes one prompt-record document.
func (c *Client) DeletePrompt(ctx context.Context, id string) error {
	user, err := c.userDoc()
	if err != nil {
		return err
	}
	if _, err := user.Collection("prompts").Doc(id).Delete(ctx); err != nil {
		return &SyncError{Op: "delete_prompt", Key: id, Err: err}
	}
	return nil
}

// FetchAllProjects returns the user's project documents ordered by updatedAt
// descending. On any failure it returns an empty list alongside the error.
func (c *Client) FetchAllProjects(ctx context.Context) ([]domain.Project, error) {
	user, err := c.userDoc()
	if err != nil {
		return []domain.Project{}, err
	}
	docs, err := user.Collection("projects").
		OrderBy("updatedAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return []domain.Project{}, &SyncError{Op: "fetch_projects", Err: err}
	}
	out := make([]domain.Project, 0, len(docs))
	for _, doc := range docs {
		var p domain.Project
		if err := doc.DataTo(&p); err != nil {
			return []domain.Project{}, &SyncError{Op: "fetch_projects", Key: doc.Ref.ID, Err: err}
		}
		out = append(out, p)
	}
	return out, nil
}

// FetchAllPrompts returns the user's prompt documents ordered by createdAt
// descending; empty list on failure.
func (c *Client) FetchAllPrompts(ctx context.Context) ([]domain.PromptRecord, error) {
	user, err := c.userDoc()
	if err != nil {
		return []domain.PromptRecord{}, err
	}
	docs, err := user.Collection("prompts").
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return []domain.PromptRecord{}, &SyncError{Op: "fetch_prompts", Err: err}
	}
	out := make([]domain.PromptRecord, 0, len(docs))
	for _, doc := range docs {
		var rec domain.PromptRecord
		if err := doc.DataTo(&rec); err != nil {
			return []domain.PromptRecord{}, &SyncError{Op: "fetch_prompts", Key: doc.Ref.ID, Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

// FetchSettingsDoc reads users/{uid}/settings/profile. A missing document
// yields an empty map, not an error.
func (c *Client) FetchSettingsDoc(ctx context.Context) (map[string]any, error) {
	user, err := c.userDoc()
	if err != nil {
		return nil, err
	}
	snap, err := user.Collection("settings").Doc("profile").Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return map[string]any{}, nil
		}
		return nil, &SyncError{Op: "fetch_settings", Err: err}
	}
	return snap.Data(), nil
}

// UpsertSettingsDoc merges data into users/{uid}/settings/profile.
func (c *Client) UpsertSettingsDoc(ctx context.Context, data map[string]any) error {
	user, err := c.userDoc()
	if err != nil {
		return err
	}
	if _, err := user.Collection("settings").Doc("profile").Set(ctx, data, firestore.MergeAll); err != nil {
		return &SyncError{Op: "upsert_settings", Err: err}
	}
	return nil
}
