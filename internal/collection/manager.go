package collection

import (
	"context"
	"errors"
	"sync"

	"quicknote-be/internal/dto"
	"quicknote-be/internal/entity"
	"quicknote-be/internal/pkg/logger"
	"quicknote-be/internal/service"

	"github.com/google/uuid"
)

// ErrNoteNotFound is returned when an operation targets a note id that is
// not present in the current collection.
var ErrNoteNotFound = errors.New("note not found")

// Manager owns the authoritative in-memory view of one user's notes. It is
// the only writer of that view: every mutation goes through the store
// gateway first and is folded into the collection only after the store has
// confirmed it. The mutex keeps each fold atomic; gateway calls happen
// outside the lock, so folds apply in completion order.
type Manager struct {
	mu        sync.Mutex
	loadMu    sync.Mutex
	userId    uuid.UUID
	notes     []*entity.Note
	loading   bool
	populated bool

	store      service.INoteService
	summarizer service.ISummaryService
	log        logger.ILogger
}

func NewManager(
	userId uuid.UUID,
	store service.INoteService,
	summarizer service.ISummaryService,
	log logger.ILogger,
) *Manager {
	return &Manager{
		userId:     userId,
		loading:    true,
		store:      store,
		summarizer: summarizer,
		log:        log,
	}
}

// Notes returns a snapshot of the collection, most recent first.
func (m *Manager) Notes() []*entity.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Note, len(m.notes))
	copy(out, m.notes)
	return out
}

func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Get returns the collection's entry for the id, or nil when absent.
func (m *Manager) Get(id uuid.UUID) *entity.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notes {
		if n.Id == id {
			return n
		}
	}
	return nil
}

// Refresh replaces the collection wholesale with the store's view. On
// failure the previous collection is left untouched; either way the loading
// flag is cleared.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.userId == uuid.Nil {
		return nil
	}

	notes, err := m.store.List(ctx, m.userId)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.log.Error("collection", "refresh failed", map[string]interface{}{
			"user_id": m.userId,
			"error":   err.Error(),
		})
		return err
	}
	m.notes = notes
	m.populated = true
	return nil
}

// ensureLoaded runs the initial population at most once per manager.
// Concurrent acquirers block here instead of issuing duplicate fetches; a
// failed fetch leaves the manager unpopulated so a later call retries.
func (m *Manager) ensureLoaded(ctx context.Context) error {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	m.mu.Lock()
	done := m.populated
	m.mu.Unlock()
	if done {
		return nil
	}
	return m.Refresh(ctx)
}

// Create persists a new note and, only once the store confirms it, prepends
// it to the collection. There is no optimistic insertion.
func (m *Manager) Create(ctx context.Context, title, content string, fileName *string) (*entity.Note, error) {
	if m.userId == uuid.Nil {
		return nil, nil
	}

	note, err := m.store.Insert(ctx, m.userId, title, content, fileName)
	if err != nil {
		m.log.Error("collection", "create failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append([]*entity.Note{note}, m.notes...)
	return note, nil
}

// Update persists new title/content and replaces the matching entry
// in-place, preserving its position. An id that does not resolve for this
// user yields an absent result.
func (m *Manager) Update(ctx context.Context, id uuid.UUID, title, content string) (*entity.Note, error) {
	if m.userId == uuid.Nil {
		return nil, nil
	}

	note, err := m.store.Update(ctx, m.userId, id, title, content)
	if err != nil {
		m.log.Error("collection", "update failed", map[string]interface{}{"note_id": id, "error": err.Error()})
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	m.replace(note)
	return note, nil
}

// Delete removes the note from the store and, on confirmation, filters it
// out of the collection.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	if m.userId == uuid.Nil {
		return nil
	}

	if err := m.store.Remove(ctx, m.userId, id); err != nil {
		m.log.Error("collection", "delete failed", map[string]interface{}{"note_id": id, "error": err.Error()})
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.notes[:0]
	for _, n := range m.notes {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	m.notes = kept
	return nil
}

// SummarizeOne generates a summary for the note's content and persists it.
// The summary is authoritative only once stored: if persistence fails the
// computed text is discarded and the in-memory entry keeps its old summary.
func (m *Manager) SummarizeOne(ctx context.Context, id uuid.UUID) (string, error) {
	if m.userId == uuid.Nil {
		return "", nil
	}

	target := m.Get(id)
	if target == nil {
		return "", ErrNoteNotFound
	}

	summary, err := m.summarizer.SummarizeOne(ctx, target.Content)
	if err != nil {
		m.log.Error("collection", "summarization failed", map[string]interface{}{"note_id": id, "error": err.Error()})
		return "", err
	}

	updated, err := m.store.UpdateSummary(ctx, m.userId, id, summary)
	if err != nil {
		m.log.Error("collection", "summary persistence failed, discarding summary", map[string]interface{}{
			"note_id": id,
			"error":   err.Error(),
		})
		return "", err
	}
	if updated == nil {
		return "", ErrNoteNotFound
	}

	m.replace(updated)
	return summary, nil
}

// SummarizeAll produces one combined, display-only summary over the whole
// collection. Nothing is persisted; an empty collection or absent session
// yields an absent result.
func (m *Manager) SummarizeAll(ctx context.Context) (string, error) {
	if m.userId == uuid.Nil {
		return "", nil
	}

	m.mu.Lock()
	items := make([]dto.SummaryItem, len(m.notes))
	for i, n := range m.notes {
		items[i] = dto.SummaryItem{Title: n.Title, Content: n.Content}
	}
	m.mu.Unlock()

	if len(items) == 0 {
		return "", nil
	}

	combined, err := m.summarizer.SummarizeMany(ctx, items)
	if err != nil {
		m.log.Error("collection", "batch summarization failed", map[string]interface{}{"error": err.Error()})
		return "", err
	}
	return combined, nil
}

func (m *Manager) replace(note *entity.Note) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notes {
		if n.Id == note.Id {
			m.notes[i] = note
			return
		}
	}
}
