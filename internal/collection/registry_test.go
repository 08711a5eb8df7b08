package collection

import (
	"context"
	"errors"
	"testing"

	"quicknote-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAcquireFailureIsRetried(t *testing.T) {
	userId := uuid.New()
	note := makeNote(userId, "late arrival")
	failing := true
	store := &fakeStore{
		listFn: func(ctx context.Context, uid uuid.UUID) ([]*entity.Note, error) {
			if failing {
				return nil, errors.New("store unavailable")
			}
			return []*entity.Note{note}, nil
		},
	}
	r := NewRegistry(store, &fakeSummarizer{}, nopLogger{})

	_, err := r.Acquire(context.Background(), userId)
	assert.Error(t, err)

	// The failed population was not kept, so the next acquisition fetches
	// again and succeeds.
	failing = false
	mgr, err := r.Acquire(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{note.Id}, noteIds(mgr.Notes()))
	assert.Equal(t, 2, store.calls)
}

func TestAcquireReusesLiveManager(t *testing.T) {
	userId := uuid.New()
	store := &fakeStore{
		listFn: func(ctx context.Context, uid uuid.UUID) ([]*entity.Note, error) {
			return []*entity.Note{makeNote(userId, "only")}, nil
		},
	}
	r := NewRegistry(store, &fakeSummarizer{}, nopLogger{})

	first, err := r.Acquire(context.Background(), userId)
	assert.NoError(t, err)
	second, err := r.Acquire(context.Background(), userId)
	assert.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, store.calls)
}

func TestRevokeDropsCollection(t *testing.T) {
	userId := uuid.New()
	store := &fakeStore{
		listFn: func(ctx context.Context, uid uuid.UUID) ([]*entity.Note, error) {
			return []*entity.Note{makeNote(userId, "note")}, nil
		},
	}
	r := NewRegistry(store, &fakeSummarizer{}, nopLogger{})

	first, err := r.Acquire(context.Background(), userId)
	assert.NoError(t, err)

	r.Revoke(userId)

	second, err := r.Acquire(context.Background(), userId)
	assert.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, store.calls)
}
