package service

import (
	"context"
	"encoding/json"
	"time"

	"quicknote-be/internal/entity"
	"quicknote-be/internal/pkg/logger"
	"quicknote-be/internal/repository/specification"
	"quicknote-be/internal/repository/unitofwork"
	"quicknote-be/pkg/events"

	"github.com/google/uuid"
)

// INoteService is the gateway to the persistent note store. Every operation
// is scoped to a user id; a uuid.Nil user means there is no session to scope
// the request to, so the operation is not attempted and a nil result is
// returned instead of an error.
type INoteService interface {
	List(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error)
	Insert(ctx context.Context, userId uuid.UUID, title, content string, fileName *string) (*entity.Note, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, title, content string) (*entity.Note, error)
	UpdateSummary(ctx context.Context, userId uuid.UUID, id uuid.UUID, summary string) (*entity.Note, error)
	Remove(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	log              logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error) {
	if userId == uuid.Nil {
		return nil, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (s *noteService) Insert(ctx context.Context, userId uuid.UUID, title, content string, fileName *string) (*entity.Note, error) {
	if userId == uuid.Nil {
		return nil, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		Title:     title,
		Content:   content,
		FileName:  fileName,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, "NOTE_CREATED", &note)
	return &note, nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, title, content string) (*entity.Note, error) {
	if userId == uuid.Nil {
		return nil, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	now := time.Now()
	note.Title = title
	note.Content = content
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, "NOTE_UPDATED", note)
	return note, nil
}

func (s *noteService) UpdateSummary(ctx context.Context, userId uuid.UUID, id uuid.UUID, summary string) (*entity.Note, error) {
	if userId == uuid.Nil {
		return nil, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	now := time.Now()
	note.Summary = &summary
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, "NOTE_SUMMARIZED", note)
	return note, nil
}

func (s *noteService) Remove(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	if userId == uuid.Nil {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return nil
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.publishActivity(ctx, "NOTE_DELETED", note)
	return nil
}

// publishActivity emits a note activity event. Activity is auxiliary, so a
// publish failure is logged and never fails the originating operation.
func (s *noteService) publishActivity(ctx context.Context, eventType string, note *entity.Note) {
	if s.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id": note.Id,
			"title":   note.Title,
			"user_id": note.UserId,
		},
		OccurredAt: time.Now(),
	}
	payload, err := json.Marshal(dtoFromEvent(evt))
	if err != nil {
		s.log.Warn("note_service", "failed to marshal activity event", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("note_service", "failed to publish activity event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

type activityMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func dtoFromEvent(evt events.BaseEvent) activityMessage {
	return activityMessage{
		Type:       evt.EventType(),
		Data:       evt.Payload(),
		OccurredAt: evt.Timestamp(),
	}
}
