package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title    string  `json:"title" validate:"required"`
	Content  string  `json:"content" validate:"required"`
	FileName *string `json:"file_name,omitempty"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type NoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Summary   *string    `json:"summary,omitempty"`
	FileName  *string    `json:"file_name,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ListNotesResponse struct {
	Loading bool            `json:"loading"`
	Notes   []*NoteResponse `json:"notes"`
}

type UploadTextResponse struct {
	FileName       string `json:"file_name"`
	Content        string `json:"content"`
	SuggestedTitle string `json:"suggested_title"`
}
