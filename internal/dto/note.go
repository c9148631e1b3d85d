package dto

import "time"

// ListNotesRequest carries the optional GET /notes filters. They are read from the
// query string and, for compatibility with older clients, from a JSON body.
type ListNotesRequest struct {
	Title  string `json:"title" form:"title"`
	UserID string `json:"userId" form:"userId"`
}

type CreateNoteRequest struct {
	User  string `json:"user" example:"5f0c2a7e-3f5e-4a58-9d8f-1b2b8f7f0e11"`
	Title string `json:"title" example:"Fix printer"`
	Text  string `json:"text" example:"Replace the toner"`
}

// UpdateNoteRequest has no completed field: updates always mark the note completed.
type UpdateNoteRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type DeleteRequest struct {
	ID string `json:"id"`
}

type NoteResponse struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MessageResponse is the body of every confirmation and every error.
type MessageResponse struct {
	Message string `json:"message"`
}
