package client

import (
	"context"
	"net/http"
)

// FetchNotes loads every note into State().Notes.
func (c *Client) FetchNotes(ctx context.Context) error {
	return fetchAll(ctx, c, notesEndpoint, c.state.Notes)
}

// CreateNote posts a note and returns the server message.
func (c *Client) CreateNote(ctx context.Context, n NewNote) (string, error) {
	return c.mutate(ctx, AddNewNote, "", http.MethodPost, "/notes", n)
}

// UpdateNote rewrites title and text of note u.ID.
func (c *Client) UpdateNote(ctx context.Context, u NoteUpdate) (string, error) {
	return c.mutate(ctx, UpdateNote, u.ID, http.MethodPatch, "/notes", u)
}

// DeleteNote removes note id.
func (c *Client) DeleteNote(ctx context.Context, id string) (string, error) {
	return c.mutate(ctx, DeleteNote, id, http.MethodDelete, "/notes", map[string]string{"id": id})
}
