package domain

import "time"

// Note is a piece of work owned by exactly one User.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Text      string
	Completed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteFilter narrows a note listing. Title wins over UserID when both are set.
type NoteFilter struct {
	Title  string
	UserID string
}

// Key identifies the filter in list caches.
func (f NoteFilter) Key() string {
	switch {
	case f.Title != "":
		return "title:" + f.Title
	case f.UserID != "":
		return "user:" + f.UserID
	default:
		return "all"
	}
}
