package client

import "time"

// Note as cached by the client. ID is filled from the server's _id.
type Note struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User as cached by the client. The server never sends passwords.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewNote is the body of a note creation.
type NewNote struct {
	User  string `json:"user"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// NoteUpdate is the body of a note update.
type NoteUpdate struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// NewUser is the body of a user creation.
type NewUser struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// UserUpdate is the body of a user update. An empty Password keeps the current one.
type UserUpdate struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Password string   `json:"password,omitempty"`
	Roles    []string `json:"roles"`
	Active   bool     `json:"active"`
}

func noteID(n Note) string { return n.ID }
func userID(u User) string { return u.ID }

// compareNotes puts open notes before completed ones.
func compareNotes(a, b Note) int {
	switch {
	case a.Completed == b.Completed:
		return 0
	case a.Completed:
		return 1
	default:
		return -1
	}
}

// State holds the normalized collections of one application instance.
type State struct {
	Notes *Collection[Note]
	Users *Collection[User]
}

// NewState returns empty collections: notes ordered open-first, users in server order.
func NewState() *State {
	return &State{
		Notes: NewCollection(noteID, compareNotes),
		Users: NewCollection(userID, nil),
	}
}
