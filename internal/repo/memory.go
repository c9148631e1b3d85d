package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	dom "technotes/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MemNoteRepo is an in-memory NoteRepo with the same error contract as
// PGNoteRepo: misses return pgx.ErrNoRows.
type MemNoteRepo struct {
	mu    sync.RWMutex
	order []string
	notes map[string]dom.Note
}

func NewMemNoteRepo() *MemNoteRepo {
	return &MemNoteRepo{notes: make(map[string]dom.Note)}
}

func (r *MemNoteRepo) Create(_ context.Context, n dom.Note) (dom.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	n.ID = uuid.NewString()
	n.CreatedAt, n.UpdatedAt = now, now
	r.notes[n.ID] = n
	r.order = append(r.order, n.ID)
	return n, nil
}

func (r *MemNoteRepo) GetByID(_ context.Context, id string) (dom.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notes[id]
	if !ok {
		return dom.Note{}, pgx.ErrNoRows
	}
	return n, nil
}

func (r *MemNoteRepo) List(_ context.Context, f dom.NoteFilter) ([]dom.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []dom.Note
	for _, id := range r.order {
		n := r.notes[id]
		switch {
		case f.Title != "" && n.Title != f.Title:
			continue
		case f.Title == "" && f.UserID != "" && n.UserID != f.UserID:
			continue
		}
		list = append(list, n)
	}
	return list, nil
}

func (r *MemNoteRepo) Save(_ context.Context, n dom.Note) (dom.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.notes[n.ID]
	if !ok {
		return dom.Note{}, pgx.ErrNoRows
	}
	cur.Title, cur.Text, cur.Completed = n.Title, n.Text, n.Completed
	cur.UpdatedAt = time.Now().UTC()
	r.notes[n.ID] = cur
	return cur, nil
}

func (r *MemNoteRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.notes, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *MemNoteRepo) ExistsForUser(_ context.Context, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.notes {
		if n.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// MemUserRepo is an in-memory UserRepo. Usernames are unique; a clash is reported
// as a Postgres unique violation like the users_username_key index would.
type MemUserRepo struct {
	mu    sync.RWMutex
	order []string
	users map[string]dom.User
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{users: make(map[string]dom.User)}
}

var errUsernameKey = &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}

func (r *MemUserRepo) List(_ context.Context) ([]dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]dom.User, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.users[id])
	}
	return list, nil
}

func (r *MemUserRepo) GetByID(_ context.Context, id string) (dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *MemUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *MemUserRepo) Create(_ context.Context, u dom.User) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usernameTaken(u.Username, "") {
		return dom.User{}, errUsernameKey
	}
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.Roles = slices.Clone(u.Roles)
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = u
	r.order = append(r.order, u.ID)
	return u, nil
}

func (r *MemUserRepo) Save(_ context.Context, u dom.User) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.users[u.ID]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	if r.usernameTaken(u.Username, u.ID) {
		return dom.User{}, errUsernameKey
	}
	cur.Username, cur.PasswordHash, cur.Active = u.Username, u.PasswordHash, u.Active
	cur.Roles = slices.Clone(u.Roles)
	cur.UpdatedAt = time.Now().UTC()
	r.users[u.ID] = cur
	return cur, nil
}

func (r *MemUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *MemUserRepo) usernameTaken(username, exceptID string) bool {
	for id, u := range r.users {
		if u.Username == username && id != exceptID {
			return true
		}
	}
	return false
}

var (
	_ NoteRepo = (*PGNoteRepo)(nil)
	_ NoteRepo = (*MemNoteRepo)(nil)
	_ UserRepo = (*PGUserRepo)(nil)
	_ UserRepo = (*MemUserRepo)(nil)
)
