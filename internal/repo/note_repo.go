package repo

import (
	"context"

	dom "technotes/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NoteRepo provides note persistence.
type NoteRepo interface {
	Create(ctx context.Context, n dom.Note) (dom.Note, error)
	GetByID(ctx context.Context, id string) (dom.Note, error)
	List(ctx context.Context, f dom.NoteFilter) ([]dom.Note, error)
	Save(ctx context.Context, n dom.Note) (dom.Note, error)
	Delete(ctx context.Context, id string) error
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}

type PGNoteRepo struct {
	db *pgxpool.Pool
}

func NewPGNoteRepo(db *pgxpool.Pool) *PGNoteRepo {
	return &PGNoteRepo{db: db}
}

const noteColumns = `id, user_id, title, text, completed, created_at, updated_at`

func scanNote(row pgx.Row) (dom.Note, error) {
	var n dom.Note
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Text, &n.Completed, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (r *PGNoteRepo) Create(ctx context.Context, n dom.Note) (dom.Note, error) {
	query := `
		INSERT INTO notes (id, user_id, title, text, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + noteColumns
	return scanNote(r.db.QueryRow(ctx, query, uuid.NewString(), n.UserID, n.Title, n.Text, n.Completed))
}

func (r *PGNoteRepo) GetByID(ctx context.Context, id string) (dom.Note, error) {
	return scanNote(r.db.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
}

// List returns notes in insertion order, narrowed by f.
func (r *PGNoteRepo) List(ctx context.Context, f dom.NoteFilter) ([]dom.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes`
	var args []any
	switch {
	case f.Title != "":
		query += ` WHERE title = $1`
		args = append(args, f.Title)
	case f.UserID != "":
		query += ` WHERE user_id = $1`
		args = append(args, f.UserID)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// Save overwrites the mutable fields of an existing note. Concurrent saves of the
// same note are last-writer-wins.
func (r *PGNoteRepo) Save(ctx context.Context, n dom.Note) (dom.Note, error) {
	query := `
		UPDATE notes SET title = $2, text = $3, completed = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + noteColumns
	return scanNote(r.db.QueryRow(ctx, query, n.ID, n.Title, n.Text, n.Completed))
}

// Delete removes the note permanently. Deleting a missing note returns pgx.ErrNoRows.
func (r *PGNoteRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PGNoteRepo) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM notes WHERE user_id = $1)`, userID).Scan(&exists)
	return exists, err
}
