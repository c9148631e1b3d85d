package service

import (
	"context"
	"errors"
	"strings"

	"technotes/internal/cache"
	dom "technotes/internal/domain"
	"technotes/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

type NoteService struct {
	repo  repo.NoteRepo
	cache *cache.ListCache[dom.Note]
	sf    singleflight.Group
}

// NewNoteService creates a NoteService. If c is nil, caching is disabled.
func NewNoteService(r repo.NoteRepo, c *cache.ListCache[dom.Note]) *NoteService {
	return &NoteService{repo: r, cache: c}
}

// List returns the notes matching f. Concurrent identical listings share one
// store query.
func (s *NoteService) List(ctx context.Context, f dom.NoteFilter) ([]dom.Note, error) {
	key := f.Key()
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if s.cache != nil {
			if list, ok, err := s.cache.Get(ctx, key); err == nil && ok {
				return list, nil
			}
		}
		list, err := s.repo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			_ = s.cache.Set(ctx, key, list)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Note), nil
}

// Create stores a new note. Notes are always created completed.
func (s *NoteService) Create(ctx context.Context, userID, title, text string) (dom.Note, error) {
	if userID == "" || title == "" || text == "" {
		return dom.Note{}, ErrValidation
	}

	n, err := s.repo.Create(ctx, dom.Note{
		UserID:    userID,
		Title:     title,
		Text:      text,
		Completed: true,
	})
	if err != nil {
		return dom.Note{}, err
	}
	s.invalidateCache(ctx)
	return n, nil
}

// Update rewrites title and text and marks the note completed; callers cannot
// set the flag themselves.
func (s *NoteService) Update(ctx context.Context, id, title, text string) (dom.Note, error) {
	id = strings.TrimSpace(id)
	if id == "" || title == "" || text == "" {
		return dom.Note{}, ErrValidation
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	existing.Title = title
	existing.Text = text
	existing.Completed = true

	n, err := s.repo.Save(ctx, existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	s.invalidateCache(ctx)
	return n, nil
}

// Delete removes the note and returns what was deleted.
func (s *NoteService) Delete(ctx context.Context, id string) (dom.Note, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dom.Note{}, ErrValidation
	}
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	s.invalidateCache(ctx)
	return n, nil
}

func (s *NoteService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
