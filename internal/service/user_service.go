package service

import (
	"context"
	"errors"
	"strings"

	"technotes/internal/cache"
	dom "technotes/internal/domain"
	"technotes/internal/repo"
	"technotes/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

// HashCost is the bcrypt cost used for stored passwords.
const HashCost = 10

const userListKey = "all"

// UserService handles user accounts.
type UserService struct {
	repo  repo.UserRepo
	notes repo.NoteRepo
	cache *cache.ListCache[dom.User]
	sf    singleflight.Group
}

// NewUserService returns a new UserService. notes is consulted before deleting a
// user. If c is nil, caching is disabled.
func NewUserService(r repo.UserRepo, notes repo.NoteRepo, c *cache.ListCache[dom.User]) *UserService {
	return &UserService{repo: r, notes: notes, cache: c}
}

// UpdateUserInput is the full replacement of a user's editable fields. An empty
// Password keeps the current hash.
type UpdateUserInput struct {
	ID       string
	Username string
	Password string
	Roles    []string
	Active   *bool
}

// HashPassword hashes a password with HashCost.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *UserService) List(ctx context.Context) ([]dom.User, error) {
	v, err, _ := s.sf.Do(userListKey, func() (interface{}, error) {
		if s.cache != nil {
			if list, ok, err := s.cache.Get(ctx, userListKey); err == nil && ok {
				return list, nil
			}
		}
		list, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			_ = s.cache.Set(ctx, userListKey, list)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.User), nil
}

// Create registers a new active user with a hashed password.
func (s *UserService) Create(ctx context.Context, username, password string, roles []string) (dom.User, error) {
	if username == "" || password == "" || !validRoles(roles) {
		return dom.User{}, ErrValidation
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return dom.User{}, ErrConflict
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Username:     username,
		PasswordHash: hash,
		Roles:        roles,
		Active:       true,
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrConflict
		}
		return dom.User{}, err
	}
	s.invalidateCache(ctx)
	return u, nil
}

// Update replaces username, roles and active flag, and the password when one is given.
func (s *UserService) Update(ctx context.Context, in UpdateUserInput) (dom.User, error) {
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" || in.Username == "" || !validRoles(in.Roles) || in.Active == nil {
		return dom.User{}, ErrValidation
	}

	u, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}

	dup, err := s.repo.GetByUsername(ctx, in.Username)
	switch {
	case err == nil && dup.ID != in.ID:
		return dom.User{}, ErrConflict
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return dom.User{}, err
	}

	u.Username = in.Username
	u.Roles = in.Roles
	u.Active = *in.Active
	if in.Password != "" {
		hash, err := HashPassword(in.Password)
		if err != nil {
			return dom.User{}, err
		}
		u.PasswordHash = hash
	}

	updated, err := s.repo.Save(ctx, u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrConflict
		}
		return dom.User{}, err
	}
	s.invalidateCache(ctx)
	return updated, nil
}

// Delete removes a user that owns no notes and returns the removed record.
func (s *UserService) Delete(ctx context.Context, id string) (dom.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dom.User{}, ErrValidation
	}

	hasNotes, err := s.notes.ExistsForUser(ctx, id)
	if err != nil {
		return dom.User{}, err
	}
	if hasNotes {
		return dom.User{}, ErrHasNotes
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	s.invalidateCache(ctx)
	return u, nil
}

func validRoles(roles []string) bool {
	if len(roles) == 0 {
		return false
	}
	for _, r := range roles {
		if strings.TrimSpace(r) == "" {
			return false
		}
	}
	return true
}

func (s *UserService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
