package service

import (
	"context"
	"testing"

	dom "technotes/internal/domain"
	"technotes/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService() (*UserService, *repo.MemUserRepo, *repo.MemNoteRepo) {
	users := repo.NewMemUserRepo()
	notes := repo.NewMemNoteRepo()
	return NewUserService(users, notes, nil), users, notes
}

func boolPtr(b bool) *bool { return &b }

func TestUserCreateHashesPassword(t *testing.T) {
	svc, _, _ := newUserService()
	u, err := svc.Create(context.Background(), "bob", "x", []string{"Employee"})
	require.NoError(t, err)
	assert.True(t, u.Active)
	assert.NotEqual(t, "x", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("x")))

	cost, err := bcrypt.Cost([]byte(u.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, HashCost, cost)
}

func TestUserCreateValidation(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "x", []string{"Employee"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(ctx, "bob", "", []string{"Employee"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(ctx, "bob", "x", nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(ctx, "bob", "x", []string{""})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserCreateDuplicate(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "bob", "x", []string{"Employee"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", "y", []string{"Manager"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserUpdateDuplicateChecksExcludeSelf(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	bob, err := svc.Create(ctx, "bob", "x", []string{"Employee"})
	require.NoError(t, err)
	alice, err := svc.Create(ctx, "alice", "x", []string{"Employee"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, UpdateUserInput{ID: alice.ID, Username: "bob", Roles: []string{"Employee"}, Active: boolPtr(true)})
	assert.ErrorIs(t, err, ErrConflict)

	same, err := svc.Update(ctx, UpdateUserInput{ID: bob.ID, Username: "bob", Roles: []string{"Manager"}, Active: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Manager"}, same.Roles)
	assert.False(t, same.Active)
	assert.Equal(t, bob.PasswordHash, same.PasswordHash, "password untouched when not supplied")
}

func TestUserUpdateRehashesSuppliedPassword(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	bob, err := svc.Create(ctx, "bob", "x", []string{"Employee"})
	require.NoError(t, err)
	u, err := svc.Update(ctx, UpdateUserInput{ID: bob.ID, Username: "robert", Password: "new", Roles: []string{"Employee"}, Active: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "robert", u.Username)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new")))
}

func TestUserUpdateValidationAndNotFound(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Update(ctx, UpdateUserInput{ID: "x", Username: "bob", Roles: []string{"Employee"}})
	assert.ErrorIs(t, err, ErrValidation, "active is required")
	_, err = svc.Update(ctx, UpdateUserInput{ID: "x", Username: "bob", Active: boolPtr(true)})
	assert.ErrorIs(t, err, ErrValidation, "roles are required")
	_, err = svc.Update(ctx, UpdateUserInput{ID: "missing", Username: "bob", Roles: []string{"Employee"}, Active: boolPtr(true)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDeleteBlockedByNotes(t *testing.T) {
	svc, _, notes := newUserService()
	ctx := context.Background()

	bob, err := svc.Create(ctx, "bob", "x", []string{"Employee"})
	require.NoError(t, err)
	n, err := notes.Create(ctx, dom.Note{UserID: bob.ID, Title: "t", Text: "x", Completed: true})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, bob.ID)
	assert.ErrorIs(t, err, ErrHasNotes)

	require.NoError(t, notes.Delete(ctx, n.ID))
	deleted, err := svc.Delete(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", deleted.Username)

	_, err = svc.Delete(ctx, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Delete(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserList(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Create(ctx, "bob", "x", []string{"Employee"})
	require.NoError(t, err)
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
