package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dom "technotes/internal/domain"
	"technotes/internal/dto"
	"technotes/internal/repo"
	"technotes/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	router *gin.Engine
	notes  *repo.MemNoteRepo
	users  *repo.MemUserRepo
}

func newFixture() *fixture {
	notes := repo.NewMemNoteRepo()
	users := repo.NewMemUserRepo()
	nh := NewNoteHandler(service.NewNoteService(notes, nil))
	uh := NewUserHandler(service.NewUserService(users, notes, nil))

	r := gin.New()
	r.GET("/notes", nh.List)
	r.POST("/notes", nh.Create)
	r.PATCH("/notes", nh.Update)
	r.DELETE("/notes", nh.Delete)
	r.GET("/users", uh.List)
	r.POST("/users", uh.Create)
	r.PATCH("/users", uh.Update)
	r.DELETE("/users", uh.Delete)
	return &fixture{router: r, notes: notes, users: users}
}

func (f *fixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var m dto.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m.Message
}

func TestCreateUserThenDuplicate(t *testing.T) {
	f := newFixture()
	body := gin.H{"username": "bob", "password": "x", "roles": []string{"Employee"}}

	w := f.do(t, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "New user bob created", messageOf(t, w))

	w = f.do(t, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Duplicate username", messageOf(t, w))
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture()
	for _, body := range []any{
		gin.H{"username": "bob", "password": "x"},
		gin.H{"username": "bob", "password": "x", "roles": []string{}},
		gin.H{"username": "bob", "password": "x", "roles": "Employee"},
		gin.H{"password": "x", "roles": []string{"Employee"}},
		nil,
	} {
		w := f.do(t, http.MethodPost, "/users", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "All fields are required !", messageOf(t, w))
	}
}

func TestListUsersOmitsPassword(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No users found", messageOf(t, w))

	f.do(t, http.MethodPost, "/users", gin.H{"username": "bob", "password": "x", "roles": []string{"Employee"}})
	f.do(t, http.MethodPost, "/users", gin.H{"username": "alice", "password": "y", "roles": []string{"Manager", "Admin"}})

	w = f.do(t, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Len(t, raw, 2)
	for _, u := range raw {
		assert.NotContains(t, u, "password")
		assert.NotContains(t, u, "passwordHash")
		assert.NotEmpty(t, u["_id"])
		assert.Equal(t, true, u["active"])
	}
	assert.Equal(t, "bob", raw[0]["username"])
}

func TestUpdateUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob, err := f.users.Create(ctx, dom.User{Username: "bob", PasswordHash: "h", Roles: []string{"Employee"}, Active: true})
	require.NoError(t, err)
	alice, err := f.users.Create(ctx, dom.User{Username: "alice", PasswordHash: "h", Roles: []string{"Employee"}, Active: true})
	require.NoError(t, err)

	w := f.do(t, http.MethodPatch, "/users", gin.H{"id": bob.ID, "username": "bob", "roles": []string{"Manager"}, "active": false})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob updated", messageOf(t, w))

	w = f.do(t, http.MethodPatch, "/users", gin.H{"id": alice.ID, "username": "bob", "roles": []string{"Employee"}, "active": true})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Duplicate username", messageOf(t, w))

	w = f.do(t, http.MethodPatch, "/users", gin.H{"id": alice.ID, "username": "alice", "roles": []string{"Employee"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required !", messageOf(t, w))

	w = f.do(t, http.MethodPatch, "/users", gin.H{"id": alice.ID, "username": "alice", "roles": []string{"Employee"}, "active": "yes"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPatch, "/users", gin.H{"id": "nope", "username": "x", "roles": []string{"Employee"}, "active": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user not found", messageOf(t, w))
}

func TestDeleteUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob, err := f.users.Create(ctx, dom.User{Username: "bob", PasswordHash: "h", Roles: []string{"Employee"}, Active: true})
	require.NoError(t, err)
	n, err := f.notes.Create(ctx, dom.Note{UserID: bob.ID, Title: "t", Text: "x", Completed: true})
	require.NoError(t, err)

	w := f.do(t, http.MethodDelete, "/users", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User ID Required", messageOf(t, w))

	w = f.do(t, http.MethodDelete, "/users", gin.H{"id": bob.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User has assigned notes", messageOf(t, w))

	require.NoError(t, f.notes.Delete(ctx, n.ID))
	w = f.do(t, http.MethodDelete, "/users", gin.H{"id": bob.ID})
	require.Equal(t, http.StatusOK, w.Code)
	var reply string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, "Username bob with ID "+bob.ID+" deleted ", reply)

	w = f.do(t, http.MethodDelete, "/users", gin.H{"id": bob.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user not found", messageOf(t, w))
}

func TestNotesLifecycle(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodGet, "/notes", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, EmptyNotesMessage, messageOf(t, w))

	w = f.do(t, http.MethodPost, "/notes", gin.H{"user": "u1", "title": "printer", "text": "toner", "completed": false})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Note : printer created successfully !", messageOf(t, w))

	w = f.do(t, http.MethodGet, "/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []dto.NoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.True(t, list[0].Completed, "created notes are always completed")
	assert.Equal(t, "u1", list[0].User)
	id := list[0].ID

	w = f.do(t, http.MethodPatch, "/notes", gin.H{"id": id, "title": "printer 2", "text": "paper", "completed": false})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Note Updated printer 2 Successfully!", messageOf(t, w))
	stored, err := f.notes.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	assert.Equal(t, "paper", stored.Text)

	w = f.do(t, http.MethodDelete, "/notes", gin.H{"id": id})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ressource deleted Successfully !", messageOf(t, w))

	w = f.do(t, http.MethodDelete, "/notes", gin.H{"id": id})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No note found", messageOf(t, w))

	w = f.do(t, http.MethodDelete, "/notes", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Id is Required !", messageOf(t, w))
}

func TestNoteValidationMessages(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/notes", gin.H{"user": "u1", "title": "t"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields required !", messageOf(t, w))

	w = f.do(t, http.MethodPatch, "/notes", gin.H{"id": "<missing>", "title": "t", "text": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "the note is not found !", messageOf(t, w))

	w = f.do(t, http.MethodPatch, "/notes", gin.H{"id": "abc", "title": "t"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "all Fields are Required !", messageOf(t, w))
}

func TestListNotesFilters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for _, n := range []dom.Note{
		{UserID: "u1", Title: "printer", Text: "a"},
		{UserID: "u2", Title: "printer", Text: "b"},
		{UserID: "u1", Title: "desk", Text: "c"},
	} {
		_, err := f.notes.Create(ctx, n)
		require.NoError(t, err)
	}

	decode := func(w *httptest.ResponseRecorder) []dto.NoteResponse {
		var list []dto.NoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list), w.Body.String())
		return list
	}

	assert.Len(t, decode(f.do(t, http.MethodGet, "/notes?title=printer", nil)), 2)
	assert.Len(t, decode(f.do(t, http.MethodGet, "/notes?userId=u1", nil)), 2)
	assert.Len(t, decode(f.do(t, http.MethodGet, "/notes", gin.H{"userId": "u2"})), 1, "filters are read from the body too")
	assert.Len(t, decode(f.do(t, http.MethodGet, "/notes?title=desk&userId=u2", nil)), 1, "title wins over userId")
	list := decode(f.do(t, http.MethodGet, "/notes?title=desk", gin.H{"userId": "u2"}))
	require.Len(t, list, 1, "query string wins over body")
	assert.Equal(t, "u1", list[0].User)

	w := f.do(t, http.MethodGet, "/notes?title=nothing", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, EmptyNotesMessage, messageOf(t, w))
}

func TestNoteMessagesEchoTitleAsSent(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/notes", gin.H{"user": "u1", "title": " Fix printer ", "text": "toner"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Note :  Fix printer  created successfully !", messageOf(t, w))

	list, err := f.notes.List(context.Background(), dom.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, " Fix printer ", list[0].Title)

	w = f.do(t, http.MethodPatch, "/notes", gin.H{"id": list[0].ID, "title": "  Desk ", "text": "x"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Note Updated   Desk  Successfully!", messageOf(t, w))
}
