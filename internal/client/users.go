package client

import (
	"context"
	"net/http"
)

// FetchUsers loads every user into State().Users. The server answers an empty
// user list with 400 "No users found", which empties the collection.
func (c *Client) FetchUsers(ctx context.Context) error {
	return fetchAll(ctx, c, usersEndpoint, c.state.Users)
}

func (c *Client) CreateUser(ctx context.Context, u NewUser) (string, error) {
	return c.mutate(ctx, AddNewUser, "", http.MethodPost, "/users", u)
}

func (c *Client) UpdateUser(ctx context.Context, u UserUpdate) (string, error) {
	return c.mutate(ctx, UpdateUser, u.ID, http.MethodPatch, "/users", u)
}

func (c *Client) DeleteUser(ctx context.Context, id string) (string, error) {
	return c.mutate(ctx, DeleteUser, id, http.MethodDelete, "/users", map[string]string{"id": id})
}
