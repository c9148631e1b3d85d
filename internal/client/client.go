// Package client is a Go client for the notes API that keeps a normalized,
// tag-invalidated cache of the notes and users collections.
//
// Queries (FetchNotes, FetchUsers) fill the collections of a [State] and tag
// their results. Mutations settle, then invalidate tags; every query that
// provided one of those tags is re-fetched before the mutation returns. Local
// entities only ever change through such a re-fetch.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Query keys for Status.
const (
	NotesQuery = "getNotes"
	UsersQuery = "getUsers"
)

// APIError is a non-success answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d, message=%s", e.Status, e.Message)
}

// Client talks to the API and owns the query cache for one State.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tagTypes   []TagType
	state      *State
	queries    *queryCache
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// New returns a client for baseURL (no trailing slash) that fills state.
func New(baseURL string, state *State, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tagTypes:   []TagType{NoteTag, UserTag},
		state:      state,
		queries:    newQueryCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the collections this client fills.
func (c *Client) State() *State { return c.state }

// TagTypes returns the registered tag types.
func (c *Client) TagTypes() []TagType { return c.tagTypes }

// Status returns the current state of the query with the given key.
func (c *Client) Status(key string) QueryState { return c.queries.state(key) }

// doRequest performs an HTTP request and returns status code and body.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, payload, nil
}

// listEndpoint describes a collection query. empty is how the server reports
// an empty collection.
type listEndpoint struct {
	key     string
	path    string
	tagType TagType
	empty   emptyAnswer
}

// emptyAnswer matches a message-only object sent with Status. An empty
// Message matches any message.
type emptyAnswer struct {
	Status  int
	Message string
}

var (
	notesEndpoint = listEndpoint{
		key:     NotesQuery,
		path:    "/notes",
		tagType: NoteTag,
		empty:   emptyAnswer{Status: http.StatusOK},
	}
	usersEndpoint = listEndpoint{
		key:     UsersQuery,
		path:    "/users",
		tagType: UserTag,
		empty:   emptyAnswer{Status: http.StatusBadRequest, Message: "No users found"},
	}
)

// fetchAll runs the list query of ep and, on success, replaces coll.
func fetchAll[T any](ctx context.Context, c *Client, ep listEndpoint, coll *Collection[T]) error {
	errTags := []Tag{{ep.tagType, ListID}}
	return c.queries.run(ctx, ep.key, errTags, func(ctx context.Context) (func() []Tag, error) {
		status, payload, err := c.doRequest(ctx, http.MethodGet, ep.path, nil)
		if err != nil {
			return nil, err
		}
		items, err := decodeCollection[T](status, payload, ep.empty)
		if err != nil {
			return nil, err
		}
		return func() []Tag {
			coll.SetAll(items)
			return collectionTags(ep.tagType, coll.SelectIDs())
		}, nil
	})
}

// mutate sends a write and, once it settles, invalidates the tags of kind.
func (c *Client) mutate(ctx context.Context, kind MutationKind, id, method, path string, body any) (string, error) {
	status, payload, err := c.doRequest(ctx, method, path, body)
	var msg string
	if err == nil {
		msg, err = decodeMessage(status, payload)
	}
	// Refetch failures are recorded on the affected queries.
	_ = c.queries.invalidate(ctx, InvalidatedTags(kind, id))
	return msg, err
}

// decodeCollection accepts a 200 JSON array, or the endpoint's empty answer.
// Any other answer, including a 200 object that is not a bare message, is an
// error.
func decodeCollection[T any](status int, payload []byte, empty emptyAnswer) ([]T, error) {
	if isEmptyAnswer(status, payload, empty) {
		return []T{}, nil
	}
	trimmed := bytes.TrimSpace(payload)
	if status != http.StatusOK || len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &APIError{Status: status, Message: messageOf(payload)}
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	items := make([]T, 0, len(raw))
	for _, rec := range raw {
		if id, ok := rec["_id"]; ok {
			rec["id"] = id
			delete(rec, "_id")
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize record: %w", err)
		}
		var item T
		if err := json.Unmarshal(b, &item); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func isEmptyAnswer(status int, payload []byte, empty emptyAnswer) bool {
	if status != empty.Status {
		return false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return false
	}
	raw, ok := obj["message"]
	if !ok || len(obj) != 1 {
		return false
	}
	if empty.Message == "" {
		return true
	}
	var msg string
	return json.Unmarshal(raw, &msg) == nil && msg == empty.Message
}

// decodeMessage returns the message of a 2xx answer, which is either
// {"message": ...} or a bare JSON string.
func decodeMessage(status int, payload []byte) (string, error) {
	if status < 200 || status > 299 {
		return "", &APIError{Status: status, Message: messageOf(payload)}
	}
	return messageOf(payload), nil
}

func messageOf(payload []byte) string {
	var s string
	if err := json.Unmarshal(payload, &s); err == nil {
		return s
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(payload))
}
