package client

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// QueryStatus is the lifecycle state of a cached query.
type QueryStatus string

const (
	StatusIdle      QueryStatus = "idle"
	StatusPending   QueryStatus = "pending"
	StatusFulfilled QueryStatus = "fulfilled"
	StatusRejected  QueryStatus = "rejected"
)

// QueryState is a snapshot of one query entry.
type QueryState struct {
	Status      QueryStatus
	Err         error
	Tags        []Tag
	FulfilledAt time.Time
}

// fetchFunc performs the request of a query. On success it returns commit,
// which stores the result and reports the tags it provides. commit runs only
// if no newer fetch of the same query was started meanwhile.
type fetchFunc func(ctx context.Context) (commit func() []Tag, err error)

type queryEntry struct {
	fetch   fetchFunc
	errTags []Tag
	// gen is bumped by invalidation; a fetch only settles the entry if it
	// still belongs to the current generation.
	gen   uint64
	state QueryState
}

// queryCache tracks query entries by key. Concurrent runs of the same key and
// generation share one fetch.
type queryCache struct {
	mu      sync.Mutex
	entries map[string]*queryEntry
	sf      singleflight.Group
	now     func() time.Time
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[string]*queryEntry), now: time.Now}
}

func (q *queryCache) state(key string) QueryState {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[key]
	if !ok {
		return QueryState{Status: StatusIdle}
	}
	st := e.state
	st.Tags = slices.Clone(st.Tags)
	return st
}

// run executes fetch under key, joining a fetch of the current generation if
// one is in flight. errTags are provided when the fetch fails.
func (q *queryCache) run(ctx context.Context, key string, errTags []Tag, fetch fetchFunc) error {
	q.mu.Lock()
	e, ok := q.entries[key]
	if !ok {
		e = &queryEntry{}
		q.entries[key] = e
	}
	e.fetch = fetch
	e.errTags = errTags
	e.state.Status = StatusPending
	gen := e.gen
	q.mu.Unlock()

	return q.do(ctx, key, e, gen)
}

func (q *queryCache) do(ctx context.Context, key string, e *queryEntry, gen uint64) error {
	q.mu.Lock()
	fetch, errTags := e.fetch, e.errTags
	q.mu.Unlock()

	_, err, _ := q.sf.Do(key+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		commit, err := fetch(ctx)

		q.mu.Lock()
		defer q.mu.Unlock()
		if gen != e.gen {
			// Superseded by an invalidation; the newer fetch settles the entry.
			return nil, err
		}
		if err != nil {
			e.state.Tags = errTags
			e.state.Err = err
			e.state.Status = StatusRejected
			return nil, err
		}
		e.state.Tags = commit()
		e.state.Err = nil
		e.state.Status = StatusFulfilled
		e.state.FulfilledAt = q.now()
		return nil, nil
	})
	return err
}

// invalidate re-fetches every entry that provided one of tags and waits for
// them. An entry with a fetch in flight gets a new fetch rather than joining
// the old one, whose response may predate the mutation.
func (q *queryCache) invalidate(ctx context.Context, tags []Tag) error {
	type target struct {
		key string
		e   *queryEntry
		gen uint64
	}
	var targets []target

	q.mu.Lock()
	for key, e := range q.entries {
		provided := e.state.Tags
		if e.state.Status == StatusPending {
			provided = append(slices.Clone(provided), e.errTags...)
		}
		if e.fetch == nil || !intersects(provided, tags) {
			continue
		}
		e.gen++
		e.state.Status = StatusPending
		targets = append(targets, target{key, e, e.gen})
	}
	q.mu.Unlock()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, t := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := q.do(ctx, t.key, t.e, t.gen); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

func intersects(provided, invalidated []Tag) bool {
	for _, t := range invalidated {
		if slices.Contains(provided, t) {
			return true
		}
	}
	return false
}
