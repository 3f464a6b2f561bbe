package scene

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNodeNotFound is returned by a Resolver when a selected ID does not exist
// in the scene graph.
var ErrNodeNotFound = errors.New("node not found")

// Resolver turns node IDs into scene graph nodes.
type Resolver interface {
	Resolve(ctx context.Context, ids []string) ([]Node, error)
}

// Invalidator is implemented by resolvers that cache nodes. Invalidate drops
// every cached node so the next Resolve reads the current scene graph.
type Invalidator interface {
	Invalidate()
}

// Selection holds the host application's current selection and pushes a
// notification to every subscriber whenever it changes.
type Selection struct {
	resolver Resolver

	mu     sync.Mutex
	ids    []string
	subs   map[int]chan struct{}
	nextID int
}

// NewSelection returns an empty selection backed by the given resolver.
func NewSelection(resolver Resolver, ids ...string) *Selection {
	return &Selection{
		resolver: resolver,
		ids:      slices.Clone(ids),
		subs:     make(map[int]chan struct{}),
	}
}

// Set replaces the current selection, invalidates the resolver cache and
// notifies subscribers. Setting the same IDs again still notifies; receivers
// treat pushes as idempotent.
func (s *Selection) Set(ids []string) {
	s.Invalidate()
	s.mu.Lock()
	s.ids = slices.Clone(ids)
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default: // a notification is already pending, it will read the new IDs.
		}
	}
	s.mu.Unlock()
}

// Invalidate drops the nodes cached by the resolver, if it caches any.
func (s *Selection) Invalidate() {
	if inv, ok := s.resolver.(Invalidator); ok {
		inv.Invalidate()
	}
}

// IDs returns a copy of the selected node IDs, in selection order.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ids)
}

// Nodes resolves the current selection. An empty selection yields a nil slice.
func (s *Selection) Nodes(ctx context.Context) ([]Node, error) {
	ids := s.IDs()
	if len(ids) == 0 {
		return nil, nil
	}
	return s.resolver.Resolve(ctx, ids)
}

// Subscribe returns a channel that receives a value after every selection
// change. Notifications coalesce: a slow reader sees at most one pending value.
// The channel is closed once ctx is done.
func (s *Selection) Subscribe(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}
