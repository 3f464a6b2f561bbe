package figma

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kataras/figma-inspector/pkg/scene"
)

// LocalDocument is a scene graph loaded from a JSON export of plugin nodes.
// Nodes are indexed by their "id" attribute.
type LocalDocument struct {
	Root  RawNode
	index map[string]RawNode
}

var _ scene.Resolver = (*LocalDocument)(nil)

// LoadDocument reads and parses a scene JSON file, see ParseDocument.
func LoadDocument(path string) (*LocalDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument parses a scene graph. The input is either a bare node object or a
// file envelope with the node tree under "document", as the REST file endpoint serves it.
func ParseDocument(data []byte) (*LocalDocument, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if doc, ok := root["document"].(map[string]any); ok {
		root = doc
	}

	d := &LocalDocument{
		Root:  RawNode(root),
		index: make(map[string]RawNode),
	}
	d.indexNode(d.Root)
	return d, nil
}

func (d *LocalDocument) indexNode(n RawNode) {
	if id := n.ID(); id != "" {
		if _, exists := d.index[id]; !exists {
			d.index[id] = n
		}
	}
	children, _ := n.Children()
	for _, child := range children {
		if raw, ok := child.(RawNode); ok {
			d.indexNode(raw)
		}
	}
}

// Len returns the number of addressable nodes.
func (d *LocalDocument) Len() int {
	return len(d.index)
}

// Resolve returns the nodes for ids, in order.
func (d *LocalDocument) Resolve(ctx context.Context, ids []string) ([]scene.Node, error) {
	nodes := make([]scene.Node, 0, len(ids))
	for _, id := range ids {
		n, ok := d.index[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", scene.ErrNodeNotFound, id)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// RemoteDocument resolves nodes of a Figma file through the REST API.
// Fetched node subtrees are kept in an LRU cache keyed by node ID; call Invalidate
// when the file is known to have changed.
type RemoteDocument struct {
	client  *Client
	fileKey string
	cache   *lru.Cache[string, *Node]

	mu   sync.Mutex
	name string
}

var (
	_ scene.Resolver    = (*RemoteDocument)(nil)
	_ scene.Invalidator = (*RemoteDocument)(nil)
)

// NewRemoteDocument returns a resolver for fileKey caching up to cacheSize node subtrees.
func NewRemoteDocument(client *Client, fileKey string, cacheSize int) (*RemoteDocument, error) {
	if cacheSize <= 0 {
		cacheSize = 128
	}
	cache, err := lru.New[string, *Node](cacheSize)
	if err != nil {
		return nil, err
	}
	return &RemoteDocument{
		client:  client,
		fileKey: fileKey,
		cache:   cache,
	}, nil
}

// Resolve returns the nodes for ids, in order, fetching only the ones not cached.
func (d *RemoteDocument) Resolve(ctx context.Context, ids []string) ([]scene.Node, error) {
	var missing []string
	for _, id := range ids {
		if !d.cache.Contains(id) {
			missing = append(missing, id)
		}
	}

	fetched := make(map[string]*Node, len(missing))
	if len(missing) > 0 {
		resp, err := d.client.GetFileNodes(ctx, d.fileKey, deduplicateNodeIDs(missing))
		if err != nil {
			return nil, fmt.Errorf("fetch nodes: %w", err)
		}
		d.mu.Lock()
		d.name = resp.Name
		d.mu.Unlock()
		for id, data := range resp.Nodes {
			if data == nil {
				continue
			}
			n := &data.Document
			fetched[id] = n
			d.cache.Add(id, n)
		}
	}

	nodes := make([]scene.Node, 0, len(ids))
	for _, id := range ids {
		n, ok := fetched[id]
		if !ok {
			n, ok = d.cache.Get(id)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", scene.ErrNodeNotFound, id)
		}
		nodes = append(nodes, n.Scene())
	}
	return nodes, nil
}

// Name returns the file name reported by the last fetch, "" before any.
func (d *RemoteDocument) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

// Invalidate drops every cached node. A Selection calls it on every change.
func (d *RemoteDocument) Invalidate() {
	d.cache.Purge()
}
