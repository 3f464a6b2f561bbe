package figmainspector

import (
	"context"
	"fmt"
	"strings"

	"github.com/kataras/figma-inspector/pkg/extractor"
	"github.com/kataras/figma-inspector/pkg/figma"
	"github.com/kataras/figma-inspector/pkg/formatter"
	"github.com/kataras/figma-inspector/pkg/logger"
	"github.com/kataras/figma-inspector/pkg/scene"
	"github.com/kataras/figma-inspector/pkg/tokens"
)

// Version is the release of the module.
const Version = "0.3.0"

// Logger receives progress messages. A nil Logger means silent operation.
type Logger = logger.Logger

// Options configures the extraction. Exactly one of SceneFile and FileURL is used;
// SceneFile wins when both are set.
type Options struct {
	SceneFile   string   // JSON export of plugin nodes
	AccessToken string   // Figma personal access token, FileURL only
	FileURL     string   // Figma file URL
	NodeIDs     []string // empty = node IDs from the URL, or the document root
	Expand      bool     // inline every descendant instead of child counts
	MaxDepth    int      // 0 = unbounded
	CacheSize   int      // REST node cache entries, FileURL only
	APIBaseURL  string   // "" = the public Figma REST API
	Logger      Logger   // nil = no logging
}

// Result contains the extraction output.
type Result struct {
	Title string
	// Data is nil, a *extractor.ExtractedNode or a []*extractor.ExtractedNode.
	Data     any
	JSON     []byte // minified JSON of Data
	Pretty   string
	Minified string
	Markdown string
	Tree     string
	Tokens   int // estimate for Pretty
}

// Nodes returns Data as a list of trees.
func (r *Result) Nodes() []*extractor.ExtractedNode {
	return formatter.Trees(r.Data)
}

func (o *Options) log() Logger {
	return logger.Safe(o.Logger)
}

func (o *Options) client() *figma.Client {
	if o.APIBaseURL != "" {
		return figma.NewClient(o.AccessToken, figma.WithBaseURL(o.APIBaseURL))
	}
	return figma.NewClient(o.AccessToken)
}

// Run executes the extraction pipeline once and returns the rendered result.
func Run(ctx context.Context, opts Options) (*Result, error) {
	nodes, title, err := resolveNodes(ctx, &opts)
	if err != nil {
		return nil, err
	}

	opts.log().Infof("Extracting %d node(s) (expand=%t)...", len(nodes), opts.Expand)
	data, err := extractor.Extractor{MaxDepth: opts.MaxDepth}.ExtractSelection(nodes, opts.Expand)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	raw, err := extractor.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	pretty, err := formatter.Pretty(raw)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	minified, err := formatter.Minify(raw)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}

	trees := formatter.Trees(data)
	opts.log().Infof("Generating markdown documentation...")

	return &Result{
		Title:    title,
		Data:     data,
		JSON:     raw,
		Pretty:   pretty,
		Minified: minified,
		Markdown: formatter.ToMarkdown(trees, title),
		Tree:     formatter.ToTree(trees),
		Tokens:   tokens.Estimate(pretty),
	}, nil
}

// resolveNodes loads the scene graph named by opts and returns the nodes to extract.
func resolveNodes(ctx context.Context, opts *Options) ([]scene.Node, string, error) {
	if opts.SceneFile != "" {
		opts.log().Infof("Loading scene file %s...", opts.SceneFile)
		doc, err := figma.LoadDocument(opts.SceneFile)
		if err != nil {
			return nil, "", err
		}
		opts.log().Infof("Indexed %d node(s)", doc.Len())

		if len(opts.NodeIDs) == 0 {
			return []scene.Node{doc.Root}, doc.Root.Name(), nil
		}
		nodes, err := doc.Resolve(ctx, opts.NodeIDs)
		if err != nil {
			return nil, "", err
		}
		return nodes, doc.Root.Name(), nil
	}

	if opts.FileURL == "" {
		return nil, "", fmt.Errorf("a scene file or a Figma file URL is required")
	}

	opts.log().Infof("Extracting file key from URL...")
	fileKey, err := figma.ExtractFileKey(opts.FileURL)
	if err != nil {
		return nil, "", fmt.Errorf("extract file key: %w", err)
	}
	opts.log().Infof("File key: %s", fileKey)

	ids := opts.NodeIDs
	if len(ids) == 0 {
		if ids, err = figma.ExtractNodeIDs(opts.FileURL); err != nil {
			return nil, "", fmt.Errorf("extract node IDs from URL: %w", err)
		}
	}

	opts.log().Infof("Authenticating with Figma API...")
	client := opts.client()

	if len(ids) == 0 {
		opts.log().Infof("No node IDs found, fetching entire file...")
		fileResp, err := client.GetFile(ctx, fileKey)
		if err != nil {
			return nil, "", fmt.Errorf("fetch file: %w", err)
		}
		opts.log().Infof("File: %s", fileResp.Name)
		return []scene.Node{fileResp.Document.Scene()}, fileResp.Name, nil
	}

	opts.log().Infof("Fetching %d node(s) from Figma...", len(ids))
	doc, err := figma.NewRemoteDocument(client, fileKey, opts.CacheSize)
	if err != nil {
		return nil, "", err
	}
	nodes, err := doc.Resolve(ctx, ids)
	if err != nil {
		return nil, "", err
	}
	return nodes, doc.Name(), nil
}

// OpenSelection builds the long-lived selection a host publishes. For a scene
// file the initial selection is NodeIDs, or the document root when it has an ID.
// For a Figma URL it is NodeIDs, or the IDs found in the URL.
func OpenSelection(opts Options) (*scene.Selection, error) {
	if opts.SceneFile != "" {
		doc, err := figma.LoadDocument(opts.SceneFile)
		if err != nil {
			return nil, err
		}
		ids := opts.NodeIDs
		if len(ids) == 0 && doc.Root.ID() != "" {
			ids = []string{doc.Root.ID()}
		}
		opts.log().Infof("Loaded %s: %d node(s), %d selected", opts.SceneFile, doc.Len(), len(ids))
		return scene.NewSelection(doc, ids...), nil
	}

	if opts.FileURL == "" {
		return nil, fmt.Errorf("a scene file or a Figma file URL is required")
	}
	fileKey, err := figma.ExtractFileKey(opts.FileURL)
	if err != nil {
		return nil, fmt.Errorf("extract file key: %w", err)
	}
	ids := opts.NodeIDs
	if len(ids) == 0 {
		if ids, err = figma.ExtractNodeIDs(opts.FileURL); err != nil {
			return nil, fmt.Errorf("extract node IDs from URL: %w", err)
		}
	}

	doc, err := figma.NewRemoteDocument(opts.client(), fileKey, opts.CacheSize)
	if err != nil {
		return nil, err
	}
	opts.log().Infof("Figma file %s: %d node(s) selected", fileKey, len(ids))
	return scene.NewSelection(doc, ids...), nil
}

// ParseNodeIDs parses a comma-separated string of node IDs and returns a slice.
func ParseNodeIDs(nodeIDsStr string) []string {
	parts := strings.Split(nodeIDsStr, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
