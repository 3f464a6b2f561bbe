// Package figmainspector extracts a subset of a Figma document's node tree into
// a plain, serializable JSON tree and keeps a display surface in sync with the
// current selection.
//
// The CLI lives in cmd/figma-inspector; this root package exposes the one-shot
// extraction pipeline as a Go API. The long-running pieces live in sub-packages:
// pkg/host serves the selection over a websocket, pkg/surface is the display
// client, pkg/protocol defines the messages they exchange.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmainspector:
//
//	import "github.com/kataras/figma-inspector" // package figmainspector
//
// # Quick start
//
//	result, err := figmainspector.Run(ctx, figmainspector.Options{
//	    AccessToken: os.Getenv("FIGMA_TOKEN"),
//	    FileURL:     "https://www.figma.com/design/ABC123/My-Design?node-id=1-2",
//	    Expand:      true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Pretty, result.Tokens)
//
// A JSON export of plugin nodes can be used instead of the REST API by setting
// [Options.SceneFile].
//
// # Extracted tree
//
// Each node becomes a record with its name and type plus whichever of size,
// auto-layout, fills, strokes and stroke metadata the node actually has.
// Containers carry either their extracted children (expand) or a childrenCount.
// Solid paints carry their color both as channel values and as a hex string.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
//	type myLogger struct{}
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
package figmainspector
