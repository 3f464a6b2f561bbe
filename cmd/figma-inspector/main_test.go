package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/figma-inspector/pkg/protocol"
	"github.com/kataras/figma-inspector/pkg/surface"
	"github.com/kataras/figma-inspector/pkg/transport"
)

const scene = `{
	"document": {
		"id": "0:1", "name": "Page", "type": "PAGE",
		"children": [
			{"id": "1:1", "name": "Card", "type": "FRAME", "width": 320, "height": 200,
			 "fills": [{"type": "SOLID", "color": {"r": 1, "g": 0, "b": 0}}],
			 "children": [{"id": "1:2", "name": "Title", "type": "TEXT"}]}
		]
	}
}`

// buildBinary compiles the figma-inspector binary into a temporary directory
// and returns its absolute path.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	bin := filepath.Join(t.TempDir(), "figma-inspector")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", bin, "./cmd/figma-inspector")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build binary:\n%s", out)
	return bin
}

func TestExtractCommand(t *testing.T) {
	bin := buildBinary(t)
	dir := t.TempDir()

	scenePath := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(scenePath, []byte(scene), 0644))
	outputFile := filepath.Join(dir, "selection.json")

	cmd := exec.Command(bin, "extract",
		"--scene", scenePath,
		"--node-ids", "1:1",
		"--format", "minified",
		"--output", outputFile,
	)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	out, err := cmd.CombinedOutput()
	t.Logf("CLI output:\n%s", out)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Estimated tokens")

	got, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"Card","type":"FRAME","width":320,"height":200,"fills":[{"type":"SOLID","opacity":1,"color":{"r":1,"g":0,"b":0,"a":1,"hex":"#ff0000"}}],"children":[{"name":"Title","type":"TEXT"}]}`,
		string(got))
}

func TestExtractToStdout(t *testing.T) {
	bin := buildBinary(t)
	dir := t.TempDir()

	scenePath := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(scenePath, []byte(scene), 0644))

	cmd := exec.Command(bin, "extract", "--scene", scenePath, "--node-ids", "1:2", "--format", "minified")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	require.NoError(t, err, stderr.String())
	assert.Equal(t, `{"name":"Title","type":"TEXT"}`+"\n", string(out), "stdout carries only the payload")
	assert.Contains(t, stderr.String(), "Figma Inspector")
	assert.Contains(t, stderr.String(), "Estimated tokens")
}

func TestVersionCommand(t *testing.T) {
	bin := buildBinary(t)

	out, err := exec.Command(bin, "version").CombinedOutput()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "figma-inspector version "))
}

func TestRunSurfaceCommand(t *testing.T) {
	surfaceEnd, hostEnd := transport.Pipe()
	defer surfaceEnd.Close()

	clip := &surface.MemoryClipboard{}
	s := surface.New(surfaceEnd, surface.Options{Clipboard: clip})
	ctx := context.Background()

	read := func() protocol.Message {
		t.Helper()
		frame, err := hostEnd.Read(ctx)
		require.NoError(t, err)
		msg, err := protocol.Decode(frame)
		require.NoError(t, err)
		return msg
	}

	quit, err := runSurfaceCommand(ctx, s, []string{"expand", "off"})
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, protocol.ToggleExpand{ExpandContent: false}, read())

	_, err = runSurfaceCommand(ctx, s, []string{"expand", "maybe"})
	assert.Error(t, err)

	_, err = runSurfaceCommand(ctx, s, []string{"tab", "minified"})
	require.NoError(t, err)
	assert.Equal(t, surface.TabMinified, s.View().Tab)

	s.Handle([]byte(`{"type":"selectionChange","data":{"name":"Card","type":"FRAME"}}`))
	_, err = runSurfaceCommand(ctx, s, []string{"copy"})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Card","type":"FRAME"}`, clip.Text())
	assert.Equal(t, protocol.Notify{Message: surface.NoticeCopied}, read())

	_, err = runSurfaceCommand(ctx, s, []string{"dance"})
	assert.ErrorContains(t, err, "unknown command")

	quit, err = runSurfaceCommand(ctx, s, []string{"quit"})
	require.NoError(t, err)
	assert.True(t, quit)

	quit, err = runSurfaceCommand(ctx, s, nil)
	assert.NoError(t, err)
	assert.False(t, quit)
}
