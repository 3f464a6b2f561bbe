package host

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/figma-inspector/pkg/protocol"
	"github.com/kataras/figma-inspector/pkg/transport"
)

func newTestServer(t *testing.T) (*Host, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := New(newTestSelection(t, "1:2"), Options{})
	srv := httptest.NewServer(h.Handler(ctx))
	t.Cleanup(srv.Close)
	return h, srv
}

func TestSelectionEndpoints(t *testing.T) {
	h, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/selection")
	require.NoError(t, err)
	var got SelectionRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Equal(t, []string{"1:2"}, got.IDs)

	resp, err = http.Post(srv.URL+"/selection", "application/json", strings.NewReader(`{"ids":["1:3","1:4"]}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"1:3", "1:4"}, h.Selection().IDs())

	resp, err = http.Post(srv.URL+"/selection", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	var cleared SelectionRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cleared))
	resp.Body.Close()
	assert.NotNil(t, cleared.IDs)
	assert.Empty(t, cleared.IDs)
	assert.Empty(t, h.Selection().IDs())

	resp, err = http.Post(srv.URL+"/selection", "application/json", strings.NewReader(`{"ids":`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/selection", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWebsocketSession(t *testing.T) {
	h, srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := transport.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	require.NoError(t, err)
	defer conn.Close()

	send(t, conn, protocol.Init{})
	assert.Equal(t, "Title", receiveTree(t, conn).Name)

	h.Selection().Set([]string{"1:1"})
	tree := receiveTree(t, conn)
	assert.Equal(t, "Card", tree.Name)
	require.NotNil(t, tree.ChildrenCount)
	assert.Equal(t, 2, *tree.ChildrenCount)
}

func TestListenAndServeStopsWithContext(t *testing.T) {
	h := New(newTestSelection(t), Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- h.ListenAndServe(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestWebsocketRejectsForeignOrigin(t *testing.T) {
	_, srv := newTestServer(t)

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	h := New(newTestSelection(t, "1:2"), Options{AllowedOrigins: []string{"https://www.figma.com"}})
	allowed := httptest.NewServer(h.Handler(context.Background()))
	defer allowed.Close()

	header.Set("Origin", "https://www.figma.com")
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(allowed.URL, "http")+"/ws", header)
	require.NoError(t, err)
	conn.Close()
}
