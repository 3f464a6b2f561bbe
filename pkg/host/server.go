package host

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// SelectionRequest is the body of POST /selection and the reply of GET /selection.
type SelectionRequest struct {
	IDs []string `json:"ids"`
}

// Handler exposes the host over HTTP:
//
//	GET  /ws         websocket endpoint for display surfaces
//	GET  /selection  current selection as {"ids":[...]}
//	POST /selection  replace the selection, as the host application does on selection events
func (h *Host) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r)
		if err != nil {
			h.log.Warnf("%v", err)
			return
		}
		defer conn.Close()

		h.log.Infof("Surface connected from %s", r.RemoteAddr)
		// Shutdown leaves hijacked connections alone; sessions end with ctx.
		if err := h.Serve(ctx, conn); err != nil {
			h.log.Warnf("Surface session ended: %v", err)
			return
		}
		h.log.Infof("Surface %s disconnected", r.RemoteAddr)
	})

	mux.HandleFunc("GET /selection", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SelectionRequest{IDs: h.selection.IDs()})
	})

	mux.HandleFunc("POST /selection", func(w http.ResponseWriter, r *http.Request) {
		var req SelectionRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			http.Error(w, "invalid selection body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.IDs == nil {
			req.IDs = []string{}
		}
		h.selection.Set(req.IDs)
		h.log.Infof("Selection changed: %d node(s)", len(req.IDs))
		writeJSON(w, http.StatusOK, req)
	})

	return mux
}

// ListenAndServe serves Handler on addr until ctx is done.
func (h *Host) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
