package preview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"markwright/internal/contextutil"
)

const shutdownTimeout = 5 * time.Second

// Server serves the rendered document over HTTP and pushes reload events to
// connected browsers.
type Server struct {
	addr     string
	filePath string

	mu      sync.Mutex
	clients map[chan struct{}]struct{}
}

// NewServer creates a preview server for the rendered file at filePath.
func NewServer(addr, filePath string) *Server {
	return &Server{
		addr:     addr,
		filePath: filePath,
		clients:  make(map[chan struct{}]struct{}),
	}
}

// Notify tells connected browsers to reload. Clients with a reload already
// pending are skipped rather than blocked on.
func (s *Server) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// ClientCount returns the number of connected reload listeners.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) addClient() chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Server) removeClient(ch chan struct{}) {
	s.mu.Lock()
	delete(s.clients, ch)
	s.mu.Unlock()
}

// Router creates the HTTP router: the rendered page at / and the reload
// event stream at /events.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/events", s.handleEvents)

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		http.Error(w, "Rendered output not found. Save the source file to build it.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleEvents streams server-sent events. The page's reload script listens
// with EventSource.onmessage, so events are sent unnamed.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Register before the preamble so a client that has read it never
	// misses a broadcast
	ch := s.addClient()
	defer s.removeClient(ch)

	// Comment line so the client sees the stream open without reloading
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			fmt.Fprint(w, "data: reload\n\n")
			flusher.Flush()
		}
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully. Open event
// streams are closed by the shutdown.
func (s *Server) Run(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		// Request contexts inherit ctx so open event streams unblock when
		// the app shuts down; Shutdown would otherwise wait on them forever.
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.InfoContext(ctx, "preview server listening", "addr", s.addr, "file", s.filePath)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down preview server: %w", err)
		}
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("preview server failed: %w", err)
		}
		return nil
	}
}
