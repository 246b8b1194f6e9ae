package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"github.com/frondster/frondster/internal/config"
	"github.com/frondster/frondster/internal/frontend"
	"github.com/frondster/frondster/internal/game"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Run starts the server and blocks until the context is canceled.
// If started is not nil, the server state is sent to it once the server is listening.
func Run(ctx context.Context, cfg config.Config, started chan<- *ServerState) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Global client state and routes are needed for server-side prerendering.
	frontend.InitState()
	frontend.RegisterRoutes()

	serverState := NewServerState(cfg, quartz.NewReal())

	addr := cfg.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	serverState.Address = listener.Addr().String()

	g, gctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Handler:           serverState.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		// Websocket handlers stop reading when the server shuts down.
		BaseContext: func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		klog.Infof("Server started on %s", serverState.Address)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return serverState.runJanitor(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		// Graceful shutdown with 5 second timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		klog.Infof("Shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	if started != nil {
		started <- serverState
	}
	return g.Wait()
}

// Router returns the HTTP handler of the server.
func (s *ServerState) Router() http.Handler {
	// The web assets and the compiled webassembly
	// are served natively by the go-app framework
	h := &app.Handler{
		Name:        s.cfg.Name,
		ShortName:   s.cfg.Name,
		Title:       s.cfg.Name,
		Description: s.cfg.Description,
		Version:     game.Version,
		Styles: []string{
			"https://cdn.jsdelivr.net/npm/@picocss/pico@2/css/pico.min.css",
			"/web/css/main.css",
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ws", s.HandleWS)
	r.Get("/new", s.handleNewGame)
	r.Get("/api/games/{gameID}", s.handleGameState)

	// We want to serve /web for static files
	r.Handle("/web/*", http.StripPrefix("/web/", http.FileServer(http.Dir(s.cfg.WebDir))))
	r.Handle("/*", h)
	return r
}

// handleNewGame redirects to a game page with a fresh random game id.
func (s *ServerState) handleNewGame(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/game/"+game.NewGameID(), http.StatusSeeOther)
}

// handleGameState returns the JSON state of a game being played.
func (s *ServerState) handleGameState(w http.ResponseWriter, r *http.Request) {
	state, err := s.Snapshot(chi.URLParam(r, "gameID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		klog.Errorf("handleGameState: %v", err)
	}
}

// requestLogger logs every request through klog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		klog.V(1).Infof("web request method=%s path=%s status=%d bytes=%d duration=%s remote=%s",
			r.Method,
			r.URL.Path,
			status,
			ww.BytesWritten(),
			time.Since(start).Round(time.Microsecond),
			r.RemoteAddr,
		)
	})
}
