package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frondster/frondster/internal/config"
	"github.com/frondster/frondster/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer runs a server on an automatic port until the test ends.
func startServer(t *testing.T) *ServerState {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan *ServerState, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, config.Default(), started)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Server shut down with error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Errorf("Server took too long to shut down")
		}
	})

	select {
	case s := <-started:
		return s
	case err := <-errCh:
		t.Fatalf("Server failed to start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("Server took too long to start")
	}
	return nil
}

func TestServerRun(t *testing.T) {
	s := startServer(t)

	resp, err := http.Get("http://" + s.Address + "/")
	if err != nil {
		t.Fatalf("Failed to connect to server: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status OK, got %v", resp.Status)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	// The go-app framework generates standard HTML, with our name as the title.
	body := string(bodyBytes)
	if !strings.Contains(body, "Frondster") {
		t.Errorf("Expected body to contain 'Frondster', got body: %s", body)
	}

	resp, err = http.Get("http://" + s.Address + "/healthz")
	if err != nil {
		t.Fatalf("Failed to connect to server: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status OK from /healthz, got %v", resp.Status)
	}
}

func TestHandleNewGame(t *testing.T) {
	s := NewServerState(config.Default(), nil)
	router := s.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/new", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/game/"), "unexpected redirect location %q", location)
	assert.NotEqual(t, "/game/", location)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/new", nil))
	assert.NotEqual(t, location, rec.Header().Get("Location"), "every new game gets its own id")
}

func TestHandleGameState(t *testing.T) {
	s := NewServerState(config.Default(), nil)
	router := s.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/games/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, err := s.Snapshot("abc")
	assert.ErrorIs(t, err, ErrUnknownGame)

	s.mu.Lock()
	_, err = s.acquire("abc")
	s.mu.Unlock()
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/games/abc", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var state game.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "abc", state.ID)
	assert.Len(t, state.Board, game.BoardSize)
	assert.Equal(t, game.StatusPlaying, state.Status)
	assert.Equal(t, game.DeckSize-game.BoardSize, state.Stock)
}
