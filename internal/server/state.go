package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/frondster/frondster/internal/config"
	"github.com/frondster/frondster/internal/game"
	"k8s.io/klog/v2"
)

// ErrUnknownGame is returned when looking up a game that is not being played.
var ErrUnknownGame = errors.New("unknown game")

// ServerState holds the games being played, keyed by game id.
type ServerState struct {
	// Address the server is listening on, set once it started.
	Address string

	mu    sync.RWMutex
	games map[string]*gameEntry

	cfg   config.Config
	clock quartz.Clock
}

// gameEntry is a game plus the clients connected to it.
// Lock ordering: ServerState.mu before gameEntry.mu.
type gameEntry struct {
	mu         sync.Mutex
	game       *game.Game
	clients    map[string]*client
	lastActive time.Time
}

// client is one websocket connection watching a game.
type client struct {
	id   string
	conn *websocket.Conn
}

// NewServerState creates an empty server state. A nil clock uses the real clock.
func NewServerState(cfg config.Config, clock quartz.Clock) *ServerState {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &ServerState{
		games: make(map[string]*gameEntry),
		cfg:   cfg,
		clock: clock,
	}
}

// acquire returns the game with the given id, creating it if needed.
// It must be called with s.mu held.
func (s *ServerState) acquire(gameID string) (*gameEntry, error) {
	if entry, ok := s.games[gameID]; ok {
		return entry, nil
	}
	g, err := game.NewGame(gameID)
	if err != nil {
		return nil, err
	}
	g.Started = s.clock.Now()
	entry := &gameEntry{
		game:       g,
		clients:    make(map[string]*client),
		lastActive: s.clock.Now(),
	}
	s.games[gameID] = entry
	klog.Infof("Created game %s", gameID)
	return entry, nil
}

// join attaches c to the game, creating the game if needed.
func (s *ServerState) join(gameID string, c *client) (*gameEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.acquire(gameID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	entry.clients[c.id] = c
	entry.lastActive = s.clock.Now()
	entry.mu.Unlock()
	return entry, nil
}

// leave detaches c from the game. The game stays around until it is swept.
func (s *ServerState) leave(entry *gameEntry, c *client) {
	entry.mu.Lock()
	defer entry.mu.Unlock()
	delete(entry.clients, c.id)
	entry.lastActive = s.clock.Now()
}

// Snapshot returns the state of a game being played.
func (s *ServerState) Snapshot(gameID string) (game.State, error) {
	s.mu.RLock()
	entry, ok := s.games[gameID]
	s.mu.RUnlock()
	if !ok {
		return game.State{}, fmt.Errorf("%w: %q", ErrUnknownGame, gameID)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.game.Snapshot(), nil
}

// Sweep drops games that have no clients and were idle for longer than the
// configured idle timeout. It returns the ids of the dropped games.
func (s *ServerState) Sweep() []string {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	var evicted []string
	for id, entry := range s.games {
		entry.mu.Lock()
		idle := len(entry.clients) == 0 && now.Sub(entry.lastActive) >= s.cfg.IdleTimeout.Duration
		entry.mu.Unlock()
		if idle {
			delete(s.games, id)
			evicted = append(evicted, id)
		}
	}
	if len(evicted) > 0 {
		klog.Infof("Sweep: dropped %d idle games, %d left", len(evicted), len(s.games))
	}
	return evicted
}

// runJanitor sweeps idle games periodically until ctx is done.
func (s *ServerState) runJanitor(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.cfg.SweepInterval.Duration, "janitor")
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// send writes one message to a client, bounded by the configured write timeout.
func (s *ServerState) send(c *client, msgType game.MessageType, payload any) error {
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout.Duration)
	defer cancel()
	if err := wsjson.Write(ctx, c.conn, msg); err != nil {
		return fmt.Errorf("failed to send %s to client %s: %w", msgType, c.id, err)
	}
	return nil
}

// broadcast sends a message to every client of the game.
// It must be called with entry.mu held.
func (s *ServerState) broadcast(entry *gameEntry, msgType game.MessageType, payload any) {
	for _, c := range entry.clients {
		if err := s.send(c, msgType, payload); err != nil {
			klog.Warningf("broadcast: %v", err)
		}
	}
}

func (s *ServerState) sendError(c *client, message string) {
	if err := s.send(c, game.MsgTypeError, game.ErrorMessage{Message: message}); err != nil {
		klog.Warningf("sendError: %v", err)
	}
}
