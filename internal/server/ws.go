package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/frondster/frondster/internal/game"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// joinTimeout is how long a new connection has to send its join message.
const joinTimeout = 10 * time.Second

// HandleWS serves a websocket connection: the client joins a game and then
// selects cards, clears its selection or asks for hints.
func (s *ServerState) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		klog.Errorf("HandleWS: accept failed: %v", err)
		return
	}
	defer conn.CloseNow()
	ctx := r.Context()
	c := &client{id: uuid.NewString(), conn: conn}

	gameID, err := s.readJoin(ctx, c)
	if err != nil {
		klog.Warningf("HandleWS: client %s failed to join: %v", c.id, err)
		s.sendError(c, err.Error())
		return
	}
	entry, err := s.join(gameID, c)
	if err != nil {
		klog.Errorf("HandleWS: client %s failed to join game %s: %v", c.id, gameID, err)
		s.sendError(c, err.Error())
		return
	}
	defer s.leave(entry, c)
	klog.Infof("HandleWS: client %s joined game %s", c.id, gameID)

	if err := s.send(c, game.MsgTypePing, game.PingMessage{ServerTime: s.clock.Now().UnixNano()}); err != nil {
		klog.Warningf("HandleWS: %v", err)
		return
	}
	entry.mu.Lock()
	err = s.send(c, game.MsgTypeState, game.StateMessage{Game: entry.game.Snapshot()})
	entry.mu.Unlock()
	if err != nil {
		klog.Warningf("HandleWS: %v", err)
		return
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
				klog.V(1).Infof("HandleWS: client %s left game %s", c.id, gameID)
			} else {
				klog.Warningf("HandleWS: client %s read error: %v", c.id, err)
			}
			return
		}
		// A malformed frame is reported back, the connection stays open.
		var msg game.WsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			klog.Warningf("HandleWS: client %s sent an undecodable message: %v", c.id, err)
			s.sendError(c, "invalid message: "+err.Error())
			continue
		}
		s.handleMessage(entry, c, msg)
	}
}

// readJoin waits for the first message, which must be a join.
func (s *ServerState) readJoin(ctx context.Context, c *client) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, joinTimeout)
	defer cancel()
	var msg game.WsMessage
	if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
		return "", err
	}
	if msg.Type != game.MsgTypeJoin {
		return "", errors.New("expected a join message, got " + string(msg.Type))
	}
	p, err := msg.Parse()
	if err != nil {
		return "", err
	}
	join := p.(*game.JoinMessage)
	if join.GameID == "" {
		return "", errors.New("no game id provided")
	}
	return join.GameID, nil
}

func (s *ServerState) handleMessage(entry *gameEntry, c *client, msg game.WsMessage) {
	p, err := msg.Parse()
	if err != nil {
		klog.Warningf("handleMessage: client %s sent an invalid %s message: %v", c.id, msg.Type, err)
		s.sendError(c, err.Error())
		return
	}
	klog.V(2).Infof("handleMessage: client %s: %s", c.id, msg.Type)

	switch m := p.(type) {
	case *game.SelectMessage:
		entry.mu.Lock()
		defer entry.mu.Unlock()
		entry.lastActive = s.clock.Now()
		outcome, err := entry.game.Select(m.Card)
		if err != nil {
			s.sendError(c, err.Error())
			return
		}
		state := entry.game.Snapshot()
		if outcome == game.OutcomeSetFound || outcome == game.OutcomeNotASet {
			klog.V(1).Infof("Game %s: %s, score %d", state.ID, outcome, state.Score)
		}
		if state.Finished() {
			klog.Infof("Game %s finished: %s with score %d", state.ID, state.Status, state.Score)
		}
		s.broadcast(entry, game.MsgTypeResult, game.ResultMessage{Outcome: outcome, Card: m.Card, Score: state.Score})
		s.broadcast(entry, game.MsgTypeState, game.StateMessage{Game: state})

	case *game.ClearMessage:
		entry.mu.Lock()
		defer entry.mu.Unlock()
		entry.lastActive = s.clock.Now()
		entry.game.ClearSelection()
		s.broadcast(entry, game.MsgTypeState, game.StateMessage{Game: entry.game.Snapshot()})

	case *game.HintMessage:
		entry.mu.Lock()
		set, found := entry.game.Hint()
		entry.mu.Unlock()
		var hint game.HintMessage
		if found {
			hint.Cards = set[:]
		}
		if err := s.send(c, game.MsgTypeHint, hint); err != nil {
			klog.Warningf("handleMessage: %v", err)
		}

	case *game.PongMessage:
		rtt := s.clock.Now().Sub(time.Unix(0, m.ServerTime))
		klog.V(1).Infof("handleMessage: client %s round trip %s", c.id, rtt)

	default:
		s.sendError(c, "unexpected message type "+string(msg.Type))
	}
}
