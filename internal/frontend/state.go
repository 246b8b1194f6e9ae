package frontend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/frondster/frondster/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// GlobalClientState manages the connection, the theme and the game being played.
type GlobalClientState struct {
	Theme  Theme
	GameID string
	Game   *game.State
	Hint   []game.Card
	Error  string
	Conn   *websocket.Conn

	toastMu     sync.Mutex
	toasts      []Toast
	nextToastID int

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

func InitState() {
	if State == nil {
		klog.V(1).Infof("InitState: creating new state (was nil)")
		State = &GlobalClientState{
			Theme:     ThemeLight,
			Listeners: make(map[string]func()),
		}
	} else {
		klog.V(1).Infof("InitState: state already exists")
	}
}

func (s *GlobalClientState) Notify() {
	klog.V(1).Infof("GlobalClientState: Notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

// SelectedCount is the number of cards currently selected.
func (s *GlobalClientState) SelectedCount() int {
	if s.Game == nil {
		return 0
	}
	return len(s.Game.Selected)
}

// IsHinted reports whether card is part of the last hint received.
func (s *GlobalClientState) IsHinted(card game.Card) bool {
	for _, c := range s.Hint {
		if c == card {
			return true
		}
	}
	return false
}

// ConnectWS connects to the server and joins the game.
func (s *GlobalClientState) ConnectWS(gameID string) error {
	if s.Conn != nil {
		klog.Infof("ConnectWS: Closing existing connection")
		s.Conn.CloseNow()
		s.Conn = nil
	}
	s.GameID = gameID
	s.Game = nil
	s.Hint = nil
	s.Error = ""

	u := app.Window().URL()
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	wsURL := fmt.Sprintf("%s://%s/ws", scheme, u.Host)
	klog.Infof("ConnectWS: Connecting to %s (Game: %s)", wsURL, gameID)

	// We use a context that lasts for the duration of the connection setup.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		klog.Errorf("ConnectWS: Dial failed: %v", err)
		return fmt.Errorf("dial failed: %w", err)
	}
	s.Conn = conn

	joinMsg, err := game.NewWsMessage(game.MsgTypeJoin, game.JoinMessage{GameID: gameID})
	if err != nil {
		return fmt.Errorf("failed to create join message: %w", err)
	}
	if err := wsjson.Write(ctx, conn, joinMsg); err != nil {
		klog.Errorf("ConnectWS: Failed to send join: %v", err)
		return fmt.Errorf("failed to send join: %w", err)
	}

	klog.Infof("ConnectWS: Join message sent. Starting read loop.")
	go s.readLoop(conn)
	return nil
}

func (s *GlobalClientState) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	for {
		var msg game.WsMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			klog.Errorf("readLoop: WS read error: %v", err)
			s.connectionLost(conn)
			return
		}
		klog.V(1).Infof("readLoop: received message type: %s", msg.Type)
		s.handleMessage(msg)
	}
}

// connectionLost drops conn, if it is still the current connection, and
// reports it so the game page stops showing a board that no longer responds.
func (s *GlobalClientState) connectionLost(conn *websocket.Conn) {
	if s.Conn != conn {
		return
	}
	s.Conn = nil
	s.Error = "Connection to the server lost, reload the page to reconnect"
	s.Notify()
}

func (s *GlobalClientState) handleMessage(msg game.WsMessage) {
	p, err := msg.Parse()
	if err != nil {
		klog.Errorf("handleMessage: Failed to parse %s message: %v", msg.Type, err)
		return
	}

	switch m := p.(type) {
	case *game.StateMessage:
		klog.V(1).Infof("handleMessage: %s", &m.Game)
		s.Game = &m.Game
		s.Error = ""
		s.Notify()

	case *game.ResultMessage:
		switch m.Outcome {
		case game.OutcomeSetFound:
			s.Hint = nil
			s.PushToast("Set found!", ToastSuccess)
		case game.OutcomeNotASet:
			s.PushToast("Not a set", ToastError)
		}

	case *game.HintMessage:
		s.Hint = m.Cards
		if len(m.Cards) == 0 {
			s.PushToast("No set on the board", ToastError)
			return
		}
		s.Notify()

	case *game.ErrorMessage:
		klog.Errorf("handleMessage: server error: %s", m.Message)
		s.PushToast(m.Message, ToastError)

	case *game.PingMessage:
		s.send(game.MsgTypePong, game.PongMessage{
			ServerTime: m.ServerTime,
			ClientTime: time.Now().UnixNano(),
		})
	}
}

// send writes a message to the server, if connected.
func (s *GlobalClientState) send(msgType game.MessageType, payload any) {
	if s.Conn == nil {
		return
	}
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		klog.Errorf("send: Failed to create %s message: %v", msgType, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()
	if err := wsjson.Write(ctx, s.Conn, msg); err != nil {
		klog.Errorf("send: Failed to send %s message: %v", msgType, err)
	}
}

// SendSelect toggles a card in the selection.
func (s *GlobalClientState) SendSelect(card game.Card) {
	s.send(game.MsgTypeSelect, game.SelectMessage{Card: card.Key()})
}

// SendClear clears the selection.
func (s *GlobalClientState) SendClear() {
	s.send(game.MsgTypeClear, nil)
}

// SendHint asks the server for a Set on the board.
func (s *GlobalClientState) SendHint() {
	s.send(game.MsgTypeHint, nil)
}
