package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"
	"strings"
	"time"
)

var (
	// ErrCardNotOnBoard is returned when selecting a card that is not on the board.
	ErrCardNotOnBoard = errors.New("card is not on the board")

	// ErrGameOver is returned when acting on a finished game.
	ErrGameOver = errors.New("game is over")
)

// Status of a game.
type Status string

const (
	StatusPlaying    Status = "playing"
	StatusNoMoreSets Status = "no_more_sets" // Cards remain, but no Set can be formed from them.
	StatusDeckEmpty  Status = "deck_empty"   // Every card was matched.
)

// Outcome of selecting a card.
type Outcome string

const (
	OutcomeSelected   Outcome = "selected"
	OutcomeDeselected Outcome = "deselected"
	OutcomeSetFound   Outcome = "set_found"
	OutcomeNotASet    Outcome = "not_a_set"
)

// Game holds the state of one puzzle: the board, the undealt stock, the
// current selection and the score.
//
// The board changes when matched cards are replaced from the stock, and in one
// other case: when the board holds no Set but board and stock together do, it
// is redealt (see settle). This can happen right at NewGame.
//
// Cards are tracked by value: a card is on the board, in the stock, or already
// matched, never in two places. Game is not safe for concurrent use.
type Game struct {
	ID      string
	Started time.Time

	rng      *rand.Rand
	board    [BoardSize]*Card
	stock    []Card
	selected []Card
	score    int
	redeals  int
	status   Status
}

// NewGame shuffles a fresh deck with a source seeded from id and deals the board.
// The same id always produces the same deal.
func NewGame(id string) (*Game, error) {
	deck, err := GenerateDeck()
	if err != nil {
		return nil, fmt.Errorf("failed to create game %q: %w", id, err)
	}
	g := &Game{
		ID:      id,
		Started: time.Now(),
		rng:     NewRand(SeedFromID(id)),
	}
	g.stock = Shuffle(deck, g.rng)
	for i := range g.board {
		g.board[i] = g.draw()
	}
	g.settle()
	return g, nil
}

// draw takes the next card from the stock, or nil if the stock is exhausted.
func (g *Game) draw() *Card {
	if len(g.stock) == 0 {
		return nil
	}
	card := g.stock[0]
	g.stock = g.stock[1:]
	return &card
}

// Select toggles the card with the given key in the selection. When the third
// card is selected the selection is evaluated and cleared.
func (g *Game) Select(key string) (Outcome, error) {
	card, err := ParseCard(key)
	if err != nil {
		return "", err
	}
	if g.Finished() {
		return "", ErrGameOver
	}
	if g.position(card) < 0 {
		return "", fmt.Errorf("%w: %s", ErrCardNotOnBoard, key)
	}

	if i := slices.Index(g.selected, card); i >= 0 {
		g.selected = slices.Delete(g.selected, i, i+1)
		return OutcomeDeselected, nil
	}
	g.selected = append(g.selected, card)
	if len(g.selected) < SetSize {
		return OutcomeSelected, nil
	}

	candidates := g.selected
	g.selected = nil
	if !IsSet(candidates...) {
		return OutcomeNotASet, nil
	}
	g.score++
	g.replace(candidates)
	return OutcomeSetFound, nil
}

// ClearSelection drops the current selection.
func (g *Game) ClearSelection() {
	g.selected = nil
}

// Hint returns a Set present on the board.
func (g *Game) Hint() ([SetSize]Card, bool) {
	return FindSet(g.BoardCards())
}

// replace removes matched cards from the board and backfills their positions,
// in board order, from the stock.
func (g *Game) replace(matched []Card) {
	for _, card := range matched {
		if pos := g.position(card); pos >= 0 {
			g.board[pos] = nil
		}
	}
	for i := range g.board {
		if g.board[i] == nil {
			g.board[i] = g.draw()
		}
	}
	g.settle()
}

// settle makes sure the board has a Set, redealing if needed, or otherwise
// marks the game as finished.
func (g *Game) settle() {
	onBoard := g.BoardCards()
	if _, ok := FindSet(onBoard); ok {
		g.status = StatusPlaying
		return
	}
	remaining := append(onBoard, g.stock...)
	if len(remaining) == 0 {
		g.status = StatusDeckEmpty
		return
	}
	set, ok := FindSet(remaining)
	if !ok {
		g.status = StatusNoMoreSets
		return
	}
	g.redeal(remaining, set)
	g.status = StatusPlaying
}

// redeal returns the board to the stock, reshuffles it and deals a new board
// that is guaranteed to contain set.
func (g *Game) redeal(remaining []Card, set [SetSize]Card) {
	pool := make([]Card, 0, len(remaining))
	pool = append(pool, set[:]...)
	for _, card := range Shuffle(remaining, g.rng) {
		if !slices.Contains(set[:], card) {
			pool = append(pool, card)
		}
	}
	n := min(BoardSize, len(pool))
	dealt := Shuffle(pool[:n], g.rng)
	g.board = [BoardSize]*Card{}
	for i := range dealt {
		g.board[i] = &dealt[i]
	}
	g.stock = slices.Clone(pool[n:])
	g.selected = nil
	g.redeals++
}

// position returns the board position holding card, or -1.
func (g *Game) position(card Card) int {
	for i, c := range g.board {
		if c != nil && *c == card {
			return i
		}
	}
	return -1
}

// BoardCards returns the cards on the board, skipping empty positions.
func (g *Game) BoardCards() []Card {
	cards := make([]Card, 0, BoardSize)
	for _, c := range g.board {
		if c != nil {
			cards = append(cards, *c)
		}
	}
	return cards
}

// Selected returns a copy of the current selection, in selection order.
func (g *Game) Selected() []Card { return slices.Clone(g.selected) }

// Score is the number of Sets found.
func (g *Game) Score() int { return g.score }

// StockSize is the number of undealt cards.
func (g *Game) StockSize() int { return len(g.stock) }

// Status of the game.
func (g *Game) Status() Status { return g.status }

// Finished reports whether no more Sets can be found.
func (g *Game) Finished() bool { return g.status != StatusPlaying }

// State is the serializable view of a game sent to clients.
type State struct {
	ID       string    `json:"id"`
	Board    []*Card   `json:"board"` // Empty positions are null.
	Selected []Card    `json:"selected"`
	Score    int       `json:"score"`
	Stock    int       `json:"stock"`
	Redeals  int       `json:"redeals"`
	Status   Status    `json:"status"`
	Started  time.Time `json:"started"`
}

// Snapshot returns a copy of the game state.
func (g *Game) Snapshot() State {
	board := make([]*Card, len(g.board))
	for i, c := range g.board {
		if c != nil {
			card := *c
			board[i] = &card
		}
	}
	return State{
		ID:       g.ID,
		Board:    board,
		Selected: append([]Card{}, g.selected...),
		Score:    g.score,
		Stock:    len(g.stock),
		Redeals:  g.redeals,
		Status:   g.status,
		Started:  g.Started,
	}
}

// Finished reports whether the game in this state is over.
func (s *State) Finished() bool { return s.Status != StatusPlaying }

// IsSelected reports whether card is part of the selection.
func (s *State) IsSelected(card Card) bool { return slices.Contains(s.Selected, card) }

func (s *State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Game %s: status=%s, score=%d, stock=%d, redeals=%d, selected=%v, board: ", s.ID, s.Status, s.Score, s.Stock, s.Redeals, s.Selected)
	for _, c := range s.Board {
		if c == nil {
			sb.WriteString("_, ")
			continue
		}
		fmt.Fprintf(&sb, "%s, ", c)
	}
	return sb.String()
}
