package frontend

import (
	"fmt"

	"github.com/frondster/frondster/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Game is the page of a running puzzle.
type Game struct {
	app.Compo
	GameID string
	Error  string

	onUpdate func()
}

func (g *Game) OnAppUpdate(ctx app.Context) {
	klog.Infof("Game component: App update available, not reloading not to interrupt the game...")
}

func (g *Game) OnMount(ctx app.Context) {
	klog.Infof("Game component: OnMount called")
	g.onUpdate = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
	State.Listeners["game"] = g.onUpdate
	State.LoadTheme(ctx)
}

func (g *Game) OnDismount() {
	klog.Infof("Game component: OnDismount called")
	delete(State.Listeners, "game")
}

func (g *Game) OnNav(ctx app.Context) {
	g.GameID = GameIDFromURL(app.Window().URL())
	klog.Infof("Game component: Navigated to game %q", g.GameID)
	if g.GameID == "" {
		g.Error = "No Game ID provided"
		klog.Errorf("Game component: Error: %s", g.Error)
		return
	}
	g.Error = ""

	if State.Conn == nil || State.GameID != g.GameID {
		if err := State.ConnectWS(g.GameID); err != nil {
			g.Error = fmt.Sprintf("Failed to connect to game: %v", err)
			klog.Errorf("Game component: Error connecting: %v", err)
		}
	}
}

func (g *Game) onCardClick(card game.Card) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		if State.Game == nil || State.Game.Finished() {
			return
		}
		State.SendSelect(card)
	}
}

func (g *Game) onReset(ctx app.Context, e app.Event) {
	ctx.Navigate("/game/" + game.NewGameID())
}

func (g *Game) onClearSelection(ctx app.Context, e app.Event) {
	State.SendClear()
}

func (g *Game) onHint(ctx app.Context, e app.Event) {
	State.SendHint()
}

func (g *Game) renderCard(index int, card *game.Card, state *game.State) app.UI {
	if card == nil {
		return app.Div().Class("set-card", "set-card-empty").DataSet("slot", index)
	}
	classes := []string{"set-card"}
	if state.IsSelected(*card) {
		classes = append(classes, "set-card-selected")
	}
	if State.IsHinted(*card) {
		classes = append(classes, "set-card-hinted")
	}
	return app.Div().
		Class(classes...).
		DataSet("card", card.Key()).
		Title(CardLabel(*card)).
		OnClick(g.onCardClick(*card)).
		Body(
			app.Raw(CardSVG(*card)),
			app.Small().Class("set-card-label").Text(CardLabel(*card)),
		)
}

func (g *Game) renderStatus(state *game.State) app.UI {
	switch state.Status {
	case game.StatusDeckEmpty:
		return app.Article().Class("game-over").Body(
			app.H3().Text("Deck cleared!"),
			app.P().Text(fmt.Sprintf("You found every set. Final score: %d", state.Score)),
		)
	case game.StatusNoMoreSets:
		return app.Article().Class("game-over").Body(
			app.H3().Text("No more sets"),
			app.P().Text(fmt.Sprintf("No set can be made from the remaining cards. Final score: %d", state.Score)),
		)
	}
	return app.Text("")
}

// errorMessage is what stops the board from being shown: a local error, or the
// connection being lost.
func (g *Game) errorMessage() string {
	if g.Error != "" {
		return g.Error
	}
	return State.Error
}

func (g *Game) Render() app.UI {
	if msg := g.errorMessage(); msg != "" {
		return app.Main().Class("container").Body(
			&TopBar{},
			app.Article().Body(
				app.H2().Text("Game Error"),
				app.P().Style("color", "red").Text(msg),
				app.A().Href("/").Text("Return to Home"),
			),
		)
	}

	state := State.Game
	if state == nil || state.ID != g.GameID {
		return app.Main().Class("container").Body(
			&TopBar{},
			app.Div().Aria("busy", "true").Text("Connecting to game..."),
		)
	}

	cards := make([]app.UI, 0, len(state.Board))
	for i, card := range state.Board {
		cards = append(cards, g.renderCard(i, card, state))
	}

	return app.Main().Class("container").Body(
		&TopBar{},
		&ToastList{},
		app.H1().Class("game-title").Text("Set Game"),
		app.Div().Class("game-stats").Body(
			app.Strong().Text(fmt.Sprintf("Score: %d", state.Score)),
			app.Span().Text(fmt.Sprintf("Cards left in deck: %d", state.Stock)),
		),
		g.renderStatus(state),
		app.Div().Class("set-board").Body(cards...),
		app.Div().Class("game-actions").Body(
			app.Button().Text("Reset Game").OnClick(g.onReset),
			app.Button().
				Class("secondary").
				Text("Clear Selection").
				Disabled(len(state.Selected) == 0).
				OnClick(g.onClearSelection),
			app.Button().
				Class("outline").
				Text("Hint").
				Disabled(state.Finished()).
				OnClick(g.onHint),
		),
		app.P().Class("game-selection").Text(fmt.Sprintf("Selected Cards: %d/%d", len(state.Selected), game.SetSize)),
	)
}
