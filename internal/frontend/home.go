package frontend

import (
	"github.com/frondster/frondster/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Home is the landing page component
type Home struct {
	app.Compo
}

func (h *Home) OnMount(ctx app.Context) {
	klog.V(1).Infof("Home: OnMount called")
	State.Listeners["home"] = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
	State.LoadTheme(ctx)
}

func (h *Home) OnDismount() {
	delete(State.Listeners, "home")
}

func (h *Home) OnAppUpdate(ctx app.Context) {
	klog.Infof("Home component: App update available, reloading...")
	ctx.Reload()
}

func (h *Home) onStartNewGame(ctx app.Context, e app.Event) {
	ctx.Navigate("/game/" + game.NewGameID())
}

func (h *Home) Render() app.UI {
	return app.Main().Class("container").Body(
		&TopBar{},
		app.Div().Class("landing").Body(
			app.H1().Text("Frondster"),
			app.P().Class("landing-subtitle").Text("Coming soon"),
			app.Button().Text("Start New Game").OnClick(h.onStartNewGame),
		),
	)
}
