package frontend

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

type TopBar struct {
	app.Compo
}

func (t *TopBar) onToggleTheme(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.ToggleTheme(ctx)
}

func (t *TopBar) onBannerClick(ctx app.Context, e app.Event) {
	ctx.Navigate("/")
}

func (t *TopBar) Render() app.UI {
	return app.Nav().Body(
		app.Ul().Body(
			app.Li().Body(
				app.Strong().
					Text("Frondster").
					Style("cursor", "pointer").
					OnClick(t.onBannerClick),
			),
		),
		app.Ul().Body(
			app.Li().Body(
				app.Button().
					Class("outline", "secondary").
					Text(State.Theme.ToggleLabel()).
					OnClick(t.onToggleTheme),
			),
		),
	)
}
