package frontend

import (
	"net/url"
	"strings"
	"sync"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

var registerOnce sync.Once

// RegisterRoutes registers the pages, both in the WASM app and in the server
// for prerendering.
func RegisterRoutes() {
	registerOnce.Do(func() {
		app.Route("/", func() app.Composer { return &Home{} })
		app.RouteWithRegexp("^/game(/.*)?$", func() app.Composer { return &Game{} })
	})
}

// GameIDFromURL extracts the game id from /game/{id}, or from /game?id={id}.
func GameIDFromURL(u *url.URL) string {
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "game" && parts[1] != "" {
		return parts[1]
	}
	if len(parts) >= 1 && parts[0] == "game" {
		return u.Query().Get("id")
	}
	return ""
}
