package frontend

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Theme is the color mode of the UI. It is explicit client state: it starts
// light, ignores the system preference and is kept in local storage.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const themeStorageKey = "frondster_theme"

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ToggleLabel is the text of the button switching away from t.
func (t Theme) ToggleLabel() string {
	if t == ThemeDark {
		return "Toggle Light"
	}
	return "Toggle Dark"
}

func (t Theme) valid() bool { return t == ThemeLight || t == ThemeDark }

// LoadTheme restores the theme saved in local storage and applies it.
func (s *GlobalClientState) LoadTheme(ctx app.Context) {
	var saved Theme
	if err := ctx.LocalStorage().Get(themeStorageKey, &saved); err != nil {
		klog.Warningf("LoadTheme: %v", err)
	} else if saved.valid() {
		s.Theme = saved
	}
	applyTheme(s.Theme)
}

// ToggleTheme switches between light and dark and saves the choice.
func (s *GlobalClientState) ToggleTheme(ctx app.Context) {
	s.Theme = s.Theme.Toggled()
	klog.V(1).Infof("ToggleTheme: Theme is now %s", s.Theme)
	if err := ctx.LocalStorage().Set(themeStorageKey, s.Theme); err != nil {
		klog.Warningf("ToggleTheme: failed to save theme: %v", err)
	}
	applyTheme(s.Theme)
	s.Notify()
}

// applyTheme sets pico's data-theme attribute on the document.
func applyTheme(t Theme) {
	if app.IsServer {
		return
	}
	app.Window().Get("document").Get("documentElement").Call("setAttribute", "data-theme", string(t))
}
