package frontend

import (
	"slices"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 2 * time.Second

// ToastStatus selects the style of a notification.
type ToastStatus string

const (
	ToastSuccess ToastStatus = "success"
	ToastError   ToastStatus = "error"
)

// Toast is a transient notification.
type Toast struct {
	ID     int
	Title  string
	Status ToastStatus
}

// PushToast shows a notification and dismisses it after ToastDuration.
func (s *GlobalClientState) PushToast(title string, status ToastStatus) {
	s.toastMu.Lock()
	s.nextToastID++
	id := s.nextToastID
	s.toasts = append(s.toasts, Toast{ID: id, Title: title, Status: status})
	s.toastMu.Unlock()
	s.Notify()

	time.AfterFunc(ToastDuration, func() {
		s.DismissToast(id)
	})
}

// DismissToast removes a notification.
func (s *GlobalClientState) DismissToast(id int) {
	s.toastMu.Lock()
	n := len(s.toasts)
	s.toasts = slices.DeleteFunc(s.toasts, func(t Toast) bool { return t.ID == id })
	removed := len(s.toasts) != n
	s.toastMu.Unlock()
	if removed {
		s.Notify()
	}
}

// Toasts returns the notifications currently shown.
func (s *GlobalClientState) Toasts() []Toast {
	s.toastMu.Lock()
	defer s.toastMu.Unlock()
	return slices.Clone(s.toasts)
}

// ToastList renders the notifications of the global state.
type ToastList struct {
	app.Compo
}

func (t *ToastList) Render() app.UI {
	var items []app.UI
	for _, toast := range State.Toasts() {
		id := toast.ID
		items = append(items, app.Div().
			Class("toast", "toast-"+string(toast.Status)).
			Role("status").
			Body(
				app.Span().Text(toast.Title),
				app.A().Href("#").Class("toast-close").Aria("label", "Close").Text("×").
					OnClick(func(ctx app.Context, e app.Event) {
						e.PreventDefault()
						State.DismissToast(id)
					}),
			))
	}
	return app.Div().Class("toasts").Body(items...)
}
