package cli

import (
	"sync"

	"github.com/projextpal/projextpal-cli/internal/wizard"
)

// toastNotifier keeps the latest notification until the view takes it.
// The controller calls Notify from Cmd goroutines.
type toastNotifier struct {
	mu   sync.Mutex
	last *wizard.Notification
}

func (t *toastNotifier) Notify(n wizard.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = &n
}

func (t *toastNotifier) take() *wizard.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.last
	t.last = nil
	return n
}
