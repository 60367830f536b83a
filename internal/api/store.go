package api

import (
	"sync"

	"github.com/tabdeck/tabdeck/internal/tabs"
)

// Store owns a controller on behalf of concurrent HTTP handlers. The tabs
// package runs operations synchronously on whichever goroutine calls it and
// is not safe for concurrent use, so every access goes through With.
type Store struct {
	mu   sync.Mutex
	ctrl *tabs.Controller
}

// NewStore wraps an existing controller. The caller must stop touching the
// controller directly from other goroutines once it is handed over.
func NewStore(ctrl *tabs.Controller) *Store {
	return &Store{ctrl: ctrl}
}

// With runs fn with exclusive access to the controller.
func (s *Store) With(fn func(*tabs.Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ctrl)
}
