package coordinator

import (
	"io"
	"log/slog"
	"sync"
)

// Window is the primary user-facing interface the surfaces can show and hide.
type Window interface {
	Show() error
	Hide() error
}

// HeadlessWindow is the window of a daemon without a graphical front end. It records the
// requested visibility so clients can query it.
type HeadlessWindow struct {
	mu      sync.Mutex
	visible bool
	shows   int
	logger  *slog.Logger
}

// NewHeadlessWindow creates a hidden HeadlessWindow.
func NewHeadlessWindow(logger *slog.Logger) *HeadlessWindow {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HeadlessWindow{logger: logger}
}

func (w *HeadlessWindow) Show() error {
	w.mu.Lock()
	w.visible = true
	w.shows++
	w.mu.Unlock()
	w.logger.Info("window shown")
	return nil
}

func (w *HeadlessWindow) Hide() error {
	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
	w.logger.Info("window hidden")
	return nil
}

// Visible reports the last requested visibility.
func (w *HeadlessWindow) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Shows returns how many times the window was shown.
func (w *HeadlessWindow) Shows() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shows
}
