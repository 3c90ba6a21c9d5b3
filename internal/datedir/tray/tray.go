// Package tray shows the background menu in the system status area.
package tray

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"fyne.io/systray"

	"github.com/example/datedir/internal/datedir/coordinator"
)

const tooltip = "datedir"

// Handler receives menu selections.
type Handler interface {
	HandleMenu(ctx context.Context, action coordinator.MenuAction)
}

// Tray owns the status-area icon and its menu.
type Tray struct {
	handler Handler
	logger  *slog.Logger
}

// New creates a Tray dispatching to handler.
func New(handler Handler, logger *slog.Logger) *Tray {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Tray{handler: handler, logger: logger}
}

// Run shows the menu and blocks until ctx is done. It must be called from the main goroutine
// because the platform event loop requires it. onReady runs once the menu is visible.
func (t *Tray) Run(ctx context.Context, onReady func()) {
	systray.Run(func() {
		systray.SetTitle(tooltip)
		systray.SetTooltip(tooltip)

		var items []menuItem
		for _, action := range coordinator.MenuActions() {
			if action == coordinator.MenuQuit {
				systray.AddSeparator()
			}
			item := systray.AddMenuItem(action.Label(), action.Label())
			items = append(items, menuItem{action: action, clicked: item.ClickedCh})
		}

		go t.dispatch(ctx, items)
		go func() {
			<-ctx.Done()
			systray.Quit()
		}()

		t.logger.Info("tray menu ready")
		if onReady != nil {
			onReady()
		}
	}, func() {
		t.logger.Info("tray menu closed")
	})
}

type menuItem struct {
	action  coordinator.MenuAction
	clicked <-chan struct{}
}

// dispatch forwards clicks to the handler one at a time until ctx is done.
func (t *Tray) dispatch(ctx context.Context, items []menuItem) {
	actions := make(chan coordinator.MenuAction)
	var wg sync.WaitGroup
	for _, item := range items {
		wg.Add(1)
		go func(item menuItem) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-item.clicked:
					if !ok {
						return
					}
					select {
					case actions <- item.action:
					case <-ctx.Done():
						return
					}
				}
			}
		}(item)
	}
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case action := <-actions:
			t.logger.Debug("menu item selected", "action", string(action))
			t.handler.HandleMenu(ctx, action)
		}
	}
}
