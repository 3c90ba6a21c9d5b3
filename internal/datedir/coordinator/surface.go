package coordinator

import (
	"context"

	"github.com/example/datedir/internal/datedir/folder"
	"github.com/example/datedir/internal/datedir/settings"
)

// Foreground is the request/response command surface. The in-process Coordinator and the
// control API client both implement it, so callers do not care whether a daemon is running.
type Foreground interface {
	CreateTodayFolder(ctx context.Context) (string, error)
	// OpenFolder opens path, or today's folder when path is empty and it exists, or the base
	// folder otherwise.
	OpenFolder(ctx context.Context, path string) error
	Settings(ctx context.Context) (settings.Record, error)
	SaveSettings(ctx context.Context, rec settings.Record) error
	ValidateFolderPath(ctx context.Context, path string) error
	TodayStatus(ctx context.Context) (folder.Status, error)
	ShowWindow(ctx context.Context) error
	HideWindow(ctx context.Context) error
	Quit(ctx context.Context) error
	EnableAutostart(ctx context.Context) error
	DisableAutostart(ctx context.Context) error
	AutostartEnabled(ctx context.Context) (bool, error)
	// SelectFolder shows the folder chooser; ok is false when the user cancelled.
	SelectFolder(ctx context.Context) (path string, ok bool, err error)
}

// MenuAction identifies a background menu item.
type MenuAction string

const (
	MenuQuit       MenuAction = "quit"
	MenuShow       MenuAction = "show"
	MenuCreateNow  MenuAction = "create_now"
	MenuOpenFolder MenuAction = "open_folder"
)

// MenuActions lists the background menu in display order.
func MenuActions() []MenuAction {
	return []MenuAction{MenuCreateNow, MenuOpenFolder, MenuShow, MenuQuit}
}

// Label returns the menu text for an action.
func (a MenuAction) Label() string {
	switch a {
	case MenuQuit:
		return "Quit"
	case MenuShow:
		return "Show settings"
	case MenuCreateNow:
		return "Create now"
	case MenuOpenFolder:
		return "Open folder"
	default:
		return string(a)
	}
}
