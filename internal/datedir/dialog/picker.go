// Package dialog shows the native folder chooser.
package dialog

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// Picker asks the user for a folder. ok is false when the user dismissed the dialog.
type Picker interface {
	PickFolder(ctx context.Context, start string) (path string, ok bool, err error)
}

// Zenity shows the platform folder chooser through zenity.
type Zenity struct {
	Title string
	// selectFile is swapped in tests.
	selectFile func(options ...zenity.Option) (string, error)
}

// NewZenity creates a picker with the default title.
func NewZenity() *Zenity {
	return &Zenity{Title: "Select folder", selectFile: zenity.SelectFile}
}

// PickFolder blocks until the user picks a folder, cancels, or ctx is done.
func (z *Zenity) PickFolder(ctx context.Context, start string) (string, bool, error) {
	options := []zenity.Option{
		zenity.Context(ctx),
		zenity.Directory(),
		zenity.Title(z.Title),
	}
	if start != "" {
		options = append(options, zenity.Filename(start))
	}

	path, err := z.selectFile(options...)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("folder dialog: %w", err)
	}
	return path, true, nil
}
