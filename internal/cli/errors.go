package cli

import "errors"

// ErrPromptCancelled indicates that the user aborted an interactive prompt.
var ErrPromptCancelled = errors.New("prompt cancelled")

// IsCancelled reports whether err comes from the user aborting a prompt.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrPromptCancelled)
}
