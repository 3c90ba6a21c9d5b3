//go:build !windows && !darwin

package opener

const defaultCommand = "xdg-open"
