package cli

// Prompter asks the user for input interactively.
type Prompter interface {
	Select(label string, items []string, defaultValue string) (int, string, error)
	Prompt(label string, defaultValue string) (string, error)
	Confirm(label string, defaultYes bool) (bool, error)
}
