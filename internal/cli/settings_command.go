package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/datedir/internal/datedir/dateformat"
	"github.com/example/datedir/internal/datedir/domain"
	"github.com/example/datedir/internal/datedir/settings"
)

func newSettingsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the settings",
	}
	cmd.AddCommand(newSettingsShowCommand(e))
	cmd.AddCommand(newSettingsSetCommand(e))
	cmd.AddCommand(newSettingsEditCommand(e))
	return cmd
}

func newSettingsShowCommand(e *env) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			rec, err := fg.Settings(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				data, err := settings.Encode(rec)
				if err != nil {
					return err
				}
				_, err = e.stdout.Write(data)
				return err
			}
			printRecord(e.stdout, rec)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the settings in their stored JSON form")
	return cmd
}

func newSettingsSetCommand(e *env) *cobra.Command {
	var (
		path       string
		format     string
		autoStart  bool
		autoCreate bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change individual settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("path") && !flags.Changed("format") && !flags.Changed("auto-start") && !flags.Changed("auto-create") {
				return fmt.Errorf("settings set: nothing to change, pass at least one of --path, --format, --auto-start, --auto-create")
			}

			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			rec, err := fg.Settings(cmd.Context())
			if err != nil {
				return err
			}

			if flags.Changed("path") {
				rec.FolderPath = strings.TrimSpace(path)
			}
			if flags.Changed("format") {
				f, err := dateformat.ParseFormat(format)
				if err != nil {
					return domain.Wrap(domain.KindConfiguration, "invalid date format", err)
				}
				rec.DateFormat = f
			}
			if flags.Changed("auto-start") {
				rec.AutoStart = autoStart
			}
			if flags.Changed("auto-create") {
				rec.AutoCreateOnStartup = autoCreate
			}

			if err := fg.SaveSettings(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Fprintln(e.stdout, okText("Settings saved."))
			printRecord(e.stdout, rec)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Base folder under which dated folders are created")
	cmd.Flags().StringVar(&format, "format", "", "Folder name format: MMDD or YYYYMMDD")
	cmd.Flags().BoolVar(&autoStart, "auto-start", false, "Launch datedir at login")
	cmd.Flags().BoolVar(&autoCreate, "auto-create", false, "Create today's folder when datedir starts")
	return cmd
}

func newSettingsEditCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the settings interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			current, err := fg.Settings(cmd.Context())
			if err != nil {
				return err
			}
			next := current

			for {
				path, err := e.prompter.Prompt("Base folder", current.FolderPath)
				if err != nil {
					return err
				}
				path = strings.TrimSpace(path)
				if err := fg.ValidateFolderPath(cmd.Context(), path); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", domain.MessageOf(err))
					continue
				}
				next.FolderPath = path
				break
			}

			_, choice, err := e.prompter.Select("Folder name format", formatLabels(), formatLabel(current.DateFormat))
			if err != nil {
				return err
			}
			for _, f := range dateformat.Formats() {
				if formatLabel(f) == choice {
					next.DateFormat = f
				}
			}

			if next.AutoStart, err = e.prompter.Confirm("Launch datedir at login?", current.AutoStart); err != nil {
				return err
			}
			if next.AutoCreateOnStartup, err = e.prompter.Confirm("Create today's folder on startup?", current.AutoCreateOnStartup); err != nil {
				return err
			}

			if next == current {
				fmt.Fprintln(e.stdout, "No changes.")
				return nil
			}
			if err := fg.SaveSettings(cmd.Context(), next); err != nil {
				return err
			}
			fmt.Fprintln(e.stdout, okText("Settings saved."))
			return nil
		},
	}
}

func formatLabel(f dateformat.Format) string {
	return fmt.Sprintf("%s (%s)", f, f.Example())
}

func formatLabels() []string {
	formats := dateformat.Formats()
	labels := make([]string, 0, len(formats))
	for _, f := range formats {
		labels = append(labels, formatLabel(f))
	}
	return labels
}
