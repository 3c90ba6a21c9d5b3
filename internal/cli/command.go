package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/datedir/internal/datedir/config"
	"github.com/example/datedir/internal/datedir/coordinator"
	"github.com/example/datedir/internal/datedir/folder"
	"github.com/example/datedir/internal/datedir/logging"
	"github.com/example/datedir/internal/datedir/settings"
	"github.com/example/datedir/internal/datedir/watch"
)

// Backend resolves what the commands talk to.
type Backend struct {
	// Connect returns a Foreground; remote is false when it runs in-process.
	Connect func(ctx context.Context, opts config.Options, logger *slog.Logger) (fg coordinator.Foreground, remote bool, err error)
	// Run runs the daemon in the foreground of the current process.
	Run func(ctx context.Context, opts config.Options, logger *slog.Logger) error
}

var (
	okText   = color.New(color.FgGreen).SprintFunc()
	warnText = color.New(color.FgYellow).SprintFunc()
	boldText = color.New(color.Bold).SprintFunc()
)

type env struct {
	backend  Backend
	prompter Prompter
	viper    *viper.Viper
	stdout   io.Writer
	stderr   io.Writer

	opts   config.Options
	logger *slog.Logger
}

func (e *env) connect(cmd *cobra.Command) (coordinator.Foreground, bool, error) {
	return e.backend.Connect(cmd.Context(), e.opts, e.logger)
}

func (e *env) foreground(cmd *cobra.Command) (coordinator.Foreground, error) {
	fg, _, err := e.connect(cmd)
	return fg, err
}

// NewRootCommand constructs the root Cobra command for datedir.
func NewRootCommand(backend Backend, prompter Prompter, stdout, stderr io.Writer) *cobra.Command {
	e := &env{
		backend:  backend,
		prompter: prompter,
		viper:    config.NewViper(),
		stdout:   stdout,
		stderr:   stderr,
	}

	cmd := &cobra.Command{
		Use:           "datedir",
		Short:         "Dated folder helper",
		Long:          "datedir keeps a folder named after today's date under a base directory and opens it on demand.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.Load(e.viper)
			if err != nil {
				return err
			}
			logger, err := logging.New(stderr, opts.LogLevel, opts.LogFormat)
			if err != nil {
				return err
			}
			e.opts = opts
			e.logger = logger
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := config.RegisterFlags(cmd.PersistentFlags(), e.viper); err != nil {
		panic(err)
	}

	cmd.AddCommand(newRunCommand(e))
	cmd.AddCommand(newCreateCommand(e))
	cmd.AddCommand(newOpenCommand(e))
	cmd.AddCommand(newStatusCommand(e))
	cmd.AddCommand(newSettingsCommand(e))
	cmd.AddCommand(newValidateCommand(e))
	cmd.AddCommand(newPickCommand(e))
	cmd.AddCommand(newWindowCommand(e))
	cmd.AddCommand(newAutostartCommand(e))
	cmd.AddCommand(newQuitCommand(e))

	return cmd
}

func newRunCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the background process with its tray menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.backend.Run(cmd.Context(), e.opts, e.logger)
		},
	}
}

func newCreateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create today's folder if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			path, err := fg.CreateTodayFolder(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(e.stdout, "%s %s\n", okText("Ready:"), path)
			return nil
		},
	}
}

func newOpenCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "open [path]",
		Short: "Open a folder in the file manager (default: today's folder, else the base folder)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = strings.TrimSpace(args[0])
			}
			return fg.OpenFolder(cmd.Context(), path)
		},
	}
}

func newStatusCommand(e *env) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether today's folder exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			if follow {
				return watch.New(fg, e.logger).Run(cmd.Context(), func(status folder.Status) {
					printStatus(e.stdout, status)
				})
			}
			status, err := fg.TodayStatus(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(e.stdout, status)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&follow, "watch", "w", false, "Keep running and print the status whenever it changes")
	return cmd
}

func printStatus(w io.Writer, status folder.Status) {
	if status.Exists {
		fmt.Fprintf(w, "%s %s\n", okText("exists"), status.Path)
		return
	}
	fmt.Fprintf(w, "%s %s\n", warnText("missing"), status.Path)
}

func newValidateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check that a path can be used as the base folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			if err := fg.ValidateFolderPath(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(e.stdout, "%s %s is a writable directory\n", okText("OK:"), args[0])
			return nil
		},
	}
}

func newPickCommand(e *env) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a folder with the native dialog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			path, ok, err := fg.SelectFolder(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(e.stdout, "No folder selected.")
				return nil
			}
			fmt.Fprintln(e.stdout, path)
			if !save {
				return nil
			}

			rec, err := fg.Settings(cmd.Context())
			if err != nil {
				return err
			}
			rec.FolderPath = path
			if err := fg.SaveSettings(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Fprintf(e.stdout, "%s base folder set to %s\n", okText("Saved:"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Store the chosen folder as the base folder")
	return cmd
}

func newWindowCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Show or hide the main window of the running instance",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the main window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			return fg.ShowWindow(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "hide",
		Short: "Hide the main window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			return fg.HideWindow(cmd.Context())
		},
	})
	return cmd
}

func newAutostartCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage launching datedir at login",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Launch datedir at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			if err := fg.EnableAutostart(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(e.stdout, "Autostart enabled.")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Stop launching datedir at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			if err := fg.DisableAutostart(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(e.stdout, "Autostart disabled.")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether datedir launches at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := e.foreground(cmd)
			if err != nil {
				return err
			}
			enabled, err := fg.AutostartEnabled(cmd.Context())
			if err != nil {
				return err
			}
			if enabled {
				fmt.Fprintf(e.stdout, "Autostart is %s.\n", okText("enabled"))
			} else {
				fmt.Fprintf(e.stdout, "Autostart is %s.\n", warnText("disabled"))
			}
			return nil
		},
	})
	return cmd
}

func newQuitCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "quit",
		Short: "Stop the running instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, remote, err := e.connect(cmd)
			if err != nil {
				return err
			}
			if !remote {
				fmt.Fprintln(e.stdout, "datedir is not running.")
				return nil
			}
			if err := fg.Quit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(e.stdout, "datedir is shutting down.")
			return nil
		},
	}
}

func printRecord(w io.Writer, rec settings.Record) {
	fmt.Fprintf(w, "%-24s %s\n", boldText("folder_path"), rec.FolderPath)
	fmt.Fprintf(w, "%-24s %s (e.g. %s)\n", boldText("date_format"), rec.DateFormat, rec.DateFormat.Example())
	fmt.Fprintf(w, "%-24s %t\n", boldText("auto_start"), rec.AutoStart)
	fmt.Fprintf(w, "%-24s %t\n", boldText("auto_create_on_startup"), rec.AutoCreateOnStartup)
}
