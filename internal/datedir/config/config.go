// Package config binds the runtime options of the datedir binary. These are process options,
// separate from the persisted settings record.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/example/datedir/internal/datedir/logging"
)

const envPrefix = "DATEDIR"

const (
	KeyConfigDir  = "config-dir"
	KeyRuntimeDir = "runtime-dir"
	KeyLogLevel   = "log-level"
	KeyLogFormat  = "log-format"
	KeyWorkers    = "workers"
	KeyNoTray     = "no-tray"
	KeyLocal      = "local"
)

const DefaultWorkers = 4

// Options are the resolved runtime options.
type Options struct {
	ConfigDir  string
	RuntimeDir string
	LogLevel   string
	LogFormat  string
	Workers    int
	// NoTray runs the daemon without the status-area menu.
	NoTray bool
	// Local runs commands in-process instead of calling a daemon.
	Local bool
}

// NewViper returns a viper instance reading DATEDIR_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// RegisterFlags adds the option flags to flags and binds them to v.
func RegisterFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	flags.String(KeyConfigDir, "", "directory holding settings.json (default: XDG config home)")
	flags.String(KeyRuntimeDir, "", "directory for the control socket and lock (default: XDG runtime dir)")
	flags.String(KeyLogLevel, "info", "log level: debug, info, warn or error")
	flags.String(KeyLogFormat, "text", "log format: text or json")
	flags.Int(KeyWorkers, DefaultWorkers, "maximum concurrent control API operations")
	flags.Bool(KeyNoTray, false, "run the daemon without the tray menu")
	flags.Bool(KeyLocal, false, "run commands in-process instead of calling the daemon")

	for _, key := range []string{KeyConfigDir, KeyRuntimeDir, KeyLogLevel, KeyLogFormat, KeyWorkers, KeyNoTray, KeyLocal} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return nil
}

// Load resolves and checks the options bound on v.
func Load(v *viper.Viper) (Options, error) {
	opts := Options{
		ConfigDir:  v.GetString(KeyConfigDir),
		RuntimeDir: v.GetString(KeyRuntimeDir),
		LogLevel:   strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:  strings.ToLower(v.GetString(KeyLogFormat)),
		Workers:    v.GetInt(KeyWorkers),
		NoTray:     v.GetBool(KeyNoTray),
		Local:      v.GetBool(KeyLocal),
	}
	if opts.LogLevel == "" {
		opts.LogLevel = "info"
	}
	if opts.LogFormat == "" {
		opts.LogFormat = logging.FormatText
	}
	if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
		return Options{}, err
	}
	if opts.LogFormat != logging.FormatText && opts.LogFormat != logging.FormatJSON {
		return Options{}, fmt.Errorf("unknown log format %q", opts.LogFormat)
	}
	if opts.Workers < 1 {
		return Options{}, fmt.Errorf("workers must be at least 1, got %d", opts.Workers)
	}
	return opts, nil
}
