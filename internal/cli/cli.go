package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/scriptfunc/internal/app"
	"github.com/spf13/cobra"
)

// Exit codes used by the scriptfunc binary.
const (
	ExitFailure       = 1 // runtime or configuration fault
	ExitUsage         = 2 // invalid flags or arguments
	ExitNotRecognized = 3 // no function behind the requested name
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, a ...any) error {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, a...)}
}

// flags holds the global flag values shared by every subcommand.
type flags struct {
	configPath    string
	functionsDir  string
	store         string
	redisAddr     string
	redisKey      string
	cacheCapacity int
	logLevel      string
	logFormat     string
}

// NewRootCmd builds the scriptfunc command tree. Results go to outW;
// logs, warnings and errors go to errW.
func NewRootCmd(outW, errW io.Writer) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "scriptfunc",
		Short: "scriptfunc - resolve and call script-backed functions",
		Long: `scriptfunc looks up functions defined as script files in a function
store (a directory, Redis, or memory), compiles them on first use and caches
the result.

A function is addressed as NAME or NAMESPACE:NAME, where the namespace is the
script file extension, e.g. hcl:sum for sum.hcl.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(outW)
	root.SetErr(errW)

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Path to a YAML configuration file.")
	pf.StringVar(&f.functionsDir, "functions-dir", "", "Directory holding function scripts (store type 'dir').")
	pf.StringVar(&f.store, "store", "", "Function store type: 'dir', 'memory' or 'redis'.")
	pf.StringVar(&f.redisAddr, "redis-addr", "", "Redis address for store type 'redis'.")
	pf.StringVar(&f.redisKey, "redis-key", "", "Redis hash holding function scripts.")
	pf.IntVar(&f.cacheCapacity, "cache-capacity", 0, "Maximum number of compiled functions kept in memory.")
	pf.StringVar(&f.logLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	pf.StringVar(&f.logFormat, "log-format", "", "Log output format: 'text' or 'json'.")

	root.AddCommand(
		newListCmd(f, outW, errW),
		newCallCmd(f, outW, errW),
		newWarmCmd(f, outW, errW),
	)
	return root
}

// Execute runs the command tree with args.
func Execute(outW, errW io.Writer, args []string) error {
	root := NewRootCmd(outW, errW)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Flag and argument errors reported by cobra itself.
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// buildConfig merges the configuration file with explicitly set flags.
func (f *flags) buildConfig(cmd *cobra.Command) (*app.Config, error) {
	var raw app.Config
	if f.configPath != "" {
		loaded, err := app.LoadConfig(f.configPath)
		if err != nil {
			return nil, usageError("%v", err)
		}
		raw = loaded
	}

	changed := cmd.Flags().Changed
	if changed("store") {
		raw.Store.Type = f.store
	}
	if changed("functions-dir") {
		raw.Store.Path = f.functionsDir
		if !changed("store") && f.configPath == "" {
			raw.Store.Type = app.StoreDir
		}
	}
	if changed("redis-addr") {
		raw.Store.Redis.Addr = f.redisAddr
	}
	if changed("redis-key") {
		raw.Store.Redis.Key = f.redisKey
	}
	if changed("cache-capacity") {
		raw.Cache.Capacity = f.cacheCapacity
	}
	if changed("log-level") {
		raw.Log.Level = f.logLevel
	}
	if changed("log-format") {
		raw.Log.Format = f.logFormat
	}
	if raw.Log.Level == "" {
		raw.Log.Level = "warn"
	}

	cfg, err := app.NewConfig(raw)
	if err != nil {
		return nil, usageError("%v", err)
	}
	return cfg, nil
}

// newApp builds the application for one command run. The caller closes it.
func (f *flags) newApp(cmd *cobra.Command, errW io.Writer) (*app.App, error) {
	cfg, err := f.buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	a, err := app.NewApp(errW, cfg)
	if err != nil {
		return nil, &ExitError{Code: ExitFailure, Message: err.Error()}
	}
	return a, nil
}
