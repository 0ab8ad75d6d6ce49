package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/jade/internal/app"
	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/jsbuild"
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

// Exit codes.
const (
	CodeFailure = 1
	CodeUsage   = 2
)

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		parsed  *app.Config
		flags   app.Config
		only    []string
		kinds   = make([]string, len(config.Kinds))
		prepErr error
	)
	for i, k := range config.Kinds {
		kinds[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:   "jade [RESOURCE]",
		Short: "Build script resources",
		Long: `Jade builds script resources by running the steps declared in each
resource's jade.hcl or jade.yaml build file.

RESOURCE is a resource name, "." for the current directory, or omitted to
build every resource below the nearest "resources" directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.Target = args[0]
			}
			parsed, prepErr = buildConfig(flags, only)
			return nil
		},
	}
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	f := cmd.Flags()
	f.StringVar(&flags.Env, "env", "", "Selects the type of config file to build (<env>.jade.hcl)")
	f.StringVar(&flags.PackageManager, "package-manager", jsbuild.DefaultPackageManager, "Default package manager for js_build steps")
	f.StringSliceVar(&only, "only", nil, "Run only these step kinds: "+strings.Join(kinds, ", "))
	f.IntVar(&flags.Workers, "workers", 0, "Maximum resources built concurrently (0 is unlimited)")
	f.BoolVar(&flags.Strict, "strict", false, "Exit with a failure code when any step fails")
	f.StringVar(&flags.Root, "root", ".", "Directory to start resource discovery from")
	f.StringVar(&flags.LogFormat, "log-format", app.FormatConsole, "Log output format. Options: 'console', 'text' or 'json'.")
	f.StringVar(&flags.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	f.BoolVar(&flags.NoLogo, "no-logo", false, "Do not print the logo")
	f.BoolVar(&flags.Trace, "trace", false, "Log a timing line for every resource and step span")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: CodeUsage, Message: err.Error()}
	}
	if prepErr != nil {
		return nil, false, prepErr
	}
	if parsed == nil {
		// --help was handled by cobra.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", parsed)
	return parsed, false, nil
}

// buildConfig validates flag values and builds the app configuration.
func buildConfig(flags app.Config, only []string) (*app.Config, error) {
	flags.LogFormat = strings.ToLower(flags.LogFormat)
	switch flags.LogFormat {
	case app.FormatConsole, app.FormatText, app.FormatJSON:
	default:
		return nil, &ExitError{Code: CodeUsage, Message: "invalid log-format: must be 'console', 'text' or 'json'"}
	}

	flags.LogLevel = strings.ToLower(flags.LogLevel)
	switch flags.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, &ExitError{Code: CodeUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	for _, s := range only {
		kind, ok := config.ParseKind(strings.TrimSpace(s))
		if !ok {
			return nil, &ExitError{Code: CodeUsage, Message: fmt.Sprintf("invalid --only value %q", s)}
		}
		flags.Only = append(flags.Only, kind)
	}

	cfg, err := app.NewConfig(flags)
	if err != nil {
		return nil, &ExitError{Code: CodeUsage, Message: err.Error()}
	}
	return cfg, nil
}
