package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/jparise/unitconv/internal/datadir"
	"github.com/jparise/unitconv/internal/logger"
	"github.com/jparise/unitconv/internal/output"
	"github.com/jparise/unitconv/internal/units"
	"github.com/spf13/cobra"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

const (
	envDataDir  = "UNITCONV_DATA_DIR"
	envLogLevel = "UNITCONV_LOG_LEVEL"

	defaultWidth = 80
)

var version = "dev"

// app holds the global flags and the state shared by all subcommands.
type app struct {
	dataDir  string
	color    colorMode
	logLevel string

	log *charmlog.Logger
	out *output.Output
}

func newRootCmd() *cobra.Command {
	a := &app{color: colorAuto}

	rootCmd := &cobra.Command{
		Use:   "unitconv",
		Short: "Convert quantities between units",
		Long: `unitconv converts quantities between units of the same group.

Time conversions accept richer expressions:
  minutes seconds 10                 10 minutes in seconds
  17h:28m:36s 04h:15m:22s seconds    seconds between two clock values
  jan dec days                       days from January through December
  2019-11-04 2056-04-28 days         days between two dates, inclusive
  3 hours 15 minutes seconds         sum of several durations
  36s seconds                        a single clock, month, or date

Other groups convert "<from> <to> <amount>". Unit tables and the conversion
history live in the data directory, which is created and seeded on first use.

Examples:
  unitconv convert time jan dec days
  unitconv convert length meters yards 10
  unitconv types time --match "h*"
  unitconv type add time fortnights 1209600
  unitconv base temperature kelvin
  unitconv history --limit 5`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.dataDir, "data-dir", os.Getenv(envDataDir),
		"directory holding unit tables and history (env "+envDataDir+")")
	flags.Var(&a.color, "color",
		"colorize output: auto, always, never")
	flags.StringVar(&a.logLevel, "log-level", envOr(envLogLevel, logger.WarnLevel),
		"diagnostic log level: debug, info, warn, error (env "+envLogLevel+")")

	rootCmd.AddCommand(
		newConvertCmd(a),
		newGroupsCmd(a),
		newTypesCmd(a),
		newHistoryCmd(a),
		newGroupCmd(a),
		newTypeCmd(a),
		newAliasCmd(a),
		newBaseCmd(a),
	)
	return rootCmd
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// setup resolves the global flags into a logger, an output, and a data
// directory. The logger is attached to the command's context.
func (a *app) setup(cmd *cobra.Command) error {
	log, err := logger.New(cmd.ErrOrStderr(), a.logLevel)
	if err != nil {
		return err
	}
	a.log = log

	if a.dataDir == "" {
		dir, err := datadir.Default()
		if err != nil {
			return err
		}
		a.dataDir = dir
	}

	terminal := term.FromEnv()
	var colorize bool
	switch a.color {
	case colorAlways:
		colorize = true
	case colorNever:
		colorize = false
	case colorAuto:
		colorize = terminal.IsColorEnabled() && cmd.OutOrStdout() == os.Stdout
	}

	isTTY := terminal.IsTerminalOutput() && cmd.OutOrStdout() == os.Stdout
	width := defaultWidth
	if isTTY {
		if w, _, err := terminal.Size(); err == nil && w > 0 {
			width = w
		}
	}
	a.out = output.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorize, isTTY, width)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx, log))
	log.Debug("resolved settings", "data_dir", a.dataDir, "color", a.color.String(), "tty", isTTY)
	return nil
}

// loadStore reads the unit tables from the data directory.
func (a *app) loadStore(ctx context.Context) (*units.Store, error) {
	store, err := units.Load(ctx, a.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load unit tables from %s: %w", a.dataDir, err)
	}
	return store, nil
}

// parseFactor parses a conversion factor or offset given on the command
// line.
func parseFactor(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, s)
	}
	return v, nil
}
