package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lscrates/cargo-ls-crates/internal/branding"
	"github.com/lscrates/cargo-ls-crates/internal/config"
	"github.com/lscrates/cargo-ls-crates/internal/manifest"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	showVersions     bool
	showDescriptions bool
	showPaths        bool
	rootFlag         string
	firstRoot        bool
	outputFlag       string
	parserFlag       string
	stripDisplay     bool
	noColor          bool
	debug            bool
)

// settings and logger are set up before any command runs.
var (
	settings config.Settings
	logger   = log.New(io.Discard)
)

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&showVersions, "versions", "v", false, "Show installed versions")
	f.BoolVarP(&showDescriptions, "descriptions", "d", false, "Show package descriptions")
	f.BoolVarP(&showPaths, "paths", "p", false, "Print the resolved install roots and exit")
	f.StringVarP(&outputFlag, "output", "o", "", "Output format: text, table or json")
	f.BoolVar(&stripDisplay, "strip-display", false, "Print names without the executable suffix")
	f.BoolVar(&noColor, "no-color", false, "Disable colored output")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlag, "root", "", "Install root to use before any other candidate")
	pf.StringVar(&parserFlag, "parser", "", "Manifest parser: "+manifest.ModeNames())
	pf.BoolVar(&firstRoot, "first-root", false, "Use only the highest-priority install root")
	pf.BoolVar(&debug, "debug", false, "Log debug output to stderr")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` lists the binaries installed by cargo install and correlates each one
with the version and description found in the local registry source cache.

The install root is taken from --root, CARGO_INSTALL_ROOT, the install.root
setting in cargo's config, CARGO_HOME and finally ~/.cargo. Every root that
exists is read unless --first-root is given.`,
	Example: `  cargo ls-crates
  cargo ls-crates -vd
  cargo-ls-crates --output json`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loadErr := config.Load()
		settings = config.Current()
		logger = newLogger(cmd.ErrOrStderr(), settings.LogLevel, debug)
		if loadErr != nil {
			// Defaults and environment still apply; doctor reports the file.
			logger.Warn("ignoring config file", "err", loadErr)
		}
		return nil
	},
	RunE: runList,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return executeArgs(os.Args[1:])
}

// executeArgs drops the subcommand name cargo passes when the binary is
// invoked as "cargo ls-crates".
func executeArgs(args []string) error {
	if len(args) > 0 && args[0] == branding.CargoSubcommand() {
		args = args[1:]
	}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func newLogger(w io.Writer, level string, debug bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix: branding.CLIName(),
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	if debug {
		lvl = log.DebugLevel
	}
	l.SetLevel(lvl)
	return l
}
