package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deleter/internal/config"
	"deleter/internal/logging"
	"deleter/internal/match"
	"deleter/internal/processor"
	"deleter/internal/roots"
	"deleter/pkg/bytesize"
)

var (
	flagGlob        string
	flagExclude     string
	flagMinSize     bytesize.Size
	flagParallelism int
	flagVerbose     bool
	flagConfig      string
	flagDebug       bool

	flagTrash  bool
	flagDryRun bool
	flagYes    bool
	flagRewalk bool
)

var rootCmd = &cobra.Command{
	Use:   "deleter [flags] <paths...>",
	Short: "deleter 🗑️ - ultra-fast safe file deletion (supports trash)",
	Long: "deleter 🗑️ scans one or more directory trees for files matching a glob and size floor,\n" +
		"asks for confirmation, then removes them in parallel or moves them to the trash.\n\n" +
		"Each path may be a directory or a text file listing directories.",
	Args:              cobra.MinimumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runDelete,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// setup configures logging and fills unset flags from the config file.
func setup(cmd *cobra.Command, _ []string) error {
	logging.Setup(cmd.ErrOrStderr(), flagDebug)

	cfg, err := config.Discover(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Apply(cmd.Flags()); err != nil {
		return err
	}
	if flagParallelism < 1 {
		return fmt.Errorf("--parallelism must be at least 1, got %d", flagParallelism)
	}
	return nil
}

// selection turns positional args and shared flags into roots and a
// predicate. Everything here is validated before any file is touched.
func selection(args []string) ([]string, *match.Predicate, error) {
	pred, err := match.Compile(flagGlob, flagExclude)
	if err != nil {
		return nil, nil, err
	}
	rootSet, err := roots.NewCollector().Collect(args)
	if err != nil {
		return nil, nil, err
	}
	return rootSet, pred, nil
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagGlob, "glob", "g", match.DefaultInclude, "include pattern, e.g. '*.tmp' or 'cache/**'")
	pf.StringVar(&flagExclude, "exclude", "", "exclude pattern; matching files are never touched")
	pf.Var(&flagMinSize, "min-size", "only files at least this large (e.g. 512K, 10M, 1G)")
	pf.IntVarP(&flagParallelism, "parallelism", "p", processor.DefaultConcurrency(), "number of concurrent workers")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "print every file as it is processed")
	pf.StringVar(&flagConfig, "config", "", "JSON file with default flag values")
	pf.BoolVar(&flagDebug, "debug", false, "log debug output to stderr")

	f := rootCmd.Flags()
	f.BoolVar(&flagTrash, "trash", false, "move files to the trash instead of deleting them")
	f.BoolVar(&flagDryRun, "dry-run", false, "show what would be removed without touching anything")
	f.BoolVarP(&flagYes, "yes", "y", false, "skip the confirmation prompt")
	f.BoolVar(&flagRewalk, "rewalk", false, "walk the roots again when sweeping instead of using the scanned list")
	_ = f.MarkHidden("rewalk")
}
