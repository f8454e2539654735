package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ufofmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ufofmt [flags] <UFO_PATH>...",
	Short: "A fast, flexible UFO source formatter",
	Long: `ufofmt rewrites the files of UFO source packages into a canonical,
deterministic serialization: glyph files and property lists get stable
indentation, quoting and numeric formatting, feature files get LF line
endings. Formatting is idempotent and runs file tasks in parallel.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().BoolP("singlequotes", "s", false, "format XML declaration attributes with single quotes")
	rootCmd.Flags().Bool("indent-space", false, "use space char for indentation [default: tab]")
	rootCmd.Flags().Int("indent-number", 1, "number of indentation char per indent level (valid range = 1 - 4)")
	rootCmd.Flags().String("out-ext", "", "define a unique file write path extension")
	rootCmd.Flags().String("out-name", "", "append a unique file write path name before the extension")
	rootCmd.Flags().BoolP("time", "t", false, "display timing data")
	rootCmd.Flags().Int64("jobs", 0, "worker pool size (0 = all CPUs)")
	rootCmd.Flags().String("format", "text", "output format (text|json)")
	rootCmd.Flags().String("ui", "off", "live progress display (auto|on|off)")

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress per-file success lines")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
