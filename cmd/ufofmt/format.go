package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"ufofmt/internal/config"
	"ufofmt/internal/driver"
	"ufofmt/internal/observ"
	"ufofmt/internal/ui"
)

func runFormat(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags := cmd.Flags()
	outputFormat, err := flags.GetString("format")
	if err != nil {
		return err
	}
	showTime, err := flags.GetBool("time")
	if err != nil {
		return err
	}
	jobs, err := flags.GetInt64("jobs")
	if err != nil {
		return err
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(colorEnabled(colorFlag))

	uiMode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("unsupported output format %q (must be text or json)", outputFormat)
	}

	timer := observ.NewTimer()

	policy, err := buildPolicy(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, printer.ErrorLine(err.Error()))
		return err
	}

	opts := driver.Options{Jobs: jobs}
	if verbose {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           log.DebugLevel,
			Prefix:          "ufofmt",
		})
	}

	var reports []driver.Report
	phase := timer.Begin("format")
	if shouldUseTUI(uiMode) && outputFormat == "text" {
		reports, err = runFormatWithUI(cmd.Context(), args, &policy, opts)
		if err != nil {
			return err
		}
	} else {
		reports = driver.FormatUFOs(cmd.Context(), args, &policy, opts)
	}
	timer.End(phase)

	switch outputFormat {
	case "text":
		renderText(reports, printer, quiet)
	case "json":
		if err := renderJSON(reports, timer, showTime); err != nil {
			return err
		}
	}

	if showTime && outputFormat == "text" {
		fmt.Fprintln(os.Stdout, timer.Summary())
	}

	if driver.AnyFailure(reports) {
		return fmt.Errorf("failed to format some files")
	}
	return nil
}

// buildPolicy merges manifest values and command-line flags into the single
// immutable policy for this run. Flags win over the manifest; the manifest
// wins over defaults.
func buildPolicy(cmd *cobra.Command) (config.Policy, error) {
	policy := config.Default()

	if path, ok, err := config.FindManifest("."); err == nil && ok {
		manifest, err := config.LoadManifest(path)
		if err != nil {
			return policy, err
		}
		manifest.Apply(&policy)
	} else if err != nil {
		return policy, err
	}

	flags := cmd.Flags()
	if flags.Changed("indent-number") {
		n, err := flags.GetInt("indent-number")
		if err != nil {
			return policy, err
		}
		policy.IndentCount = n
	}
	if flags.Changed("indent-space") {
		policy.IndentChar = config.IndentSpace
	}
	if flags.Changed("singlequotes") {
		policy.QuoteStyle = config.QuoteSingle
	}
	if flags.Changed("out-ext") {
		ext, err := flags.GetString("out-ext")
		if err != nil {
			return policy, err
		}
		policy.OutExtension = ext
		policy.OutExtensionSet = true
	}
	if flags.Changed("out-name") {
		name, err := flags.GetString("out-name")
		if err != nil {
			return policy, err
		}
		policy.OutNameSuffix = name
	}

	if err := policy.Validate(); err != nil {
		return policy, err
	}
	return policy, nil
}

// colorEnabled resolves --color (auto|on|off) against the output terminal.
func colorEnabled(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
