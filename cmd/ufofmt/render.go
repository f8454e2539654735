package main

import (
	"encoding/json"
	"fmt"
	"os"

	"ufofmt/internal/driver"
	"ufofmt/internal/observ"
	"ufofmt/internal/ui"
)

// renderText writes per-error diagnostics to stderr, per-file success lines
// to stdout (suppressed by --quiet) and a closing run summary.
func renderText(reports []driver.Report, printer *ui.Printer, quiet bool) {
	failures := 0
	packagesOK := 0
	for _, rep := range reports {
		if rep.Err != nil {
			failures++
			fmt.Fprintln(os.Stderr, printer.ErrorLine(rep.Err.Error()))
			continue
		}
		for _, res := range rep.Results {
			if res.Err != nil {
				fmt.Fprintln(os.Stderr, printer.ErrorLine(res.Err.Error()))
				continue
			}
			if !quiet {
				fmt.Fprintln(os.Stdout, printer.OKLine(res.OutPath))
			}
		}
		if failed := rep.FailureCount(); failed > 0 {
			failures += failed
			fmt.Fprintf(os.Stdout, "%s (%d of %d files failed)\n",
				printer.ErrorLine(rep.Package), failed, len(rep.Results))
			continue
		}
		packagesOK++
	}
	if !quiet {
		fmt.Fprintln(os.Stdout, printer.Summary(packagesOK, driver.CountFiles(reports), failures))
	}
}

type jsonResult struct {
	Path  string `json:"path"`
	Out   string `json:"out,omitempty"`
	Error string `json:"error,omitempty"`
}

type jsonReport struct {
	Package  string       `json:"package"`
	OK       bool         `json:"ok"`
	Error    string       `json:"error,omitempty"`
	Files    int          `json:"files"`
	Failures int          `json:"failures"`
	Results  []jsonResult `json:"results,omitempty"`
}

type jsonPayload struct {
	Reports []jsonReport   `json:"reports"`
	Timing  *observ.Report `json:"timing,omitempty"`
}

func renderJSON(reports []driver.Report, timer *observ.Timer, withTiming bool) error {
	payload := jsonPayload{Reports: make([]jsonReport, 0, len(reports))}
	for _, rep := range reports {
		jr := jsonReport{
			Package:  rep.Package,
			OK:       rep.OK(),
			Files:    len(rep.Results),
			Failures: rep.FailureCount(),
		}
		if rep.Err != nil {
			jr.Error = rep.Err.Error()
		}
		for _, res := range rep.Results {
			r := jsonResult{Path: res.Path}
			if res.OutPath != res.Path {
				r.Out = res.OutPath
			}
			if res.Err != nil {
				r.Error = res.Err.Error()
				jr.Results = append(jr.Results, r)
			}
		}
		payload.Reports = append(payload.Reports, jr)
	}
	if withTiming {
		timing := timer.Report()
		payload.Timing = &timing
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
