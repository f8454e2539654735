package driver

import (
	"context"

	"ufofmt/internal/config"
	"ufofmt/internal/ufo"
)

// FormatUFOs applies the formatter to every UFO path argument. A path that
// fails validation yields a report carrying the path error; the remaining
// arguments are still processed, mirroring the file-level isolation inside
// each package.
func FormatUFOs(ctx context.Context, paths []string, policy *config.Policy, opts Options) []Report {
	reports := make([]Report, 0, len(paths))
	for _, path := range paths {
		pkg, err := ufo.Open(path)
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Debug("skipping invalid package", "path", path, "err", err)
			}
			emit(opts.Progress, Event{File: path, PackageLevel: true, Status: StatusError, Err: err})
			reports = append(reports, Report{Package: path, Err: err})
			continue
		}
		reports = append(reports, FormatPackage(ctx, pkg, policy, opts))
	}
	return reports
}

// AnyFailure reports whether any package-level or file-level error occurred
// across all reports; it drives the process exit status.
func AnyFailure(reports []Report) bool {
	for i := range reports {
		if !reports[i].OK() {
			return true
		}
	}
	return false
}

// CountFiles returns the total number of file tasks across all reports.
func CountFiles(reports []Report) int {
	n := 0
	for i := range reports {
		n += len(reports[i].Results)
	}
	return n
}
