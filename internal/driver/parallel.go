package driver

import (
	"context"
	"runtime"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"ufofmt/internal/config"
	"ufofmt/internal/ufo"
)

// Options configures the orchestrator.
type Options struct {
	// Jobs bounds the worker pool. Values <= 0 select the available
	// hardware parallelism.
	Jobs int64
	// Progress receives one event per completed file task. Optional.
	Progress ProgressSink
	// Logger receives debug diagnostics. Optional.
	Logger Logger
}

// Logger is the minimal structured-logging surface the driver needs.
type Logger interface {
	Debug(msg any, keyvals ...any)
}

func (o Options) workerLimit(tasks int) int {
	jobs, err := safecast.Conv[int](o.Jobs)
	if err != nil || jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return min(jobs, tasks)
}

// FormatPackage fans one task per file out to the worker pool and collects
// the results. Tasks share only read-only state (the package enumeration
// and the policy); each goroutine writes solely to its own index of the
// pre-sized result slice, so aggregation needs no lock. Once dispatched,
// every task runs to completion: a failure is recorded in its slot and
// never cancels siblings.
func FormatPackage(ctx context.Context, pkg *ufo.Package, policy *config.Policy, opts Options) Report {
	report := Report{Package: pkg.Path}
	if len(pkg.Files) == 0 {
		return report
	}
	if opts.Logger != nil {
		opts.Logger.Debug("dispatching package", "path", pkg.Path, "files", len(pkg.Files))
	}

	results := make([]Result, len(pkg.Files))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(opts.workerLimit(len(pkg.Files)))
	for i, file := range pkg.Files {
		i, file := i, file
		g.Go(func() error {
			// Index i is unique per goroutine; no mutex needed.
			results[i] = runTask(file, policy)
			status := StatusDone
			if results[i].Err != nil {
				status = StatusError
			}
			emit(opts.Progress, Event{File: file.Path, Kind: file.Kind, Status: status, Err: results[i].Err})
			return nil
		})
	}
	// Workers never return errors; Wait only fences completion.
	_ = g.Wait()

	report.Results = results
	return report
}
