package driver

import "ufofmt/internal/ufo"

// Status captures progress state of one file task.
type Status string

const (
	// StatusDone indicates the file was rewritten successfully.
	StatusDone Status = "done"
	// StatusError indicates the task failed.
	StatusError Status = "error"
)

// Event reports the completion of one file task, or a package-level path
// failure when PackageLevel is set (File then names the package and Kind is
// meaningless).
type Event struct {
	File string
	Kind ufo.FileKind
	// PackageLevel marks a package path failure. Such events have no task
	// slot behind them and must not count toward file task totals.
	PackageLevel bool
	Status       Status
	Err          error
}

// ProgressSink consumes task completion events. Implementations must be
// safe for concurrent use; workers publish directly.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent implements ProgressSink.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
