package repositories

// ProgressReporter is an abstract sink for migration progress events. It
// has no influence on control flow; implementations must tolerate Stop
// without a preceding nonzero Start (empty project list).
type ProgressReporter interface {
	Start(total int)
	Increment()
	Stop()
}

// NopProgressReporter discards every event. Orchestration code always
// holds a reporter so it never branches on presence.
type NopProgressReporter struct{}

func (NopProgressReporter) Start(_ int) {}
func (NopProgressReporter) Increment()  {}
func (NopProgressReporter) Stop()       {}
