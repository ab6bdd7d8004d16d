package tui

import (
	"time"

	"github.com/agbru/fibhost/internal/host"
	"github.com/agbru/fibhost/internal/metrics"
	"github.com/agbru/fibhost/internal/sysmon"
)

// CallMsg carries one library call event.
type CallMsg struct {
	Event host.Event
	At    time.Time
}

// OutputMsg carries one flushed output line.
type OutputMsg struct {
	Line string
	At   time.Time
}

// LibraryMsg reports the loaded library.
type LibraryMsg struct {
	Version    uint16
	Generation uint64
}

// PauseMsg reports that the host is pausing until Until.
type PauseMsg struct {
	Until time.Time
}

// RunDoneMsg reports the end of the host loop.
type RunDoneMsg struct {
	Err        error
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory snapshot.
type MemStatsMsg metrics.MemorySnapshot

// SysStatsMsg carries a system snapshot.
type SysStatsMsg sysmon.Stats

// ContextCancelledMsg reports cancellation of a run context.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
