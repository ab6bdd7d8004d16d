// Package sysmon samples system and host-process resource usage for the
// dashboard header.
package sysmon

import (
	"os"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // system-wide, 0.0 .. 100.0
	MemPercent float64 // system-wide, 0.0 .. 100.0
	Load1      float64 // 1-minute load average, 0 where unsupported
	HostRSS    uint64  // resident set size of this process in bytes
}

// Sampler collects Stats. The zero value samples system-wide figures only.
type Sampler struct {
	proc *process.Process
}

// NewSampler returns a Sampler that also reports the current process RSS.
func NewSampler() *Sampler {
	p, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // pid fits in int32
	if err != nil {
		return &Sampler{}
	}
	return &Sampler{proc: p}
}

// Sample collects one snapshot. CPU uses interval=0 (delta since last call).
// Fields whose source fails are left at zero.
func (s *Sampler) Sample() Stats {
	var st Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		st.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		st.MemPercent = vmem.UsedPercent
	}
	if avg, err := load.Avg(); err == nil && avg != nil {
		st.Load1 = avg.Load1
	}
	if s != nil && s.proc != nil {
		if info, err := s.proc.MemoryInfo(); err == nil && info != nil {
			st.HostRSS = info.RSS
		}
	}
	return st
}

var defaultSampler = NewSampler()

// Sample collects a snapshot with the package default sampler.
func Sample() Stats {
	return defaultSampler.Sample()
}
