package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibhost/internal/fibonacci"
	"github.com/agbru/fibhost/internal/format"
	"github.com/agbru/fibhost/internal/host"
	"github.com/agbru/fibhost/internal/metrics"
)

// MetricsModel displays call statistics and runtime memory metrics.
type MetricsModel struct {
	mem       metrics.MemorySnapshot
	rss       uint64
	calls     map[host.Op]int
	errors    int
	totalTime time.Duration
	lastFib   *host.Event
	width     int
	height    int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{calls: make(map[host.Op]int)}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = metrics.MemorySnapshot(msg)
}

// UpdateRSS records the host process resident set size.
func (m *MetricsModel) UpdateRSS(rss uint64) {
	m.rss = rss
}

// RecordCall accounts for one library call.
func (m *MetricsModel) RecordCall(ev host.Event) {
	m.calls[ev.Op]++
	m.totalTime += ev.Duration
	if ev.Err != nil {
		m.errors++
	}
	if ev.Op == host.OpFib {
		e := ev
		m.lastFib = &e
	}
}

// Calls returns the number of recorded calls for op.
func (m MetricsModel) Calls(op host.Op) int { return m.calls[op] }

// AverageCall returns the mean call duration over all operations.
func (m MetricsModel) AverageCall() time.Duration {
	n := m.calls[host.OpFib] + m.calls[host.OpPrintFib]
	if n == 0 {
		return 0
	}
	return m.totalTime / time.Duration(n)
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render("CALLS"))

	colWidth := (m.width - 6) / 2
	last := "-"
	if m.lastFib != nil {
		last = fmt.Sprintf("fib(%d) = %s", m.lastFib.Index, format.FormatNumberString(fmt.Sprintf("%d", m.lastFib.Value)))
		if fibonacci.Overflows(m.lastFib.Index) {
			last += " (wrapped)"
		}
	}

	leftCol := []string{
		formatMetricCol("fib:", fmt.Sprintf("%d", m.calls[host.OpFib]), colWidth),
		formatMetricCol("Avg call:", format.FormatExecutionDuration(m.AverageCall()), colWidth),
		formatMetricCol("Heap:", formatBytes(m.mem.HeapAlloc)+" / "+formatBytes(m.mem.Sys), colWidth),
	}
	rightCol := []string{
		formatMetricCol("printfib:", fmt.Sprintf("%d", m.calls[host.OpPrintFib]), colWidth),
		formatMetricCol("Errors:", fmt.Sprintf("%d", m.errors), colWidth),
		formatMetricCol("RSS:", formatBytes(m.rss), colWidth),
	}
	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("Last:", last, 0))
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("GC:", fmt.Sprintf("%d (%.1fms), %d goroutines",
		m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6, m.mem.Goroutines), 0))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-10s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
