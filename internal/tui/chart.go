package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/fibhost/internal/format"
)

const (
	defaultHistory = 64
	minChartRows   = 2
)

// ChartModel plots recent call durations and system load.
type ChartModel struct {
	durations *Samples // microseconds per fib call
	cpu       *Samples
	mem       *Samples
	load1     float64
	elapsed   time.Duration
	done      bool
	width     int
	height    int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		durations: NewSamples(defaultHistory),
		cpu:       NewSamples(defaultHistory),
		mem:       NewSamples(defaultHistory),
	}
}

// SetSize updates dimensions and resizes the sample history to the width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	inner := max(w-4, 1)
	c.durations.SetWindow(inner * 2)
	c.cpu.SetWindow(max(inner-12, 1))
	c.mem.SetWindow(max(inner-12, 1))
}

// AddCall records the duration of a fib call.
func (c *ChartModel) AddCall(d time.Duration) {
	c.durations.Add(float64(d.Microseconds()))
}

// UpdateSysStats records one system sample.
func (c *ChartModel) UpdateSysStats(cpuPct, memPct, load1 float64) {
	c.cpu.Add(cpuPct)
	c.mem.Add(memPct)
	c.load1 = load1
}

// SetDone freezes the chart with the total elapsed time.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.elapsed = elapsed
}

// Reset clears all samples.
func (c *ChartModel) Reset() {
	c.durations.Clear()
	c.cpu.Clear()
	c.mem.Clear()
	c.done = false
	c.elapsed = 0
}

// View renders the chart panel. Sparklines are dropped first when space is short.
func (c ChartModel) View() string {
	inner := max(c.width-4, 1)
	var b strings.Builder

	title := "FIB CALL TIME"
	if c.durations.Len() > 0 {
		title += fmt.Sprintf(" (peak %s)", format.FormatExecutionDuration(time.Duration(c.durations.Peak())*time.Microsecond))
	}
	if c.done {
		title += " - done in " + format.FormatExecutionDuration(c.elapsed)
	}
	b.WriteString(panelTitleStyle.Render(title))

	showSparklines := c.height >= 9
	rows := c.height - 3
	if showSparklines {
		rows -= 2
	}
	if rows >= minChartRows {
		for _, line := range RenderBrailleChart(ScalePercent(c.durations.Values()), inner, rows) {
			b.WriteString("\n")
			b.WriteString(chartLineStyle.Render(line))
		}
	}

	if showSparklines {
		b.WriteString("\n")
		b.WriteString(metricLabelStyle.Render(fmt.Sprintf("CPU %5.1f%% ", c.cpu.Latest())))
		b.WriteString(cpuSparklineStyle.Render(RenderSparkline(c.cpu.Values())))
		b.WriteString("\n")
		b.WriteString(metricLabelStyle.Render(fmt.Sprintf("MEM %5.1f%% ", c.mem.Latest())))
		b.WriteString(memSparklineStyle.Render(RenderSparkline(c.mem.Values())))
		if c.load1 > 0 {
			b.WriteString(metricLabelStyle.Render(fmt.Sprintf("  load %.2f", c.load1)))
		}
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}
