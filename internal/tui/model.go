package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/fibhost/internal/errors"
	"github.com/agbru/fibhost/internal/fibonacci"
	"github.com/agbru/fibhost/internal/host"
	"github.com/agbru/fibhost/internal/metrics"
	"github.com/agbru/fibhost/internal/sysmon"
)

// LoadFunc loads the library that the dashboard drives. out is the shared
// Output the library must write to.
type LoadFunc func(ctx context.Context, out fibonacci.Output) (fibonacci.Library, error)

// Session describes what the dashboard runs.
type Session struct {
	// Title names the library in the header, e.g. "iterative (builtin)".
	Title string
	// Load is called at start and on every restart.
	Load LoadFunc
	// HostOptions configure the driver. Pause and observer options are
	// added by the dashboard.
	HostOptions []host.Option
	// Instrument, when set, is called once per run after the library is
	// loaded. The run uses the returned context and observers, and end
	// receives the run's result.
	Instrument func(ctx context.Context, lib fibonacci.Library) (runCtx context.Context, observers []host.Observer, end func(error))
}

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// outputWidth returns the width allocated to the output panel.
func (l LayoutManager) outputWidth() int {
	return l.width * OutputPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column (metrics + chart).
func (l LayoutManager) rightWidth() int {
	return l.width - l.outputWidth()
}

// metricsHeight returns the height allocated to the metrics panel.
func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelHeight, l.bodyHeight()/2)
}

// chartHeight returns the height allocated to the chart panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Layout constants for the TUI dashboard.
const (
	headerHeight            = 1
	footerHeight            = 1
	minBodyHeight           = 4
	OutputPanelWidthPercent = 55
	MetricsPanelHeight      = 8
	tickInterval            = 500 * time.Millisecond
)

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header  HeaderModel
	output  OutputModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	session   Session
	ref       *programRef
	sampler   *sysmon.Sampler
	memory    *metrics.MemoryCollector
	paused    bool
}

// NewModel creates a new TUI model.
func NewModel(parentCtx context.Context, session Session) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header:  NewHeaderModel(session.Title),
		output:  NewOutputModel(),
		metrics: NewMetricsModel(),
		chart:   NewChartModel(),
		footer:  NewFooterModel(),
		keymap:  DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		session:   session,
		ref:       &programRef{},
		sampler:   sysmon.NewSampler(),
		memory:    metrics.NewMemoryCollector(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.session, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case LibraryMsg:
		if msg.Generation == m.generation {
			m.header.SetLibraryVersion(msg.Version)
		}
		return m, nil

	case CallMsg:
		m.metrics.RecordCall(msg.Event)
		if msg.Event.Op == host.OpFib {
			m.chart.AddCall(msg.Event.Duration)
		}
		m.footer.SetWaiting(time.Time{})
		return m, nil

	case OutputMsg:
		if !m.paused {
			m.output.AddLine(msg)
		}
		return m, nil

	case PauseMsg:
		m.footer.SetWaiting(msg.Until)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(m.memory), sampleSysStatsCmd(m.sampler), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent, msg.Load1)
		m.metrics.UpdateRSS(msg.HostRSS)
		return m, nil

	case RunDoneMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from previous run
		}
		m.done = true
		m.exitCode = apperrors.ExitCode(msg.Err)
		m.header.SetDone()
		m.chart.SetDone(m.header.endTime.Sub(m.header.startTime))
		m.footer.SetWaiting(time.Time{})
		m.footer.SetDone(true)
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.output.AddError(time.Now(), msg.Err)
			m.footer.SetError(true)
		} else if msg.Err == nil {
			m.output.AddInfo(time.Now(), "run complete")
		}
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.header.Reset()
		m.output.Reset()
		m.chart.Reset()
		m.metrics = NewMetricsModel()
		m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.footer.SetWaiting(time.Time{})
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			startRunCmd(m.ref, m.ctx, m.session, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.output.Update(msg)
		return m, nil
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	output := m.output.renderToHeight(lipgloss.Height(rightCol))
	body := lipgloss.JoinHorizontal(lipgloss.Top, output, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

// ExitCode returns the process exit code for the finished session.
func (m Model) ExitCode() int { return m.exitCode }

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.output.SetSize(m.outputWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, session Session) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, session)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd returns a tea.Cmd that loads the library and runs the host
// loop with the dashboard as output and observer.
func startRunCmd(ref *programRef, ctx context.Context, session Session, gen uint64) tea.Cmd {
	return func() tea.Msg {
		out := newLineSink(ref)
		lib, err := session.Load(ctx, out)
		if err != nil {
			return RunDoneMsg{Err: err, Generation: gen}
		}
		ref.Send(LibraryMsg{Version: lib.Version(), Generation: gen})

		opts := append([]host.Option{}, session.HostOptions...)
		opts = append(opts,
			host.WithPause(pauseFunc(ref)),
			host.WithObserver(&callObserver{ref: ref, now: time.Now}),
		)
		runCtx, end := ctx, func(error) {}
		if session.Instrument != nil {
			var observers []host.Observer
			runCtx, observers, end = session.Instrument(ctx, lib)
			for _, o := range observers {
				opts = append(opts, host.WithObserver(o))
			}
		}
		err = host.New(lib, out, opts...).Run(runCtx)
		end(err)
		return RunDoneMsg{Err: err, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg(mc.Snapshot())
	}
}

// sampleSysStatsCmd reads system and process stats and returns a SysStatsMsg.
func sampleSysStatsCmd(s *sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(s.Sample())
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
