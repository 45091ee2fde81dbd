package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibdev/internal/fibdev"
	"github.com/agbru/fibdev/internal/format"
)

// Layout constants for the explorer.
const (
	// DefaultHistory is the number of timings kept before the first resize.
	DefaultHistory = 32
	// positionBarWidth is the width of the position gauge.
	positionBarWidth = 46
	minPanelWidth    = 40
)

// TickMsg refreshes the header timer.
type TickMsg time.Time

// Result describes the most recent write.
type Result struct {
	Position  int64
	Value     string
	ElapsedNs int64
	Err       error
}

// Model is the bubbletea model of the device explorer. It drives a single
// open handle; the caller owns the handle and releases it after Run.
type Model struct {
	handle *fibdev.Handle
	bufLen int

	header  HeaderModel
	keymap  KeyMap
	help    help.Model
	timings *TimingWindow

	last   *Result
	writes int

	width  int
	height int
}

// NewModel creates an explorer for h, writing into bufLen-byte buffers.
func NewModel(h *fibdev.Handle, bufLen int, version string) Model {
	if bufLen <= 0 {
		bufLen = 32
	}
	return Model{
		handle:  h,
		bufLen:  bufLen,
		header:  NewHeaderModel(version),
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		timings: NewTimingWindow(DefaultHistory),
	}
}

// Init starts the header timer.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.timings.Resize(max(m.panelWidth()-4, 1))
		return m, nil

	case TickMsg:
		return m, tickCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Prev):
		_, _ = m.handle.Seek(-1, fibdev.SeekRelative)
	case key.Matches(msg, m.keymap.Next):
		_, _ = m.handle.Seek(1, fibdev.SeekRelative)
	case key.Matches(msg, m.keymap.Start):
		_, _ = m.handle.Seek(0, fibdev.SeekAbsolute)
	case key.Matches(msg, m.keymap.End):
		_, _ = m.handle.Seek(0, fibdev.SeekFromBound)
	case key.Matches(msg, m.keymap.Write):
		m.write()
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// write delivers the term at the current position and records its timing.
func (m *Model) write() {
	buf := fibdev.NewCallerBuffer(m.bufLen)
	pos := m.handle.Position()
	elapsed, err := m.handle.Write(buf, m.bufLen)

	r := &Result{Position: pos, ElapsedNs: elapsed, Err: err}
	if err == nil {
		r.Value = string(fibdev.TermText(buf))
		m.timings.Push(float64(elapsed))
		m.writes++
	}
	m.last = r
}

// Last returns the most recent write, or nil before the first one.
func (m Model) Last() *Result { return m.last }

// Position returns the handle position.
func (m Model) Position() int64 { return m.handle.Position() }

func (m Model) panelWidth() int {
	return max(m.width-2, minPanelWidth)
}

// View renders the explorer.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	var b strings.Builder
	b.WriteString(m.header.View())
	b.WriteString("\n")
	b.WriteString(panelStyle.Width(m.panelWidth()).Render(m.renderBody()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) renderBody() string {
	pos := m.handle.Position()
	lines := []string{
		statusHeldStyle.Render("● session held"),
		"",
		labelStyle.Render("Position  ") + valueStyle.Render(fmt.Sprintf("%d / %d", pos, fibdev.Bound)),
		renderPositionBar(pos),
		"",
	}
	lines = append(lines, m.renderResult()...)
	lines = append(lines, "",
		labelStyle.Render(fmt.Sprintf("Timings (%d writes)", m.writes)),
		sparklineStyle.Render(RenderSparkline(ScaleToPercent(m.timings.Slice()))),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderResult() []string {
	if m.last == nil {
		return []string{statusFreeStyle.Render("Press enter to write the term at the cursor.")}
	}
	if m.last.Err != nil {
		return []string{errorStyle.Render(fmt.Sprintf("F(%d): %v", m.last.Position, m.last.Err))}
	}
	return []string{
		labelStyle.Render("Value     ") + valueStyle.Render(fmt.Sprintf("F(%d) = %s", m.last.Position, m.last.Value)),
		labelStyle.Render("Elapsed   ") + valueStyle.Render(format.FormatNanos(m.last.ElapsedNs)),
	}
}

// renderPositionBar draws pos as a marker on a [0, Bound] gauge.
func renderPositionBar(pos int64) string {
	mark := int(pos * (positionBarWidth - 1) / fibdev.Bound)
	return positionDimStyle.Render(strings.Repeat("─", mark)) +
		positionBarStyle.Render("◆") +
		positionDimStyle.Render(strings.Repeat("─", positionBarWidth-1-mark))
}

// tickCmd returns a command that sends a TickMsg after one second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Run opens a session on dev and runs the explorer until the user quits or
// ctx is done. The session is released on return. It returns ErrBusy when
// the session is already held.
func Run(ctx context.Context, dev *fibdev.Device, bufLen int, version string, opts ...tea.ProgramOption) error {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	h, err := dev.Open()
	if err != nil {
		return err
	}
	defer h.Release()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(h, bufLen, version), opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
