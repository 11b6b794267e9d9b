// Package tui provides a BubbleTea preview of the toast queue. It runs the
// real toast manager against an in-memory host and draws the result in the
// terminal.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/cliptoast/internal/anim"
	"github.com/jmylchreest/cliptoast/internal/config"
	"github.com/jmylchreest/cliptoast/internal/layout"
	"github.com/jmylchreest/cliptoast/internal/loop"
	"github.com/jmylchreest/cliptoast/internal/toast"
)

const (
	refreshInterval = 33 * time.Millisecond
	sidebarWidth    = 36
)

var (
	sampleMessages = []string{
		"Clipboard translated",
		"Build finished in 42s",
		"3 new messages",
		"Battery at 15%",
		"Download complete",
	}

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	screenStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the preview's BubbleTea model.
type Model struct {
	inbox  *toast.Inbox
	canvas *Canvas
	keys   KeyMap
	help   help.Model

	status   toast.Status
	frame    []Pane
	selected int
	counter  int
	started  time.Time

	width    int
	height   int
	ready    bool
	showHelp bool

	statusMsg string
	statusErr bool

	copyText func(string) error
}

type tickMsg time.Time

type snapshotMsg struct {
	status toast.Status
	frame  []Pane
	err    error
}

type flashMsg struct {
	text  string
	isErr bool
}

type clearFlashMsg struct{}

// New creates a preview model that drives inbox and draws canvas.
func New(inbox *toast.Inbox, canvas *Canvas) Model {
	return Model{
		inbox:    inbox,
		canvas:   canvas,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		started:  time.Now(),
		copyText: clipboard.WriteAll,
	}
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) snapshot() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	st, err := m.inbox.Status(ctx)
	return snapshotMsg{status: st, frame: m.canvas.Frame(), err: err}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.snapshot, tick())

	case snapshotMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		m.status = msg.status
		m.frame = msg.frame
		m.clampSelection()
		return m, nil

	case flashMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearFlashMsg{}
		})

	case clearFlashMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

func (m *Model) clampSelection() {
	if n := len(m.status.Visible); m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

func (m Model) selectedToast() (toast.Info, bool) {
	if m.selected < 0 || m.selected >= len(m.status.Visible) {
		return toast.Info{}, false
	}
	return m.status.Visible[m.selected], true
}

func flash(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return flashMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.submitSample()
		return m, nil

	case key.Matches(msg, m.keys.Burst):
		for range 5 {
			m.submitSample()
		}
		return m, flash("queued 5 toasts", false)

	case key.Matches(msg, m.keys.DismissAll):
		m.inbox.DismissAll()
		return m, flash("dismissed all", false)

	case key.Matches(msg, m.keys.Next):
		if n := len(m.status.Visible); n > 0 {
			m.selected = (m.selected + 1) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if n := len(m.status.Visible); n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.LeaveAll):
		m.inbox.Do(func(mgr *toast.Manager) { mgr.PointerLeaveAll() })
		return m, nil
	}

	info, ok := m.selectedToast()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Leave):
		m.onSelected(info.ID, (*toast.Manager).PointerLeave)
	case key.Matches(msg, m.keys.Click):
		m.onSelected(info.ID, (*toast.Manager).Click)
	case key.Matches(msg, m.keys.Close):
		m.onSelected(info.ID, (*toast.Manager).RequestClose)
	case key.Matches(msg, m.keys.Copy):
		text := info.Message
		copyText := m.copyText
		return m, func() tea.Msg {
			if err := copyText(text); err != nil {
				return flashMsg{text: "Copy failed: " + err.Error(), isErr: true}
			}
			return flashMsg{text: "Copied to clipboard"}
		}
	}
	return m, nil
}

func (m *Model) submitSample() {
	m.counter++
	message := sampleMessages[(m.counter-1)%len(sampleMessages)]
	m.inbox.Submit(fmt.Sprintf("Toast #%d", m.counter), message)
}

// onSelected runs op for id on the manager loop. The toast may be gone by
// then, which is not an error worth showing.
func (m Model) onSelected(id string, op func(*toast.Manager, string) error) {
	m.inbox.Do(func(mgr *toast.Manager) {
		_ = op(mgr, id)
	})
}

// View renders the preview.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := headerStyle.Render(fmt.Sprintf("cliptoast preview  anchor=%s  queued=%d  visible=%d/%d",
		m.status.Anchor, len(m.status.Queued), len(m.status.Visible), toast.VisibleLimit))

	footer := m.help.View(m.keys)
	if m.showHelp {
		footer = m.help.FullHelpView(m.keys.FullHelp())
	}
	if m.statusMsg != "" {
		style := dimStyle
		if m.statusErr {
			style = errStyle
		}
		footer = style.Render(m.statusMsg) + "\n" + footer
	}

	used := lipgloss.Height(header) + lipgloss.Height(footer) + 2
	cols := max(m.width-sidebarWidth-2, 10)
	rows := max(m.height-used, 5)

	screen := screenStyle.Render(Render(m.frame, m.canvas.ScreenSize(), cols, rows))
	body := lipgloss.JoinHorizontal(lipgloss.Top, screen, m.viewSidebar(rows))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) viewSidebar(rows int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Visible") + "\n")
	if len(m.status.Visible) == 0 {
		b.WriteString(dimStyle.Render("  none") + "\n")
	}
	for i, info := range m.status.Visible {
		line := fmt.Sprintf("%d %-8s %3.0f%% %s", info.Slot, info.State, info.Opacity*100, info.Title)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + headerStyle.Render("Queued") + "\n")
	if len(m.status.Queued) == 0 {
		b.WriteString(dimStyle.Render("  empty") + "\n")
	}
	for _, q := range m.status.Queued {
		b.WriteString(fmt.Sprintf("  %s %s\n", q.Title, dimStyle.Render(humanize.RelTime(q.QueuedAt, time.Now(), "ago", "from now"))))
	}

	b.WriteString("\n" + dimStyle.Render("running "+humanize.RelTime(m.started, time.Now(), "", "")))

	return lipgloss.NewStyle().Width(sidebarWidth).MaxHeight(rows+2).PaddingLeft(1).Render(b.String())
}

// RunOptions configures the preview.
type RunOptions struct {
	Config *config.Config
	Logger *slog.Logger
	// Screen is the virtual screen the toasts are laid out on.
	Screen layout.Size
}

// Run starts the preview and blocks until the user quits.
func Run(opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	screen := opts.Screen
	if screen.Width <= 0 || screen.Height <= 0 {
		screen = layout.Size{Width: 1920, Height: 1080}
	}

	lp := loop.New(logger)
	canvas := NewCanvas(screen)
	mgr, err := toast.NewManager(canvas, lp, anim.NewDriver(lp, 16*time.Millisecond), toast.Options{
		Anchor:       cfg.Anchor(),
		LiveDuration: cfg.Timeouts.Live.Duration(),
		ToastSize:    cfg.ToastSize(),
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	inbox := toast.NewInbox(lp, mgr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = lp.Run(ctx)
	}()
	inbox.Do(func(m *toast.Manager) { m.Start() })

	p := tea.NewProgram(New(inbox, canvas), tea.WithAltScreen())
	_, err = p.Run()

	stopped := make(chan struct{})
	inbox.Do(func(m *toast.Manager) {
		m.Stop()
		close(stopped)
	})
	select {
	case <-stopped:
	case <-time.After(time.Second):
		logger.Warn("toast manager did not stop in time")
	}
	cancel()
	<-done
	return err
}
