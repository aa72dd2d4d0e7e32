package show

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/beatscope/internal/frames"
)

var (
	prerenderHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	prerenderHelpStyle   = lipgloss.NewStyle().Faint(true)
)

// prerenderProgressMsg carries the number of frames extracted so far.
type prerenderProgressMsg int

// prerenderDoneMsg signals the extraction goroutine finished.
type prerenderDoneMsg struct {
	seq frames.Sequence
	err error
}

// prerenderModel is the Bubbletea model shown while ffmpeg converts the
// video to ASCII frames, before playback starts.
type prerenderModel struct {
	spinner  spinner.Model
	bar      progress.Model
	total    int
	done     int
	result   *prerenderDoneMsg
	progCh   chan int
	extract  func(onProgress func(int)) (frames.Sequence, error)
	quitting bool
}

func newPrerender(total int, extract func(onProgress func(int)) (frames.Sequence, error)) prerenderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	bar := progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
		progress.WithoutPercentage(),
	)
	bar.Width = 40

	return prerenderModel{
		spinner: s,
		bar:     bar,
		total:   total,
		progCh:  make(chan int, 64),
		extract: extract,
	}
}

func (m prerenderModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startExtract(), m.waitForProgress())
}

func (m prerenderModel) startExtract() tea.Cmd {
	return func() tea.Msg {
		seq, err := m.extract(func(n int) {
			select {
			case m.progCh <- n:
			default:
			}
		})
		close(m.progCh)
		return prerenderDoneMsg{seq: seq, err: err}
	}
}

func (m prerenderModel) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		n, ok := <-m.progCh
		if !ok {
			return nil
		}
		return prerenderProgressMsg(n)
	}
}

func (m prerenderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.result = &prerenderDoneMsg{err: fmt.Errorf("prerender cancelled")}
			return m, tea.Quit
		}

	case prerenderProgressMsg:
		m.done = int(msg)
		return m, m.waitForProgress()

	case prerenderDoneMsg:
		m.result = &msg
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 8
		if m.bar.Width < 20 {
			m.bar.Width = 20
		}
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}
		return m, nil
	}

	return m, nil
}

func (m prerenderModel) View() string {
	if m.quitting {
		return ""
	}

	lines := "\n"
	lines += "  " + prerenderHeaderStyle.Render("beatscope") + "\n"
	lines += "\n"
	lines += "  " + m.spinner.View() + " Prerendering frames...\n"
	if m.total > 0 {
		pct := float64(m.done) / float64(m.total)
		lines += "  " + m.bar.ViewAs(pct) + fmt.Sprintf("  %d/%d", m.done, m.total) + "\n"
	}
	lines += "\n"
	lines += "  " + prerenderHelpStyle.Render("q to cancel") + "\n"
	return lines
}

// extractWithProgress runs the extraction behind the prerender screen and
// returns the decoded sequence.
func extractWithProgress(ctx context.Context, path string, budget int, fps float64) (frames.Sequence, error) {
	model := newPrerender(budget, func(onProgress func(int)) (frames.Sequence, error) {
		return frames.Extract(ctx, path, budget, fps, onProgress)
	})

	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return frames.Sequence{}, err
	}

	fm, ok := final.(prerenderModel)
	if !ok || fm.result == nil {
		return frames.Sequence{}, fmt.Errorf("prerender cancelled")
	}
	return fm.result.seq, fm.result.err
}
