// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     calculator
// Description: Bubbletea model for the interactive tax calculator
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package calculator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	calc "github.com/msto63/taxwise/internal/calculator"
	"github.com/msto63/taxwise/internal/chart"
	"github.com/msto63/taxwise/internal/income"
	"github.com/msto63/taxwise/internal/report"
	"github.com/msto63/taxwise/pkg/core/apperror"
	"github.com/msto63/taxwise/pkg/core/logging"
)

type screen int

const (
	screenInput screen = iota
	screenResults
)

// keyMap holds the key bindings
type keyMap struct {
	Calculate key.Binding
	Breakdown key.Binding
	Export    key.Binding
	Back      key.Binding
	Theme     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Calculate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate")),
		Breakdown: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "breakdown")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export pdf")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "calculate again")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Config holds TUI configuration
type Config struct {
	Calculator *calc.Service
	ExportDir  string
	Light      bool
	Logger     *logging.Logger
}

// Model is the main Bubbletea model for the calculator
type Model struct {
	// State
	width         int
	height        int
	screen        screen
	theme         Theme
	showBreakdown bool
	busy          bool
	err           error
	status        string

	// Components
	input  textinput.Model
	help   help.Model
	keys   keyMap
	styles Styles

	// Data
	calc      *calc.Service
	report    *report.Report
	exportDir string
	logger    *logging.Logger
}

// New creates a new calculator model
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = "₦ "
	ti.Placeholder = "e.g. 500,000"
	ti.CharLimit = 24
	ti.Width = 24
	ti.Focus()

	theme := DarkTheme
	if cfg.Light {
		theme = LightTheme
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	exportDir := cfg.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	return Model{
		width:     80,
		screen:    screenInput,
		theme:     theme,
		input:     ti,
		help:      help.New(),
		keys:      defaultKeyMap(),
		styles:    NewStyles(theme),
		calc:      cfg.Calculator,
		exportDir: exportDir,
		logger:    logger,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case calculatedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = ""
		m.report = msg.report
		m.showBreakdown = false
		m.screen = screenResults
		m.input.Blur()

	case exportedMsg:
		m.busy = false
		if msg.err != nil {
			m.logger.Error("PDF export failed", "error", msg.err)
			m.status = "Export failed: " + apperror.MessageOf(msg.err)
		} else {
			m.status = "Saved " + msg.path
		}
	}

	var cmd tea.Cmd
	if m.screen == screenInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil
	}

	if m.screen == screenResults {
		switch {
		case key.Matches(msg, m.keys.Breakdown):
			m.showBreakdown = !m.showBreakdown
		case key.Matches(msg, m.keys.Export):
			if !m.busy && m.report != nil {
				m.busy = true
				m.status = "Exporting..."
				return m, m.exportPDF(m.report)
			}
		case key.Matches(msg, m.keys.Back):
			m.screen = screenInput
			m.report = nil
			m.status = ""
			m.input.SetValue("")
			return m, m.input.Focus()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Calculate) {
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.calculate(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.input.SetValue(income.FormatLive(m.input.Value()))
	m.input.CursorEnd()
	m.err = nil
	return m, cmd
}

func (m *Model) toggleTheme() {
	if m.theme.Light {
		m.theme = DarkTheme
	} else {
		m.theme = LightTheme
	}
	m.styles = NewStyles(m.theme)
}

// calculate runs the calculation for raw as a command
func (m Model) calculate(raw string) tea.Cmd {
	svc := m.calc
	return func() tea.Msg {
		rep, err := svc.Calculate(context.Background(), raw)
		return calculatedMsg{report: rep, err: err}
	}
}

// exportPDF writes rep into the export directory
func (m Model) exportPDF(rep *report.Report) tea.Cmd {
	dir := m.exportDir
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportedMsg{err: apperror.Wrap(err, apperror.CodeExportFailed, "failed to create export directory")}
		}
		path := filepath.Join(dir, report.Filename(rep))
		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{err: apperror.Wrap(err, apperror.CodeExportFailed, "failed to create export file")}
		}
		if err := report.WritePDF(f, rep); err != nil {
			f.Close()
			return exportedMsg{err: err}
		}
		if err := f.Close(); err != nil {
			return exportedMsg{err: apperror.Wrap(err, apperror.CodeExportFailed, "failed to write export file")}
		}
		return exportedMsg{path: path}
	}
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Logo.Render(Logo))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtitle.Render("Nigeria 2026 income tax"))
	b.WriteString("\n\n")

	if m.screen == screenResults && m.report != nil {
		b.WriteString(m.renderResults())
	} else {
		b.WriteString(m.renderInput())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderInput() string {
	var b strings.Builder
	b.WriteString("Enter your monthly income\n")
	b.WriteString(m.styles.Input.Render(m.input.View()))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(apperror.MessageOf(m.err)))
	}
	return b.String()
}

func (m Model) renderResults() string {
	rep := m.report
	var b strings.Builder

	cards := make([]string, 0, 4)
	for _, s := range rep.Stats() {
		style := m.styles.Card
		if s.Highlight {
			style = m.styles.CardStrong
		}
		cards = append(cards, style.Render(m.styles.CardLabel.Render(s.Label)+"\n"+s.Value))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1]))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3]))
	b.WriteString("\n")

	b.WriteString(m.styles.Rate.Render("Effective Tax Rate: " + rep.EffectiveRate()))
	b.WriteString("\n")
	b.WriteString(m.styles.Insight.Width(m.contentWidth()).Render(rep.Insight))
	b.WriteString("\n")

	if len(rep.Chart) > 0 {
		b.WriteString(m.styles.Section.Render("Tax Distribution by Bracket"))
		b.WriteString("\n")
		b.WriteString(chart.RenderBars(rep.Chart, m.contentWidth()/3, rep.Money(), m.theme.Light))
		b.WriteString("\n")
	}

	if m.showBreakdown {
		b.WriteString(m.styles.Section.Render("How It's Calculated"))
		b.WriteString("\n")
		for _, line := range calc.NewResponse(rep).Formatted.Breakdown {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Total: %s", rep.Money().Format(rep.Result.TotalTax))))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Muted.Render(report.Disclaimer))
	return b.String()
}

func (m Model) renderHelp() string {
	var bindings []key.Binding
	if m.screen == screenResults {
		bindings = []key.Binding{m.keys.Breakdown, m.keys.Export, m.keys.Back, m.keys.Theme, m.keys.Quit}
	} else {
		bindings = []key.Binding{m.keys.Calculate, m.keys.Theme, m.keys.Quit}
	}
	return m.help.ShortHelpView(bindings)
}

func (m Model) contentWidth() int {
	if m.width < 40 {
		return 40
	}
	return m.width - 4
}

// Run starts the calculator TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
