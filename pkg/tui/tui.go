// Package tui provides a terminal user interface for bank2patch
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bank2patch/pkg/bank"
	"bank2patch/pkg/decode"
	"bank2patch/pkg/patch"
)

// Analog-panel color scheme
var (
	panelAmber = lipgloss.Color("#FFB000")
	panelCream = lipgloss.Color("#F5F0E1")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(panelAmber).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(panelAmber).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(panelCream).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(panelAmber).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(panelAmber).
			Padding(1, 2)

	docStyle = lipgloss.NewStyle().
			Foreground(panelCream).
			PaddingLeft(2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateFilePicker
	StateLoading
	StateBrowse
	StateDetail
	StateResult
)

// menuAction selects what happens once a bank file is picked.
type menuAction int

const (
	actionBrowse menuAction = iota
	actionImport
	actionExit
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	Action      menuAction
}

var menuItems = []MenuItem{
	{Title: "Browse Bank", Description: "Decode a bank CSV and inspect each patch document", Action: actionBrowse},
	{Title: "Import Bank", Description: "Decode a bank CSV and write one patch file per preset", Action: actionImport},
	{Title: "Exit", Description: "Exit the application", Action: actionExit},
}

// Model represents the TUI model
type Model struct {
	state        State
	schema       decode.Schema
	outDir       string
	menuIndex    int
	filePicker   filepicker.Model
	spinner      spinner.Model
	selectedFile string
	action       menuAction
	patches      []*patch.Patch
	skipped      int
	patchIndex   int
	document     string
	stats        *bank.ImportStats
	err          error
	width        int
	height       int
}

// bankLoadedMsg signals that a bank was decoded for browsing
type bankLoadedMsg struct {
	patches []*patch.Patch
	skipped int
	err     error
}

// importDoneMsg signals import completion
type importDoneMsg struct {
	stats *bank.ImportStats
	err   error
}

// New creates a new TUI model. Imported patch files land under outDir.
func New(schema decode.Schema, outDir string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv"}
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(panelAmber)

	return Model{
		state:      StateMenu,
		schema:     schema,
		outDir:     outDir,
		menuIndex:  0,
		filePicker: fp,
		spinner:    s,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The file picker needs to receive all messages while active
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = StateLoading
			return m, tea.Batch(m.spinner.Tick, m.runAction())
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateBrowse:
			return m.updateBrowse(msg)
		case StateDetail:
			return m.updateDetail(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bankLoadedMsg:
		if msg.err != nil {
			m.state = StateResult
			m.err = msg.err
			return m, nil
		}
		m.patches = msg.patches
		m.skipped = msg.skipped
		m.patchIndex = 0
		m.state = StateBrowse
		return m, nil

	case importDoneMsg:
		m.state = StateResult
		m.stats = msg.stats
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		item := menuItems[m.menuIndex]
		if item.Action == actionExit {
			return m, tea.Quit
		}
		m.action = item.Action
		m.state = StateFilePicker
		return m, m.filePicker.Init()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.patchIndex > 0 {
			m.patchIndex--
		}
	case "down", "j":
		if m.patchIndex < len(m.patches)-1 {
			m.patchIndex++
		}
	case "enter":
		if len(m.patches) == 0 {
			return m, nil
		}
		doc, err := patch.Encode(m.patches[m.patchIndex])
		if err != nil {
			m.state = StateResult
			m.err = err
			return m, nil
		}
		m.document = string(doc)
		m.state = StateDetail
	case "esc":
		m.state = StateMenu
		m.patches = nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateBrowse
		m.document = ""
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.stats = nil
		m.selectedFile = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) runAction() tea.Cmd {
	file := m.selectedFile
	schema := m.schema
	outDir := m.outDir
	action := m.action

	return func() tea.Msg {
		f, err := os.Open(file)
		if err != nil {
			if action == actionImport {
				return importDoneMsg{err: err}
			}
			return bankLoadedMsg{err: err}
		}
		defer func() { _ = f.Close() }()

		assembler := bank.NewAssembler(schema)

		if action == actionBrowse {
			patches, skipped, err := bank.DecodePatches(f, assembler)
			return bankLoadedMsg{patches: patches, skipped: skipped, err: err}
		}

		writer, err := patch.NewWriter(outDir)
		if err != nil {
			return importDoneMsg{err: err}
		}
		stats, err := bank.NewImporter(assembler, writer, nil).Import(f)
		return importDoneMsg{stats: stats, err: err}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateLoading:
		s.WriteString(m.viewLoading())
	case StateBrowse:
		s.WriteString(m.viewBrowse())
	case StateDetail:
		s.WriteString(m.viewDetail())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" SOUND BANK · schema %s ", m.schema)))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(panelCream).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT BANK CSV "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewLoading() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" DECODING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Decoding %s...\n", m.spinner.View(), filepath.Base(m.selectedFile)))

	return boxStyle.Render(s.String())
}

// browseWindow is how many presets are listed at once.
const browseWindow = 12

func (m Model) viewBrowse() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" %d PRESETS (%d rows skipped) ", len(m.patches), m.skipped)))
	s.WriteString("\n\n")

	start := 0
	if m.patchIndex >= browseWindow {
		start = m.patchIndex - browseWindow + 1
	}
	end := start + browseWindow
	if end > len(m.patches) {
		end = len(m.patches)
	}

	for i := start; i < end; i++ {
		p := m.patches[i]
		line := fmt.Sprintf("%s  (%s / %s)", p.Name, p.Oscillator1.Waveform, p.Oscillator2.Waveform)
		if i == m.patchIndex {
			s.WriteString(selectedStyle.Render("▸ " + line))
		} else {
			s.WriteString(menuStyle.Render("  " + line))
		}
		s.WriteString("\n")
	}

	s.WriteString(statusStyle.Render("enter: view document • esc: back"))

	return boxStyle.Render(s.String())
}

func (m Model) viewDetail() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" %s ", m.patches[m.patchIndex].Name)))
	s.WriteString("\n\n")
	s.WriteString(docStyle.Render(m.document))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter/esc: back to list"))

	return s.String()
}

func (m Model) viewResult() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	} else {
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ Bank imported!"))
		if m.stats != nil {
			s.WriteString("\n\n")
			s.WriteString(fmt.Sprintf("Imported: %d\n", m.stats.Imported))
			s.WriteString(fmt.Sprintf("Skipped:  %d\n", m.stats.Skipped))
			s.WriteString(fmt.Sprintf("Output:   %s", m.outDir))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
   ____    _    _   _ _  ______  ____   _  _____ ____ _   _
  | __ )  / \  | \ | | |/ /___ \|  _ \ / \|_   _/ ___| | | |
  |  _ \ / _ \ |  \| | ' /  __) | |_) / _ \ | || |   | |_| |
  | |_) / ___ \| |\  | . \ / __/|  __/ ___ \| || |___|  _  |
  |____/_/   \_\_| \_|_|\_\_____|_| /_/   \_\_| \____|_| |_|
`
	return lipgloss.NewStyle().Foreground(panelAmber).Render(logo)
}

// Run starts the TUI application
func Run(schema decode.Schema, outDir string) error {
	p := tea.NewProgram(New(schema, outDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
