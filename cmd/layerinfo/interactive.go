package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gfxlayers/chassis/settings"
	"github.com/gfxlayers/chassis/validation"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	onStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	offStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	envStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateToggle modelState = iota
	stateEditLimit
)

var envNames = [validation.TypeCount]string{
	validation.TypeThreading:           "LAYER_THREADING",
	validation.TypeParameterValidation: "LAYER_PARAMETER_VALIDATION",
	validation.TypeObjectTracker:       "LAYER_OBJECT_TRACKER",
	validation.TypeCoreValidation:      "LAYER_CORE_VALIDATION",
	validation.TypeBestPractices:       "LAYER_BEST_PRACTICES",
	validation.TypeGPUAssisted:         "LAYER_GPU_ASSISTED",
	validation.TypeSyncValidation:      "LAYER_SYNC_VALIDATION",
}

type interactiveModel struct {
	cfg      *settings.Settings
	selected int
	state    modelState
	limit    textinput.Model
	err      error
}

func newInteractiveModel(cfg *settings.Settings) *interactiveModel {
	return &interactiveModel{cfg: cfg, state: stateToggle}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateToggle {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateToggle && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateToggle && m.selected < int(validation.TypeCount)-1 {
				m.selected++
			}

		case " ":
			if m.state == stateToggle {
				t := validation.Type(m.selected)
				setEnabled(m.cfg, t, !validation.Enabled(m.cfg, t))
			}

		case "enter":
			switch m.state {
			case stateToggle:
				if validation.Type(m.selected) == validation.TypeGPUAssisted && m.cfg.GPUAssisted {
					m.prepareLimitInput()
					m.state = stateEditLimit
					return m, nil
				}

			case stateEditLimit:
				v, err := strconv.ParseUint(m.limit.Value(), 10, 32)
				if err != nil {
					m.err = fmt.Errorf("not a count: %q", m.limit.Value())
					return m, nil
				}
				m.cfg.GPUAV.MaxInstrumentedCount = uint32(v)
				m.err = nil
				m.state = stateToggle
			}

		case "esc":
			if m.state == stateEditLimit {
				m.err = nil
				m.state = stateToggle
			}
		}
	}

	if m.state == stateEditLimit {
		var cmd tea.Cmd
		m.limit, cmd = m.limit.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) prepareLimitInput() {
	ti := textinput.New()
	ti.Placeholder = "4096"
	ti.Prompt = "max instrumented: "
	ti.SetValue(strconv.FormatUint(uint64(m.cfg.GPUAV.MaxInstrumentedCount), 10))
	ti.Width = 12
	ti.Focus()
	m.limit = ti
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Layer Components"))
	b.WriteString("\n\n")

	switch m.state {
	case stateToggle:
		for t := validation.Type(0); t < validation.TypeCount; t++ {
			cursor := "  "
			line := m.formatComponent(t)
			if int(t) == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + t.String()))
				b.WriteString(line[len(t.String()):])
			} else {
				b.WriteString(cursor + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.chainSummary())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/↓ select • space toggle • enter tune • q quit"))

	case stateEditLimit:
		b.WriteString("GPU-assisted instrumentation limit\n\n")
		b.WriteString(m.limit.View())
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(m.err.Error()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter apply • esc back"))
	}

	return b.String()
}

func (m *interactiveModel) formatComponent(t validation.Type) string {
	state := offStyle.Render("off")
	if validation.Enabled(m.cfg, t) {
		state = onStyle.Render("on ")
	}
	return fmt.Sprintf("%-22s %s  %s", t, state, envStyle.Render(envNames[t]))
}

// chainSummary renders the chain the current toggles would produce, in
// priority order.
func (m *interactiveModel) chainSummary() string {
	var names []string
	for t := validation.Type(0); t < validation.TypeCount; t++ {
		if validation.Enabled(m.cfg, t) {
			names = append(names, t.String())
		}
	}
	if len(names) == 0 {
		return offStyle.Render("chain: (empty, all calls pass straight through)")
	}
	return "chain: " + strings.Join(names, " -> ")
}

func runInteractive() error {
	cfg, err := settings.Load()
	if err != nil {
		return err
	}
	p := tea.NewProgram(newInteractiveModel(cfg), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
