package tui

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"apc-control/control"
	"apc-control/midi"
	"apc-control/theme"
	"apc-control/widgets"
)

// Engine is the part of control.Engine the UI needs
type Engine interface {
	Post(fn func())
	Updates() <-chan struct{}
	Snapshot() []control.Status
}

// Controller is one configured surface as the UI shows it
type Controller struct {
	Name      string
	Mirror    *midi.Mirror
	Instance  control.Instance
	Connected *atomic.Bool
}

type Model struct {
	engine      Engine
	controllers []Controller
	theme       *theme.Theme
	keys        keyMap
	help        help.Model
	simulate    bool

	selected int
	cursor   widgets.Cursor
	shifted  []bool // simulated shift, per controller
	status   []control.Status
	quitting bool
}

type UpdateMsg struct{}

func NewModel(engine Engine, controllers []Controller, th *theme.Theme, simulate bool) Model {
	return Model{
		engine:      engine,
		controllers: controllers,
		theme:       th,
		keys:        newKeyMap(simulate),
		help:        help.New(),
		simulate:    simulate,
		shifted:     make([]bool, len(controllers)),
		status:      engine.Snapshot(),
	}
}

func ListenForUpdates(engine Engine) tea.Cmd {
	return func() tea.Msg {
		<-engine.Updates()
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.engine)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Next):
			if len(m.controllers) > 0 {
				m.selected = (m.selected + 1) % len(m.controllers)
			}
		case key.Matches(msg, m.keys.Up):
			m.cursor.Move(0, -1)
		case key.Matches(msg, m.keys.Down):
			m.cursor.Move(0, 1)
		case key.Matches(msg, m.keys.Left):
			m.cursor.Move(-1, 0)
		case key.Matches(msg, m.keys.Right):
			m.cursor.Move(1, 0)
		case key.Matches(msg, m.keys.Press):
			addr := m.cursor.Addr()
			if addr == midi.ButtonShift {
				m.toggleShift()
				break
			}
			m.send(midi.NoteOnEvent(uint8(addr), 127), midi.NoteOffEvent(uint8(addr)))
		case key.Matches(msg, m.keys.Shift):
			m.toggleShift()
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case UpdateMsg:
		m.status = m.engine.Snapshot()
		return m, ListenForUpdates(m.engine)
	}

	return m, nil
}

func (m *Model) toggleShift() {
	if len(m.controllers) == 0 {
		return
	}
	m.shifted[m.selected] = !m.shifted[m.selected]
	if m.shifted[m.selected] {
		m.send(midi.NoteOnEvent(midi.ButtonShift, 127))
	} else {
		m.send(midi.NoteOffEvent(midi.ButtonShift))
	}
}

// send hands simulated input to the selected controller on the engine
// goroutine
func (m Model) send(events ...midi.Event) {
	if len(m.controllers) == 0 {
		return
	}
	inst := m.controllers[m.selected].Instance
	m.engine.Post(func() {
		for _, ev := range events {
			inst.HandleMIDI(ev)
		}
	})
}

func (m Model) statusLine(i int) string {
	c := m.controllers[i]
	st := control.Status{Name: c.Name}
	if i < len(m.status) {
		st = m.status[i]
	}

	link := "sim"
	if !m.simulate {
		link = "offline"
		if c.Connected != nil && c.Connected.Load() {
			link = "online"
		}
	}
	shift := ""
	if st.Shift {
		shift = " SHIFT"
	}
	marker := " "
	if i == m.selected {
		marker = ">"
	}
	return fmt.Sprintf("%s %-20s %-9s %-7s%s", marker, c.Name, st.Mode, link, shift)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.theme.FG())

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render("apc-control"))
	out.WriteString("\n\n")

	if len(m.controllers) == 0 {
		out.WriteString(dimStyle.Render("no controllers configured"))
		out.WriteString("\n")
		return out.String()
	}

	for i := range m.controllers {
		out.WriteString(fgStyle.Render(m.statusLine(i)))
		out.WriteString("\n")
	}
	out.WriteString("\n")

	cursor := widgets.NoCursor
	if m.simulate {
		cursor = m.cursor.Addr()
	}
	leds := m.controllers[m.selected].Mirror.Snapshot()
	out.WriteString(widgets.RenderSurface(m.theme, leds, cursor))
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render(widgets.RenderLegend(m.theme)))
	out.WriteString("\n\n")
	out.WriteString(m.help.View(m.keys))
	return out.String()
}
