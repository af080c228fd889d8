// Package tui implements the frame playback viewer: a bubbletea program
// that steps through the computed frames of a run. It consumes WorldFrame
// records read-only; the planner never depends on it.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/astrogator/voyager/internal/world"
)

var (
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleStatus  = lipgloss.NewStyle().Faint(true)
	styleShip    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleOpen    = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	styleClosed  = lipgloss.NewStyle().Faint(true)
	styleCollect = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// keyMap defines the playback key bindings.
type keyMap struct {
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Next:  key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→/space", "next frame")),
	Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous frame")),
	First: key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first frame")),
	Last:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last frame")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the playback state: a run's frames plus a cursor.
type Model struct {
	title    string
	frames   []world.Frame
	cursor   int
	viewport viewport.Model
	ready    bool
}

// NewModel creates a playback model over frames.
func NewModel(title string, frames []world.Frame) Model {
	return Model{title: title, frames: frames}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			if m.cursor < len(m.frames)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Prev):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.First):
			m.cursor = 0
		case key.Matches(msg, keys.Last):
			m.cursor = len(m.frames) - 1
		}
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
	}
	if m.ready {
		m.viewport.SetContent(m.frameView())
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(nil)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if len(m.frames) == 0 {
		return "no frames\n"
	}
	header := styleHeader.Render(fmt.Sprintf("%s — frame %d/%d", m.title, m.cursor+1, len(m.frames)))
	footer := styleStatus.Render("←/→ step · g/G first/last · q quit")
	if !m.ready {
		return header + "\n" + m.frameView() + "\n" + footer
	}
	return header + "\n" + m.viewport.View() + "\n" + footer
}

// Cursor returns the current frame index; exported for tests.
func (m Model) Cursor() int { return m.cursor }

// frameView renders the current frame in full.
func (m Model) frameView() string {
	f := m.frames[m.cursor]
	var b strings.Builder

	fmt.Fprintf(&b, "t_u %.3f   t_p %.3f\n\n", f.TU, f.Ship.TProper)
	fmt.Fprintf(&b, "%s\n", styleShip.Render(fmt.Sprintf(
		"ship  x(%.3f, %.3f)  v(%.3f, %.3f)  fuel %.3f",
		f.Ship.X[0], f.Ship.X[1], f.Ship.V[0], f.Ship.V[1], f.Ship.Fuel)))
	if len(f.Ship.Collected) > 0 {
		fmt.Fprintf(&b, "%s\n", styleCollect.Render(fmt.Sprintf("collected: %v", f.Ship.Collected)))
	}

	if len(f.Bodies) > 0 {
		b.WriteString("\nbodies:\n")
		for _, body := range f.Bodies {
			fmt.Fprintf(&b, "  #%d  x(%.3f, %.3f)  v(%.3f, %.3f)  r=%.2f  m=%.3g\n",
				body.ID, body.X[0], body.X[1], body.V[0], body.V[1], body.Radius, body.Mass)
		}
	}
	if len(f.Wormholes) > 0 {
		b.WriteString("\nwormholes:\n")
		for _, wh := range f.Wormholes {
			line := fmt.Sprintf("  #%d  entry(%.3f, %.3f) → exit(%.3f, %.3f)  [%g, %g]",
				wh.ID, wh.Entry[0], wh.Entry[1], wh.Exit[0], wh.Exit[1], wh.TOpen, wh.TClose)
			if wh.Open {
				line = styleOpen.Render(line + "  open")
			} else {
				line = styleClosed.Render(line + "  closed")
			}
			b.WriteString(line + "\n")
		}
	}
	if len(f.Artifacts) > 0 {
		b.WriteString("\nartifacts:\n")
		for _, a := range f.Artifacts {
			marker := " "
			for _, id := range f.Ship.Collected {
				if id == a.ID {
					marker = "✓"
					break
				}
			}
			fmt.Fprintf(&b, "  %s #%d  x(%.3f, %.3f)\n", marker, a.ID, a.X[0], a.X[1])
		}
	}
	return b.String()
}

// Run launches the playback program over frames and blocks until quit.
func Run(title string, frames []world.Frame) error {
	p := tea.NewProgram(NewModel(title, frames), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
