package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/permnet/pkg/benes"
)

var (
	stepMarkerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	stepMovedStyle  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	stepDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StepModel - Level-by-level routing walkthrough
// =============================================================================

// StepModel is the bubbletea model that steps values through a network one
// level at a time.
type StepModel struct {
	Net    *benes.Network
	States [][]string // States[k] is the wire contents before level k
	Step   int
	Offset int
	Height int
}

// NewStepModel traces labels through net. Labels default to the wire indices.
func NewStepModel(net *benes.Network, labels []string) (StepModel, error) {
	if len(labels) == 0 {
		labels = make([]string, net.N)
		for i := range labels {
			labels[i] = strconv.Itoa(i)
		}
	}
	states, err := benes.Trace(net, labels)
	if err != nil {
		return StepModel{}, err
	}
	return StepModel{Net: net, States: states, Height: 16}, nil
}

// Last is the index of the final state.
func (m StepModel) Last() int { return len(m.States) - 1 }

func (m StepModel) Init() tea.Cmd {
	return nil
}

func (m StepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", " ", "n":
			if m.Step < m.Last() {
				m.Step++
			}
		case "left", "h", "p":
			if m.Step > 0 {
				m.Step--
			}
		case "home", "g":
			m.Step = 0
		case "end", "G":
			m.Step = m.Last()
		case "down", "j":
			if m.Offset+m.Height < m.Net.N {
				m.Offset++
			}
		case "up", "k":
			if m.Offset > 0 {
				m.Offset--
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-m.Net.Levels()-10, 4)
		if m.Offset+m.Height > m.Net.N {
			m.Offset = max(m.Net.N-m.Height, 0)
		}
	}
	return m, nil
}

func (m StepModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Routing n=%d", m.Net.N)
	if m.Step < m.Last() {
		title += fmt.Sprintf("  level %d of %d", m.Step, m.Net.Levels())
	} else {
		title += "  output"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(stepDimStyle.Render("←/→ step  ↑/↓ scroll  g/G first/last  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.matrixView())
	b.WriteString("\n")
	b.WriteString(m.wireTable())
	if m.Net.N > m.Height {
		b.WriteString("\n")
		b.WriteString(stepDimStyle.Render(fmt.Sprintf("  wires %d-%d of %d",
			m.Offset, min(m.Offset+m.Height, m.Net.N)-1, m.Net.N)))
	}
	return b.String()
}

// matrixView renders the switch matrix with a marker on the level the
// current step applies.
func (m StepModel) matrixView() string {
	lines := strings.Split(strings.TrimSuffix(styledMatrix(m.Net.Matrix), "\n"), "\n")
	var b strings.Builder
	for l, line := range lines {
		if line == "" {
			continue
		}
		if l == m.Step {
			b.WriteString(stepMarkerStyle.Render("▸ "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// wireTable shows the visible wires before and after the current level.
func (m StepModel) wireTable() string {
	before := m.States[m.Step]
	after := before
	if m.Step < m.Last() {
		after = m.States[m.Step+1]
	}

	end := min(m.Offset+m.Height, m.Net.N)
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		rows = append(rows, []string{strconv.Itoa(i), before[i], after[i]})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("wire", "in", "out").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			i := m.Offset + row
			switch {
			case col == 0:
				return stepDimStyle
			case col == 2 && i < len(after) && after[i] != before[i]:
				return stepMovedStyle
			default:
				return StyleValue
			}
		})
	return t.Render()
}
