package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zsiec/telecine/pkg/timecode"
)

// Dark theme palette in the house style
var (
	primary = lipgloss.Color("#FF6B35")
	success = lipgloss.Color("#4CAF50")
	warning = lipgloss.Color("#FFB74D")
	errRed  = lipgloss.Color("#F44336")
	text    = lipgloss.Color("#E0E0E0")
	muted   = lipgloss.Color("#90A4AE")
	borders = lipgloss.Color("#30363D")

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary)

	labelStyle = lipgloss.NewStyle().Foreground(muted).Width(14)

	fieldStyle = lipgloss.NewStyle().
			Foreground(text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(borders).
			Padding(0, 1).
			Width(26)

	focusedFieldStyle = fieldStyle.Copy().BorderForeground(primary)

	resultStyle = lipgloss.NewStyle().
			Foreground(success).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borders).
			Padding(1, 2)

	errorStyle   = lipgloss.NewStyle().Foreground(errRed)
	warningStyle = lipgloss.NewStyle().Foreground(warning)
	helpStyle    = lipgloss.NewStyle().Foreground(muted)
)

type opMode int

const (
	modeParse opMode = iota
	modeConvert
	modeAdd
	modeAddFrames
	modeSubFrames
	modeCount
)

func (m opMode) String() string {
	switch m {
	case modeParse:
		return "parse"
	case modeConvert:
		return "convert"
	case modeAdd:
		return "add"
	case modeAddFrames:
		return "add frames"
	case modeSubFrames:
		return "sub frames"
	}
	return "unknown"
}

// operandLabel names the third input per mode.
func (m opMode) operandLabel() string {
	switch m {
	case modeConvert:
		return "Target rate"
	case modeAdd:
		return "Other"
	case modeAddFrames, modeSubFrames:
		return "Frames"
	}
	return ""
}

type model struct {
	mode     opMode
	inputs   []string // timecode, rate, operand
	focus    int
	result   string
	detail   string
	warnings []timecode.Warning
	err      error
}

func initialModel() model {
	return model{
		mode:   modeParse,
		inputs: []string{"01:00:00:00", "25", ""},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) fieldCount() int {
	if m.mode == modeParse {
		return 2
	}
	return 3
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		m.focus = (m.focus + 1) % m.fieldCount()
	case "shift+tab", "up":
		m.focus = (m.focus + m.fieldCount() - 1) % m.fieldCount()
	case "ctrl+o":
		m.mode = (m.mode + 1) % modeCount
		if m.focus >= m.fieldCount() {
			m.focus = 0
		}
		m.result, m.detail, m.warnings, m.err = "", "", nil, nil
	case "enter":
		m.compute()
	case "backspace":
		if cur := m.inputs[m.focus]; cur != "" {
			m.inputs[m.focus] = cur[:len(cur)-1]
		}
	default:
		if keyMsg.Type == tea.KeyRunes {
			m.inputs[m.focus] += string(keyMsg.Runes)
		}
	}

	return m, nil
}

func (m *model) compute() {
	m.result, m.detail, m.warnings, m.err = "", "", nil, nil

	rt, err := timecode.ParseRate(strings.TrimSpace(m.inputs[1]))
	if err != nil {
		m.err = err
		return
	}

	tc, warnings, err := timecode.ParseWithWarnings(strings.TrimSpace(m.inputs[0]), rt)
	if err != nil {
		m.err = err
		return
	}
	m.warnings = warnings

	operand := strings.TrimSpace(m.inputs[2])

	var out timecode.Timecode
	switch m.mode {
	case modeParse:
		out = tc
	case modeConvert:
		target, err := timecode.ParseRate(operand)
		if err != nil {
			m.err = err
			return
		}
		out = tc.ConvertTo(target)
	case modeAdd:
		other, _, err := timecode.ParseWithWarnings(operand, rt)
		if err != nil {
			m.err = err
			return
		}
		out, err = tc.Add(other)
		if err != nil {
			m.err = err
			return
		}
	case modeAddFrames:
		n, err := strconv.ParseUint(operand, 10, 64)
		if err != nil {
			m.err = fmt.Errorf("frame count must be a non-negative integer")
			return
		}
		out = tc.AddFrames(n)
	case modeSubFrames:
		n, err := strconv.ParseUint(operand, 10, 64)
		if err != nil {
			m.err = fmt.Errorf("frame count must be a non-negative integer")
			return
		}
		out, err = tc.SubFrames(n)
		if err != nil {
			m.err = err
			return
		}
	}

	m.result = out.String()
	m.detail = fmt.Sprintf("rate %s · frame %d", out.Rate(), out.FrameCount())
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Telecine Timecode Calculator"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Mode"))
	b.WriteString(lipgloss.NewStyle().Foreground(primary).Bold(true).Render(m.mode.String()))
	b.WriteString("\n\n")

	labels := []string{"Timecode", "Rate", m.mode.operandLabel()}
	for i := 0; i < m.fieldCount(); i++ {
		style := fieldStyle
		if i == m.focus {
			style = focusedFieldStyle
		}
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString(style.Render(m.inputs[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.result != "":
		b.WriteString(resultStyle.Render(m.result + "\n" + m.detail))
		b.WriteString("\n")
		for _, warn := range m.warnings {
			b.WriteString(warningStyle.Render("warning: " + string(warn)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: next field · ctrl+o: change mode · enter: compute · esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func main() {
	if _, err := tea.NewProgram(initialModel()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tc-calc error: %v\n", err)
		os.Exit(1)
	}
}
