package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/gravsim/internal/config"
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// pickerParams are the scenario fields editable before launch.
var pickerParams = []string{"dt", "g", "bodies"}

// Picker lists the built-in presets, lets the user tweak a few settings and
// then hands over to a live view.
type Picker struct {
	state, cursor int
	presets       []string
	scenario      *config.Scenario
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	width, height int
	live          Model
}

func NewPicker() *Picker {
	return &Picker{
		state:   stateMenu,
		presets: config.ListPresets(),
	}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		if p.state == stateSim {
			return p.forward(msg)
		}
		return p, nil
	default:
		if p.state == stateSim {
			return p.forward(msg)
		}
	}
	return p, nil
}

func (p Picker) forward(msg tea.Msg) (Picker, tea.Cmd) {
	next, cmd := p.live.Update(msg)
	p.live = next.(Model)
	return p, cmd
}

func (p Picker) handleKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	switch p.state {
	case stateMenu:
		return p.menuKey(msg)
	case stateConfig:
		return p.configKey(msg)
	case stateSim:
		return p.forward(msg)
	}
	return p, nil
}

func (p Picker) menuKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		sc, err := config.GetPreset(p.presets[p.cursor])
		if err != nil {
			p.err = err
			return p, nil
		}
		p.scenario, p.err = sc, nil
		p.state, p.paramCursor = stateConfig, 0
	}
	return p, nil
}

func (p Picker) configKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	if p.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(p.editBuf, 64); err == nil {
				p.setParam(pickerParams[p.paramCursor], v)
			}
			p.editing, p.editBuf = false, ""
		case "esc":
			p.editing, p.editBuf = false, ""
		case "backspace":
			if len(p.editBuf) > 0 {
				p.editBuf = p.editBuf[:len(p.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-e") {
				p.editBuf += s
			}
		}
		return p, nil
	}

	switch msg.String() {
	case "q", "esc":
		p.state = stateMenu
	case "up", "k":
		if p.paramCursor > 0 {
			p.paramCursor--
		}
	case "down", "j":
		if p.paramCursor < len(pickerParams)-1 {
			p.paramCursor++
		}
	case "enter", " ":
		if pickerParams[p.paramCursor] != "bodies" {
			p.editing, p.editBuf = true, ""
		}
	case "s":
		return p.start()
	}
	return p, nil
}

func (p *Picker) param(name string) string {
	switch name {
	case "dt":
		return strconv.FormatFloat(p.scenario.Dt, 'g', -1, 64)
	case "g":
		return strconv.FormatFloat(p.scenario.EffectiveG(), 'g', 6, 64)
	case "bodies":
		return strconv.Itoa(len(p.scenario.Bodies))
	}
	return ""
}

func (p *Picker) setParam(name string, v float64) {
	switch name {
	case "dt":
		if v > 0 {
			p.scenario.Dt = v
		}
	case "g":
		p.scenario.G = v
		p.scenario.Units = config.Units{}
	}
}

func (p Picker) start() (Picker, tea.Cmd) {
	s, err := p.scenario.Build()
	if err != nil {
		p.err = err
		return p, nil
	}
	p.live = NewModel(s, p.scenario.Name)
	if p.width > 0 {
		p.live.resize(p.width, p.height)
	}
	p.state = stateSim
	return p, p.live.Init()
}

func (p Picker) View() string {
	switch p.state {
	case stateMenu:
		return p.viewMenu()
	case stateConfig:
		return p.viewConfig()
	case stateSim:
		return p.live.View()
	}
	return ""
}

func (p Picker) header(title, sub string) string {
	return "\n\n    " + GradientText(title, CurrentTheme.Primary, CurrentTheme.Accent) +
		"\n    " + themed(CurrentTheme.Muted).Render(sub) +
		"\n    " + themed(CurrentTheme.Muted).Render("─────────────────────────") + "\n\n"
}

func (p Picker) viewMenu() string {
	var b strings.Builder
	b.WriteString(p.header("GRAVSIM", "n-body gravity"))

	selected := themed(CurrentTheme.Accent).Bold(true)
	dim := themed(CurrentTheme.Muted)
	for i, name := range p.presets {
		desc := config.Presets[name].Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", selected.Render("▸"), selected.Render(fmt.Sprintf("%-10s", name)), themed(CurrentTheme.Primary).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", dim.Render(fmt.Sprintf("%-10s", name)), dim.Render(desc)))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + themed(CurrentTheme.Error).Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + KeyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (p Picker) viewConfig() string {
	var b strings.Builder
	b.WriteString(p.header(strings.ToUpper(p.scenario.Name), p.scenario.Description))

	selected := themed(CurrentTheme.Accent).Bold(true)
	dim := themed(CurrentTheme.Muted)
	for i, name := range pickerParams {
		val := p.param(name)
		if p.editing && i == p.paramCursor {
			val = p.editBuf + "_"
		}
		if i == p.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", selected.Render("▸"), selected.Render(fmt.Sprintf("%-8s", name)), themed(CurrentTheme.Primary).Render(fmt.Sprintf("%12s", val))))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", dim.Render(fmt.Sprintf("%-8s", name)), dim.Render(fmt.Sprintf("%12s", val))))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + themed(CurrentTheme.Error).Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + KeyHints("j/k", "select", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive starts the preset picker full screen.
func RunInteractive() error {
	_, err := tea.NewProgram(NewPicker(), tea.WithAltScreen()).Run()
	return err
}
