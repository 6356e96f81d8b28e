// Package browse is the interactive dataset picker: a terminal app for
// choosing a variable and a slice, handed off to the renderer when
// accepted.
package browse

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/termpane/termpane/internal/dataset"
)

var (
	headStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	pickStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555"))
)

const (
	stateVars = iota
	stateDims
)

// Choice is the picker's result: a variable, its per-dimension
// selection tokens, and an optional scroll dimension.
type Choice struct {
	Var    string
	Tokens map[string]string
	Scroll string
}

type picker struct {
	ds       *dataset.Dataset
	state    int
	cursor   int
	varNames []string

	chosen    string
	dims      []string
	dimCursor int
	tokens    map[string]string
	scroll    string
	editing   bool
	editBuf   string
	errMsg    string

	accepted bool
	choice   Choice
}

func newPicker(ds *dataset.Dataset) picker {
	p := picker{ds: ds, state: stateVars, tokens: map[string]string{}}
	for _, v := range ds.Vars {
		if isCoordinate(v) {
			continue
		}
		p.varNames = append(p.varNames, v.Name)
	}
	return p
}

// isCoordinate reports whether v is a coordinate variable: 1-D over a
// dimension of its own name. Those back dimension coordinates and are
// not offered for plotting.
func isCoordinate(v dataset.Variable) bool {
	return len(v.Dims) == 1 && v.Dims[0] == v.Name
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch p.state {
	case stateVars:
		return p.varsKey(key)
	case stateDims:
		return p.dimsKey(key)
	}
	return p, nil
}

func (p picker) varsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.varNames)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.varNames) == 0 {
			return p, nil
		}
		p.chosen = p.varNames[p.cursor]
		v, _ := p.ds.Var(p.chosen)
		p.dims = v.Dims
		p.dimCursor = 0
		p.tokens = map[string]string{}
		p.scroll = ""
		p.errMsg = ""
		p.state = stateDims
	}
	return p, nil
}

func (p picker) dimsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if p.editing {
		return p.editKey(msg)
	}
	switch msg.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "esc":
		p.state = stateVars
		p.errMsg = ""
	case "up", "k":
		if p.dimCursor > 0 {
			p.dimCursor--
		}
	case "down", "j":
		if p.dimCursor < len(p.dims)-1 {
			p.dimCursor++
		}
	case "enter", " ":
		p.editing = true
		p.editBuf = p.tokens[p.dims[p.dimCursor]]
	case "c":
		delete(p.tokens, p.dims[p.dimCursor])
	case "tab":
		dim := p.dims[p.dimCursor]
		if p.scroll == dim {
			p.scroll = ""
		} else {
			p.scroll = dim
		}
	case "s":
		return p.accept()
	}
	return p, nil
}

func (p picker) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		dim := p.dims[p.dimCursor]
		tok := strings.TrimSpace(p.editBuf)
		if tok == "" {
			delete(p.tokens, dim)
		} else {
			p.tokens[dim] = tok
		}
		p.editing, p.editBuf = false, ""
	case "esc":
		p.editing, p.editBuf = false, ""
	case "backspace":
		if len(p.editBuf) > 0 {
			p.editBuf = p.editBuf[:len(p.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 {
			c := s[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == ',' || c == 'e' || c == 'E' {
				p.editBuf += string(c)
			}
		}
	}
	return p, nil
}

// accept validates the tokens and, when they resolve, quits with the
// choice recorded. Validation errors keep the picker open.
func (p picker) accept() (tea.Model, tea.Cmd) {
	v, _ := p.ds.Var(p.chosen)
	// Validate against a copy: the scroll dimension is pinned to one
	// coordinate so it does not count as a plot dimension.
	tokens := make(map[string]string, len(p.tokens)+1)
	for name, tok := range p.tokens {
		tokens[name] = tok
	}
	if p.scroll != "" {
		if strings.Contains(tokens[p.scroll], ",") {
			p.errMsg = fmt.Sprintf("scroll dimension %s cannot take a range", p.scroll)
			return p, nil
		}
		if d, ok := p.ds.Dim(p.scroll); ok && tokens[p.scroll] == "" && len(d.Coords) > 0 {
			tokens[p.scroll] = strconv.FormatFloat(d.Coords[0], 'g', -1, 64)
		}
	}
	if _, err := dataset.BuildSelection(p.ds, v, tokens); err != nil {
		p.errMsg = err.Error()
		return p, nil
	}
	p.errMsg = ""
	p.accepted = true
	p.choice = Choice{Var: p.chosen, Tokens: p.tokens, Scroll: p.scroll}
	return p, tea.Quit
}

func (p picker) View() string {
	switch p.state {
	case stateVars:
		return p.viewVars()
	case stateDims:
		return p.viewDims()
	}
	return ""
}

func (p picker) viewVars() string {
	var b strings.Builder
	title := strings.ToUpper(p.ds.Name)
	if title == "" {
		title = "TPANE"
	}
	b.WriteString("\n\n    " + headStyle.Render(title) + "\n    " +
		subStyle.Render("dataset browser") + "\n    " +
		subStyle.Render("─────────────────────────") + "\n\n")
	if len(p.varNames) == 0 {
		b.WriteString("    " + mutedStyle.Render("no data variables") + "\n")
	}
	for i, name := range p.varNames {
		v, _ := p.ds.Var(name)
		desc := p.varDesc(v)
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				cursorStyle.Render("▸"),
				pickStyle.Render(fmt.Sprintf("%-16s", name)),
				noteStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				mutedStyle.Render(fmt.Sprintf("  %-16s", name)),
				mutedStyle.Render(desc)))
		}
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + mutedStyle.Render(" navigate  ") +
		keyStyle.Render("enter") + mutedStyle.Render(" select  ") +
		keyStyle.Render("q") + mutedStyle.Render(" quit") + "\n")
	return b.String()
}

func (p picker) varDesc(v *dataset.Variable) string {
	names := make([]string, 0, len(v.Dims))
	sizes := make([]string, 0, len(v.Dims))
	for _, name := range v.Dims {
		d, ok := p.ds.Dim(name)
		if !ok {
			continue
		}
		names = append(names, name)
		sizes = append(sizes, fmt.Sprintf("%d", d.Len()))
	}
	if len(names) == 0 {
		return "scalar"
	}
	return fmt.Sprintf("%s (%s)", strings.Join(names, "×"), strings.Join(sizes, "×"))
}

func (p picker) viewDims() string {
	var b strings.Builder
	b.WriteString("\n\n    " + headStyle.Render(strings.ToUpper(p.chosen)) + "\n    " +
		subStyle.Render("empty token plots the full range, one value fixes, two bound an axis") + "\n    " +
		subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range p.dims {
		d, _ := p.ds.Dim(name)
		val := p.tokens[name]
		if val == "" {
			val = "all"
		}
		if p.editing && i == p.dimCursor {
			val = p.editBuf + "_"
		}
		note := fmt.Sprintf("n=%d", d.Len())
		if d.Units != "" {
			note += " " + d.Units
		}
		if p.scroll == name {
			note += "  [scroll]"
		}
		if i == p.dimCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s  %s\n",
				cursorStyle.Render("▸"),
				pickStyle.Render(fmt.Sprintf("%-12s", name)),
				noteStyle.Render(fmt.Sprintf("%10s", val)),
				subStyle.Render(note)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				mutedStyle.Render(fmt.Sprintf("  %-12s", name)),
				mutedStyle.Render(fmt.Sprintf("%10s", val)),
				mutedStyle.Render(note)))
		}
	}
	if p.errMsg != "" {
		b.WriteString("\n    " + errStyle.Render(p.errMsg) + "\n")
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + mutedStyle.Render(" select  ") +
		keyStyle.Render("enter") + mutedStyle.Render(" edit  ") +
		keyStyle.Render("c") + mutedStyle.Render(" clear  ") +
		keyStyle.Render("tab") + mutedStyle.Render(" scroll  ") +
		keyStyle.Render("s") + mutedStyle.Render(" view  ") +
		keyStyle.Render("esc") + mutedStyle.Render(" back") + "\n")
	return b.String()
}

// Run opens the picker over ds and reports the accepted choice. ok is
// false when the user quit without accepting one.
func Run(ds *dataset.Dataset) (Choice, bool, error) {
	final, err := tea.NewProgram(newPicker(ds), tea.WithAltScreen()).Run()
	if err != nil {
		return Choice{}, false, err
	}
	p, ok := final.(picker)
	if !ok {
		return Choice{}, false, fmt.Errorf("browse: unexpected final model %T", final)
	}
	return p.choice, p.accepted, nil
}
