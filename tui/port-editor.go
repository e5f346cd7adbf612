package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/RasseTheBoy/ufw-tui/alert"
	"github.com/RasseTheBoy/ufw-tui/audit"
	"github.com/RasseTheBoy/ufw-tui/system/ssh"
	"github.com/RasseTheBoy/ufw-tui/ufw"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Styling -----------------------------------------------------------------
var (
	accent     = lipgloss.Color("#7D56F4")
	muted      = lipgloss.Color("#888888")
	errorColor = lipgloss.Color("#FF5C5C")
	allowColor = lipgloss.Color("#5CCB5F")

	titleStyle    = lipgloss.NewStyle().Foreground(accent).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(muted)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	allowedStyle  = lipgloss.NewStyle().Foreground(allowColor)
	deniedStyle   = lipgloss.NewStyle().Foreground(errorColor)
	noticeStyle   = lipgloss.NewStyle().Foreground(muted)
	errNotice     = lipgloss.NewStyle().Foreground(errorColor)
	boxStyle      = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(accent)
)

type editorMode int

const (
	modeList editorMode = iota
	modeAdd
	modeHelp
)

const perPage = 10
const colSpecWidth = 15

// portEditor owns the live rule list. The list is only ever mutated after
// the gateway confirmed a change, so it always mirrors the last known
// engine state.
type portEditor struct {
	gateway  ufw.Gateway
	auditLog *audit.Log

	rules    []ufw.Rule
	selected int
	mode     editorMode

	input     textinput.Model
	paginator paginator.Model
	notices   []notice
}

type notice struct {
	text  string
	isErr bool
}

func newPortEditor(gateway ufw.Gateway, auditLog *audit.Log, rules []ufw.Rule) *portEditor {
	input := textinput.New()
	input.Placeholder = "8080 8081/udp !8082/tcp"
	input.Prompt = "> "
	input.CharLimit = 256
	input.Width = 60

	p := paginator.New()
	p.PerPage = perPage
	p.ActiveDot = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "235", Dark: "252"}).Render("•")
	p.InactiveDot = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "238"}).Render("•")
	p.SetTotalPages(len(rules))

	return &portEditor{
		gateway:   gateway,
		auditLog:  auditLog,
		rules:     rules,
		input:     input,
		paginator: p,
	}
}

func (m *portEditor) Init() tea.Cmd {
	return nil
}

// Update is the single dispatch point: the current mode decides what every
// key means.
func (m *portEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.updateAdd(key)
	case modeHelp:
		m.mode = modeList
		return m, nil
	default:
		return m.updateList(key)
	}
}

func (m *portEditor) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up":
		if m.selected > 0 {
			m.selected--
		}
	case "down":
		if m.selected < len(m.rules)-1 {
			m.selected++
		}
	case "left":
		m.selected = maximum(m.selected-perPage, 0)
	case "right":
		if len(m.rules) > 0 {
			m.selected = minimum(m.selected+perPage, len(m.rules)-1)
		}
	case " ":
		m.toggleSelected()
	case "d":
		m.deleteSelected()
	case "a":
		m.mode = modeAdd
		m.notices = nil
		m.input.Reset()
		m.input.Focus()
		return m, textinput.Blink
	case "h":
		m.mode = modeHelp
	}
	return m, nil
}

func (m *portEditor) updateAdd(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		return m, nil
	case "enter":
		line := m.input.Value()
		m.mode = modeList
		m.input.Blur()
		m.submit(line)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

// submit runs the full pipeline of one add-line: parse, resolve against the
// live list, then apply the accepted candidates one at a time in submission
// order. Every token error, conflict and gateway failure is reported; none
// of them stops the rest of the line.
func (m *portEditor) submit(line string) {
	m.notices = nil

	result := ufw.ParseSpec(line)
	for _, terr := range result.Errors {
		m.pushErr(fmt.Sprintf("invalid spec %q: %s", terr.Token, terr.Reason))
	}

	accepted, rejected := ufw.Resolve(m.rules, result.Candidates)
	for _, rej := range rejected {
		m.pushErr(fmt.Sprintf("%s: %s", rej.Rule.Spec(), rej.Reason))
	}

	var applied []alert.Change
	for _, cand := range accepted {
		err := m.gateway.ApplyAdd(cand)
		m.record("add", cand, err)
		if err != nil {
			m.pushErr(err.Error())
			continue
		}
		m.rules = append(m.rules, cand)
		m.push(fmt.Sprintf("added %s", cand.Command()))
		applied = append(applied, alert.Change{Verb: "added", Rule: cand})
	}

	m.syncPages()
	if len(applied) > 0 {
		go alert.NotifySubmission(hostLabel(), applied)
	}
}

func (m *portEditor) toggleSelected() {
	if len(m.rules) == 0 {
		m.notices = []notice{{text: "No ports to toggle", isErr: true}}
		return
	}

	current := m.rules[m.selected]
	flipped, err := m.gateway.ApplyToggle(current)
	m.record("toggle", current, err)
	if err != nil {
		m.notices = []notice{{text: err.Error(), isErr: true}}
		return
	}

	m.rules[m.selected] = flipped
	m.notices = []notice{{text: fmt.Sprintf("toggled %s to %s", flipped.Spec(), flipped.StatusLabel())}}
	go alert.NotifySubmission(hostLabel(), []alert.Change{{Verb: "toggled", Rule: flipped}})
}

func (m *portEditor) deleteSelected() {
	if len(m.rules) == 0 {
		m.notices = []notice{{text: "No ports to delete", isErr: true}}
		return
	}

	current := m.rules[m.selected]
	err := m.gateway.ApplyDelete(current)
	m.record("delete", current, err)
	if err != nil {
		m.notices = []notice{{text: err.Error(), isErr: true}}
		return
	}

	m.rules = append(m.rules[:m.selected], m.rules[m.selected+1:]...)
	if m.selected >= len(m.rules) && m.selected > 0 {
		m.selected = len(m.rules) - 1
	}
	m.syncPages()
	m.notices = []notice{{text: fmt.Sprintf("deleted %s", current.Command())}}
	go alert.NotifySubmission(hostLabel(), []alert.Change{{Verb: "deleted", Rule: current}})
}

func (m *portEditor) record(action string, rule ufw.Rule, applyErr error) {
	if m.auditLog == nil {
		return
	}
	_ = m.auditLog.RuleChange(action, rule, applyErr)
}

func (m *portEditor) push(text string)    { m.notices = append(m.notices, notice{text: text}) }
func (m *portEditor) pushErr(text string) { m.notices = append(m.notices, notice{text: text, isErr: true}) }

func (m *portEditor) syncPages() {
	m.paginator.SetTotalPages(len(m.rules))
	if m.paginator.Page >= m.paginator.TotalPages {
		m.paginator.Page = m.paginator.TotalPages - 1
	}
}

// --- Rendering ---------------------------------------------------------------

func (m *portEditor) View() string {
	switch m.mode {
	case modeAdd:
		return m.viewAdd()
	case modeHelp:
		return helpView()
	default:
		return m.viewList()
	}
}

func (m *portEditor) viewList() string {
	var b strings.Builder
	if ssh.GetSSHStatus() {
		b.WriteString("\n  " + titleStyle.Render(fmt.Sprintf("UFW Port Manager — %s", ssh.GlobalHost)) + "\n\n")
	} else {
		b.WriteString("\n  " + titleStyle.Render("UFW Port Manager") + "\n\n")
	}

	if len(m.rules) == 0 {
		b.WriteString("  No ports found (press \"a\" to add ports)\n")
	} else {
		// The visible page follows the selection.
		m.paginator.Page = m.selected / perPage
		start, end := m.paginator.GetSliceBounds(len(m.rules))
		for i, rule := range m.rules[start:end] {
			b.WriteString("  " + m.renderRow(start+i, rule) + "\n")
		}
		if m.paginator.TotalPages > 1 {
			b.WriteString("\n  " + m.paginator.View() + "\n")
		}
	}

	for _, n := range m.notices {
		if n.isErr {
			b.WriteString("\n  " + errNotice.Render(n.text))
		} else {
			b.WriteString("\n  " + noticeStyle.Render(n.text))
		}
	}
	if len(m.notices) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n  " + hintStyle.Render("↑/↓ navigate • SPACE toggle • a add • d delete • h help • q quit") + "\n")
	return b.String()
}

func (m *portEditor) renderRow(idx int, rule ufw.Rule) string {
	label := rule.StatusLabel()
	if idx == m.selected {
		return selectedStyle.Render(padRight(rule.Spec(), colSpecWidth) + label)
	}

	style := allowedStyle
	if rule.Action == ufw.ActionDeny {
		style = deniedStyle
	}
	return padRight(rule.Spec(), colSpecWidth) + style.Render(label)
}

func (m *portEditor) viewAdd() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add new ports") + "\n")
	b.WriteString(hintStyle.Render("Spaces in between, `!` for denied, optional /tcp or /udp") + "\n\n")
	b.WriteString(m.input.View())
	content := b.String()
	return boxStyle.Render(content) + "\n" + hintStyle.Render("  enter: apply • esc: cancel") + "\n"
}

func hostLabel() string {
	if ssh.GetSSHStatus() {
		return ssh.GlobalHost
	}
	host, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return host
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func maximum(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minimum(a, b int) int {
	if a < b {
		return a
	}
	return b
}
