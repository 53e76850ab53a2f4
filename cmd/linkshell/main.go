// linkshell is an interactive probe for the counting engine: type a
// sentence spec and get the linkage counts at each null count.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/momor666/link-grammar/config"
	"github.com/momor666/link-grammar/internal/countserver"
)

type countResult struct {
	spec string
	resp *countserver.CountResponse
	err  error
}

type model struct {
	textInput textinput.Model
	cfg       *config.Config
	history   []countResult
}

func initialModel(cfg *config.Config) model {
	ti := textinput.New()
	ti.Placeholder = "the:D+ cat:D-,S+ ran:S-"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 72

	return model{
		textInput: ti,
		cfg:       cfg,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func countCmd(cfg *config.Config, spec string) tea.Cmd {
	return func() tea.Msg {
		resp, err := countserver.CountSentence(spec, cfg.MaxNullCount,
			cfg.IslandsOk, cfg.MaxParseTime)
		return countResult{spec: spec, resp: resp, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.Type {

		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			spec := strings.TrimSpace(m.textInput.Value())
			if spec == "" {
				return m, nil
			}
			m.textInput.Reset()
			return m, countCmd(m.cfg, spec)
		}

	case countResult:
		m.history = append(m.history, msg)
		if len(m.history) > 8 {
			m.history = m.history[len(m.history)-8:]
		}
	}
	m.textInput, cmd = m.textInput.Update(msg)

	return m, cmd
}

func renderResult(r countResult) string {
	if r.err != nil {
		return fmt.Sprintf("  %s\n    error: %v\n", r.spec, r.err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", r.spec)
	for nc, count := range r.resp.Counts {
		fmt.Fprintf(&b, "    %d null(s): %d linkages\n", nc, count)
	}
	if r.resp.Saturated {
		b.WriteString("    (saturated)\n")
	}
	if r.resp.Exhausted {
		b.WriteString("    (budget exhausted; counts are lower bounds)\n")
	}
	return b.String()
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString("linkshell — enter a sentence spec, ctrl+c quits\n\n")
	for _, r := range m.history {
		b.WriteString(renderResult(r))
	}
	b.WriteString("\n" + m.textInput.View() + "\n")
	return b.String()
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Printf("config error: %v\n", err)
		os.Exit(1)
	}
	p := tea.NewProgram(initialModel(cfg))

	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
