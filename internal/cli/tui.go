package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordsphere/pkg/analysis"
	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/shell"
)

var (
	tuiHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	tuiStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// tuiCommand creates the interactive client command.
func (c *CLI) tuiCommand() *cobra.Command {
	var api string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Explore article keywords interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if api == "" {
				api = cfg.API.URL
			}
			client := analysis.NewClient(api, analysis.WithLogger(loggerFromContext(cmd.Context())))
			m := newTUIModel(cmd.Context(), client, cloud.NewBuilder())
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&api, "api", "", "analysis service URL (default from config)")
	return cmd
}

// =============================================================================
// tuiModel - Interactive word cloud client
// =============================================================================

// tuiModel adapts shell.Model to a bubbletea program: keystrokes edit the
// URL, enter submits, and analysis replies are fed back to the shell.
type tuiModel struct {
	shell   shell.Model
	input   textinput.Model
	spinner spinner.Model
	width   int
}

func newTUIModel(ctx context.Context, a shell.Analyzer, b *cloud.Builder) tuiModel {
	s := shell.New(ctx, a, b)

	in := textinput.New()
	in.Prompt = "URL › "
	in.Placeholder = shell.SampleURLs[0]
	in.SetValue(s.URL())
	in.CharLimit = 2048
	in.Width = 60
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleIconSpinner

	return tuiModel{shell: s, input: in, spinner: sp, width: 80}
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			var cmd tea.Cmd
			m.shell, cmd = m.shell.Update(shell.SubmitMsg{})
			if cmd == nil {
				return m, nil
			}
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.shell, _ = m.shell.Update(shell.SetURLMsg{URL: strings.TrimSpace(m.input.Value())})
		return m, cmd

	case shell.ResultMsg, shell.FailedMsg:
		m.shell, _ = m.shell.Update(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.shell.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-10, 20)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("wordsphere"))
	b.WriteString("\n")
	b.WriteString(tuiHelpStyle.Render("Samples: " + strings.Join(shell.SampleURLs, ", ")))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.shell.Err() != "":
		b.WriteString(styleIconError.Render(iconError) + " " + StyleError.Render(m.shell.Err()))
	case m.shell.Loading():
		b.WriteString(m.spinner.View() + " " + tuiStatusStyle.Render(m.shell.Status()))
	default:
		b.WriteString(tuiStatusStyle.Render(m.shell.Status()))
	}
	b.WriteString("\n\n")

	if labels := m.shell.Labels(); len(labels) > 0 {
		b.WriteString(renderWords(labels, m.width))
		b.WriteString("\n\n")
		b.WriteString(renderOverlay(m.shell.Top()))
		b.WriteString("\n\n")
	}

	b.WriteString(tuiHelpStyle.Render("enter analyze  esc quit"))
	return b.String()
}
