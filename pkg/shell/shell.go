// Package shell holds the UI state of a word-cloud session and the rules that
// move it between states.
//
// A [Model] has four observable fields: the URL being edited, a loading flag,
// an optional error message, and the current keywords. It changes only
// through [Model.Update], which takes a message and returns the next model
// plus an optional command to run, following the bubbletea architecture:
//
//	Idle    --SubmitMsg-->  Pending (loading, error cleared, old words kept)
//	Pending --ResultMsg-->  Idle    (new words, no error)
//	Pending --FailedMsg-->  Idle    (no words, error set)
//
// Submitting while loading, or with an empty URL, does nothing and returns
// no command. Nothing is retried or cancelled: once a request has been
// issued it runs to completion and its response is applied when it arrives.
package shell

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/keyword"
)

// SampleURLs are offered to new users; the first one prefills the input.
var SampleURLs = []string{
	"https://www.bbc.com",
	"https://www.nytimes.com",
}

// Status line texts.
const (
	StatusLoading = "Fetching article and extracting topics…"
	StatusEmpty   = "Try one of the sample URLs above to get started."
	fallbackError = "Failed to analyze URL"
)

// Analyzer turns a URL into ranked keywords. *analysis.Client satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*keyword.Result, error)
}

// Messages understood by Model.Update.
type (
	// SetURLMsg replaces the URL text. Allowed in any state.
	SetURLMsg struct{ URL string }

	// SubmitMsg starts an analysis of the current URL.
	SubmitMsg struct{}

	// ResultMsg delivers a successful analysis.
	ResultMsg struct{ Result *keyword.Result }

	// FailedMsg delivers a failed analysis.
	FailedMsg struct{ Err error }
)

// Model is the session state. The zero value is not usable; call New.
type Model struct {
	analyzer Analyzer
	ctx      context.Context
	memo     *cloud.Memo

	url     string
	loading bool
	err     string
	result  *keyword.Result
}

// New returns an idle model that analyzes through a and lays out results
// with b. A nil builder uses cloud defaults.
func New(ctx context.Context, a Analyzer, b *cloud.Builder) Model {
	return Model{
		analyzer: a,
		ctx:      ctx,
		memo:     cloud.NewMemo(b),
		url:      SampleURLs[0],
	}
}

// Update applies msg and returns the next model and the command to run, if any.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SetURLMsg:
		m.url = msg.URL
	case SubmitMsg:
		if !m.CanSubmit() {
			return m, nil
		}
		m.loading = true
		m.err = ""
		return m, m.analyze(m.url)
	case ResultMsg:
		m.loading = false
		m.err = ""
		m.result = msg.Result
	case FailedMsg:
		m.loading = false
		m.result = nil
		m.err = message(msg.Err)
	}
	return m, nil
}

func (m Model) analyze(url string) tea.Cmd {
	a, ctx := m.analyzer, m.ctx
	return func() tea.Msg {
		res, err := a.Analyze(ctx, url)
		if err != nil {
			return FailedMsg{Err: err}
		}
		return ResultMsg{Result: res}
	}
}

func message(err error) string {
	if err == nil {
		return fallbackError
	}
	if msg := errors.UserMessage(err); msg != "" {
		return msg
	}
	return fallbackError
}

// URL returns the current input text.
func (m Model) URL() string { return m.url }

// Loading reports whether a request is in flight.
func (m Model) Loading() bool { return m.loading }

// Err returns the last failure message, or "" when there is none.
func (m Model) Err() string { return m.err }

// CanSubmit reports whether a SubmitMsg would start a request.
func (m Model) CanSubmit() bool { return !m.loading && m.url != "" }

// Result returns the current analysis, or nil.
func (m Model) Result() *keyword.Result { return m.result }

// Words returns the current keywords in service order.
func (m Model) Words() []keyword.Keyword {
	if m.result == nil {
		return nil
	}
	return m.result.Words
}

// Labels returns the layout of the current words. It is computed once per
// result, so repeated calls (e.g. once per frame) return the same positions.
func (m Model) Labels() []cloud.Label {
	return m.memo.Labels(m.result)
}

// Top returns the keywords shown in the summary overlay.
func (m Model) Top() []keyword.Keyword {
	return keyword.Top(m.Words(), keyword.OverlaySize)
}

// Status returns the one-line status shown under the input.
func (m Model) Status() string {
	switch {
	case m.err != "":
		return m.err
	case m.loading:
		return StatusLoading
	case len(m.Words()) == 0:
		return StatusEmpty
	default:
		return fmt.Sprintf("Showing %d keywords from this article.", len(m.Words()))
	}
}

// Run applies msg and then executes the resulting commands synchronously,
// feeding their messages back in, until no command remains. It is the
// headless equivalent of a bubbletea program loop for a single interaction.
func Run(m Model, msg tea.Msg) Model {
	for msg != nil {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		if cmd == nil {
			break
		}
		msg = cmd()
	}
	return m
}
