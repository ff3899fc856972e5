package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/keyword"
	"github.com/matzehuels/wordsphere/pkg/shell"
)

type stubAnalyzer struct {
	res  *keyword.Result
	err  error
	urls []string
}

func (s *stubAnalyzer) Analyze(_ context.Context, url string) (*keyword.Result, error) {
	s.urls = append(s.urls, url)
	return s.res, s.err
}

func update(t *testing.T, m tuiModel, msg tea.Msg) (tuiModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(tuiModel), cmd
}

func TestTUIPrefilledURL(t *testing.T) {
	m := newTUIModel(context.Background(), &stubAnalyzer{}, cloud.NewBuilder())
	if got := m.input.Value(); got != shell.SampleURLs[0] {
		t.Errorf("input = %q, want first sample URL", got)
	}
	if !strings.Contains(m.View(), shell.StatusEmpty) {
		t.Error("idle view should show the empty status")
	}
}

func TestTUISubmitSuccess(t *testing.T) {
	a := &stubAnalyzer{res: &keyword.Result{ID: "r1", Words: []keyword.Keyword{{Word: "election", Weight: 1}}}}
	m := newTUIModel(context.Background(), a, cloud.NewBuilder(cloud.WithSampler(cloud.NewSampler(1))))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should start an analysis")
	}
	if !m.shell.Loading() {
		t.Error("model should be loading after enter")
	}
	if !strings.Contains(m.View(), shell.StatusLoading) {
		t.Error("loading view should show the loading status")
	}

	// A second enter while loading is ignored.
	if _, cmd2 := update(t, m, tea.KeyMsg{Type: tea.KeyEnter}); cmd2 != nil {
		t.Error("enter while loading should not issue a command")
	}

	res, _ := a.Analyze(context.Background(), m.shell.URL())
	m, _ = update(t, m, shell.ResultMsg{Result: res})
	if m.shell.Loading() {
		t.Error("model should be idle after a result")
	}
	view := m.View()
	if !strings.Contains(view, "election") || !strings.Contains(view, "Top words") {
		t.Errorf("result view missing words or overlay:\n%s", view)
	}
}

func TestTUISubmitFailure(t *testing.T) {
	m := newTUIModel(context.Background(), &stubAnalyzer{}, cloud.NewBuilder())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, shell.FailedMsg{Err: errors.New("Failed to fetch article: status 404")})

	if !strings.Contains(m.View(), "Failed to fetch article: status 404") {
		t.Errorf("failure view should show the error:\n%s", m.View())
	}
}

func TestTUIEditURL(t *testing.T) {
	m := newTUIModel(context.Background(), &stubAnalyzer{}, cloud.NewBuilder())
	m.input.SetValue("")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if got := m.shell.URL(); got != "x" {
		t.Errorf("shell URL = %q, want %q", got, "x")
	}

	m.input.SetValue("")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if _, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter with a blank URL should not issue a command")
	}
}

func TestTUIQuit(t *testing.T) {
	m := newTUIModel(context.Background(), &stubAnalyzer{}, cloud.NewBuilder())
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should return tea.Quit")
	}
}
