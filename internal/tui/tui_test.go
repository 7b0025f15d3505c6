package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStarter struct {
	specs    []string
	progress []int
	result   string
}

func (f *fakeStarter) Start(ctx context.Context, spec string) (<-chan int, <-chan string) {
	f.specs = append(f.specs, spec)
	progressCh := make(chan int, len(f.progress))
	resultCh := make(chan string, 1)
	for _, p := range f.progress {
		progressCh <- p
	}
	close(progressCh)
	resultCh <- f.result
	close(resultCh)
	return progressCh, resultCh
}

func TestWaitForProgress_DrainsThenResult(t *testing.T) {
	starter := &fakeStarter{progress: []int{50, 100}, result: "done"}
	progressCh, resultCh := starter.Start(context.Background(), "0")

	msg := waitForProgress(progressCh, resultCh)()
	first, ok := msg.(ProgressMsg)
	require.True(t, ok)
	assert.Equal(t, 50, first.Percent)

	msg = waitForProgress(first.progress, first.result)()
	second, ok := msg.(ProgressMsg)
	require.True(t, ok)
	assert.Equal(t, 100, second.Percent)

	msg = waitForProgress(second.progress, second.result)()
	assert.Equal(t, ResultMsg{Text: "done"}, msg)
}

func TestModel_EnterStartsOneRun(t *testing.T) {
	starter := &fakeStarter{progress: []int{50, 100}, result: "done"}
	m := NewModel(context.Background(), starter, "/tmp/walls")
	m.textInput.SetValue("0,3")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = updated.(Model)
	assert.Equal(t, StateRunning, m.state)
	assert.Equal(t, []string{"0,3"}, starter.specs)

	// A second enter while running must not start another batch.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.Len(t, starter.specs, 1)

	updated, _ = m.Update(ResultMsg{Text: "done"})
	m = updated.(Model)
	assert.Equal(t, StateComplete, m.state)
	assert.Contains(t, m.View(), "done")
}

func TestModel_ResetAfterComplete(t *testing.T) {
	m := NewModel(context.Background(), &fakeStarter{}, "/tmp/walls")
	m.state = StateComplete

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = updated.(Model)
	assert.Equal(t, StateInput, m.state)
	assert.Equal(t, "", m.textInput.Value())
}
