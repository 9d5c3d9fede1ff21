package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/catalog"
)

func strPtr(s string) *string { return &s }

func sampleRecords() []catalog.TitleRecord {
	return []catalog.TitleRecord{
		{ID: "603", Kind: catalog.KindMovie, Title: "The Matrix", ReleaseDate: strPtr("1999-03-30"), Rating: 8.2, Genres: []string{"Action"}},
		{ID: "604", Kind: catalog.KindMovie, Title: "The Matrix Reloaded", Rating: 7.1},
	}
}

func stubProgram(t *testing.T, keys ...tea.KeyMsg) {
	t.Helper()
	orig := runProgram
	runProgram = func(m tea.Model) (tea.Model, error) {
		for _, key := range keys {
			var cmd tea.Cmd
			m, cmd = m.Update(key)
			_ = cmd
		}
		return m, nil
	}
	t.Cleanup(func() { runProgram = orig })
}

func TestSelect_EmptySkipsWithoutUI(t *testing.T) {
	orig := runProgram
	runProgram = func(tea.Model) (tea.Model, error) {
		t.Fatal("program should not start for empty results")
		return nil, nil
	}
	t.Cleanup(func() { runProgram = orig })

	result, err := Select("nothing", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, result.Action)
}

func TestSelect_Actions(t *testing.T) {
	tests := []struct {
		name   string
		keys   []tea.KeyMsg
		want   SelectionAction
		wantID string
	}{
		{"enter selects first", []tea.KeyMsg{{Type: tea.KeyEnter}}, ActionSelected, "603"},
		{"down then enter", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}}, ActionSelected, "604"},
		{"next page", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("n")}}, ActionNextPage, ""},
		{"skip", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("s")}}, ActionSkipped, ""},
		{"escape", []tea.KeyMsg{{Type: tea.KeyEsc}}, ActionSkipped, ""},
		{"quit", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("q")}}, ActionStopped, ""},
		{"ctrl+c", []tea.KeyMsg{{Type: tea.KeyCtrlC}}, ActionStopped, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubProgram(t, tt.keys...)

			result, err := Select("Results for: matrix", sampleRecords())
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Action)
			if tt.wantID == "" {
				assert.Nil(t, result.Selection)
				return
			}
			require.NotNil(t, result.Selection)
			assert.Equal(t, tt.wantID, result.Selection.ID)
		})
	}
}

func TestSelect_ProgramError(t *testing.T) {
	orig := runProgram
	runProgram = func(tea.Model) (tea.Model, error) { return nil, errors.New("no tty") }
	t.Cleanup(func() { runProgram = orig })

	_, err := Select("x", sampleRecords())
	assert.Error(t, err)
}

func TestModelView(t *testing.T) {
	m := newModel("Results for: matrix", sampleRecords())
	view := m.View()

	assert.Contains(t, view, "Results for: matrix")
	assert.Contains(t, view, "THE MATRIX (1999)")
	assert.Contains(t, view, "n next page")
}

func TestTitleItem(t *testing.T) {
	item := titleItem{TitleRecord: sampleRecords()[1]}
	assert.Equal(t, "THE MATRIX RELOADED (TBA)", item.Title())
	assert.Equal(t, "The Matrix Reloaded", item.FilterValue())
}

func TestFormatMetadata(t *testing.T) {
	runtime := 136
	record := catalog.TitleRecord{
		ReleaseDate: strPtr("1999-03-30"),
		Runtime:     &runtime,
		Genres:      []string{"Action", "Science Fiction"},
	}
	assert.Equal(t, "1999-03-30 | 136m | Action, Science Fiction", formatMetadata(record, 0))
	assert.Equal(t, "No metadata available", formatMetadata(catalog.TitleRecord{}, 0))
	assert.True(t, strings.HasSuffix(formatMetadata(record, 12), "..."))
}

func TestTruncateAndClamp(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a long ...", truncate("a  long\nvalue here", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, 72, clamp(72, 0, 40))
	assert.Equal(t, 50, clamp(72, 50, 40))
	assert.Equal(t, 40, clamp(72, 10, 40))
}
