// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/marquee/internal/catalog"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected an item.
	ActionSelected
	// ActionNextPage asks for the next page of results.
	ActionNextPage
	// ActionSkipped indicates the user backed out without choosing.
	ActionSkipped
	// ActionStopped indicates the user quit browsing entirely.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *catalog.TitleRecord
}

type titleItem struct {
	catalog.TitleRecord
}

func (i titleItem) Title() string {
	return fmt.Sprintf("%s (%s)", strings.ToUpper(i.TitleRecord.Title), yearOrTBA(i.TitleRecord))
}

func (i titleItem) FilterValue() string {
	return i.TitleRecord.Title
}

func (i titleItem) Description() string {
	return i.Overview
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	typeStyle     lipgloss.Style
	titleStyle    lipgloss.Style
	ratingStyle   lipgloss.Style
	metadataStyle lipgloss.Style
	overviewStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		typeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		ratingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		overviewStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

type titleDelegate struct {
	styles itemStyles
}

func newDelegate() titleDelegate {
	return titleDelegate{styles: newItemStyles()}
}

func (d titleDelegate) Height() int                         { return 5 }
func (d titleDelegate) Spacing() int                        { return 1 }
func (d titleDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d titleDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	record, ok := item.(titleItem)
	if !ok {
		return
	}

	overview := truncate(record.Overview, m.Width()-4)

	typeLine := d.styles.typeStyle.Render(fmt.Sprintf("[%s]", strings.ToUpper(string(record.Kind))))
	metadataLine := d.styles.metadataStyle.Render(formatMetadata(record.TitleRecord, m.Width()-4))
	titleLine := d.styles.titleStyle.Render(record.Title())
	ratingLine := d.styles.ratingStyle.Render(fmt.Sprintf("%.1f/10", record.Rating))
	overviewLine := d.styles.overviewStyle.Render(overview)

	content := lipgloss.JoinVertical(lipgloss.Left, typeLine, metadataLine, titleLine, ratingLine, overviewLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list    list.Model
	heading string
	result  SelectionResult
}

func newModel(heading string, records []catalog.TitleRecord) *model {
	listItems := make([]list.Item, len(records))
	for i, record := range records {
		listItems[i] = titleItem{TitleRecord: record}
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:    l,
		heading: heading,
		result:  SelectionResult{Action: ActionNone},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(titleItem); ok {
				record := selected.TitleRecord
				m.result = SelectionResult{
					Action:    ActionSelected,
					Selection: &record,
				}
				return m, tea.Quit
			}
		case "n":
			m.result = SelectionResult{Action: ActionNextPage}
			return m, tea.Quit
		case "s", "esc":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		case "ctrl+c", "q":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(m.heading)
	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		nextButtonStyle.Render(" Next Page "),
		lipgloss.NewStyle().Padding(0, 2).Render(""),
		stopButtonStyle.Render(" Quit "),
	)
	help := helpStyle.Render("Up/Down navigate | Enter open | n next page | s back | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), buttons, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	nextButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("178")).
			Foreground(lipgloss.Color("0")).
			Bold(true)

	stopButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("161")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Select presents an interactive picker over records. An empty list is
// reported as skipped without starting the UI.
func Select(heading string, records []catalog.TitleRecord) (SelectionResult, error) {
	if len(records) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	finalModel, err := runProgram(newModel(heading, records))
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func yearOrTBA(record catalog.TitleRecord) string {
	if year := record.Year(); year != "" {
		return year
	}
	return "TBA"
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// formatMetadata creates the metadata line with release date, runtime and genres
func formatMetadata(record catalog.TitleRecord, availableWidth int) string {
	var parts []string

	if record.ReleaseDate != nil {
		parts = append(parts, *record.ReleaseDate)
	}
	if record.Runtime != nil {
		parts = append(parts, fmt.Sprintf("%dm", *record.Runtime))
	}
	if len(record.Genres) > 0 {
		parts = append(parts, strings.Join(record.Genres, ", "))
	}

	if len(parts) == 0 {
		return "No metadata available"
	}

	metadata := strings.Join(parts, " | ")
	if availableWidth > 0 && len(metadata) > availableWidth {
		metadata = truncate(metadata, availableWidth)
	}
	return metadata
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
