package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

type menuItem struct {
	title       string
	description string
	action      string
}

func (i menuItem) FilterValue() string { return i.title }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(menuItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.title)

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + s[0])
		}
	}

	_, _ = fmt.Fprint(w, fn(str))
}

type MainMenuModel struct {
	list         list.Model
	choice       string
	quitting     bool
	selectedItem menuItem
}

func (m MainMenuModel) Init() tea.Cmd {
	return nil
}

func (m MainMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)

		return m, nil

	case tea.KeyMsg:
		switch keypress := msg.String(); keypress {
		case "ctrl+c", "q":
			m.quitting = true

			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(menuItem)
			if ok {
				m.selectedItem = i
				m.choice = i.action
			}

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m MainMenuModel) View() string {
	if m.choice != "" {
		return ""
	}

	if m.quitting {
		return "Goodbye!\n"
	}

	return "\n" + m.list.View()
}

func (m MainMenuModel) GetChoice() string {
	return m.choice
}

func NewMainMenu() MainMenuModel {
	items := []list.Item{
		menuItem{title: "Setup Environment", description: "Create and update the Conda environment", action: "setup"},
		menuItem{title: "Update Environment", description: "Update manifests without recreating the env", action: "setup --update-only"},
		menuItem{title: "Build Dataset", description: "Build a CSV corpus from local .d files", action: "data build"},
		menuItem{title: "Fetch Dataset", description: "Download and cache a hub dataset", action: "dataset fetch"},
		menuItem{title: "List Datasets", description: "List cached datasets", action: "dataset list"},
		menuItem{title: "Show Dataset", description: "Preview a cached dataset", action: "dataset show"},
		menuItem{title: "Show Results", description: "Inspect an evaluation results file", action: "results"},
		menuItem{title: "Run Tests", description: "Run pytest inside the managed environment", action: "test"},
		menuItem{title: "Setup History", description: "Show recorded setup runs", action: "setup history"},
		menuItem{title: "Configure", description: "Show and edit codeeval settings", action: "config"},
		menuItem{title: "Exit", description: "Exit codeeval", action: "exit"},
	}

	const defaultWidth = 20

	l := list.New(items, itemDelegate{}, defaultWidth, 15)
	l.Title = "Codeeval - Code Evaluation Toolkit"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return MainMenuModel{list: l}
}
