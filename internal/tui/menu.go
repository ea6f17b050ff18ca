// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package tui

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

type action string

const (
	actionAdd    action = "add"
	actionRemove action = "remove"
	actionSearch action = "search"
	actionList   action = "list"
	actionStats  action = "stats"
	actionExit   action = "exit"
)

type menuItem struct {
	title  string
	action action
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

func newMenu() list.Model {
	items := []list.Item{
		menuItem{title: "Add Book", action: actionAdd},
		menuItem{title: "Remove Book", action: actionRemove},
		menuItem{title: "Search Books", action: actionSearch},
		menuItem{title: "Display All Books", action: actionList},
		menuItem{title: "Statistics", action: actionStats},
		menuItem{title: "Exit", action: actionExit},
	}

	const defaultWidth = 30

	l := list.New(items, itemDelegate{}, defaultWidth, len(items)+6)
	l.Title = "Personal Library Manager"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return l
}
