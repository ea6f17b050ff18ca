// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package tui is the interactive front end: a menu of catalog actions with
// small forms for adding, removing and searching books.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

type screen int

const (
	screenMenu screen = iota
	screenAdd
	screenRemove
	screenSearch
	screenList
	screenStats
)

// Add form field order.
const (
	fieldTitle = iota
	fieldAuthor
	fieldYear
	fieldGenre
	fieldRead
)

type statusKind int

const (
	statusNone statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// Model is the bubbletea model driving the whole interactive session.
type Model struct {
	store  library.BookStore
	screen screen
	menu   list.Model

	inputs []textinput.Model
	focus  int

	searchBy library.SearchField
	results  []library.Book

	status     string
	statusKind statusKind
	quitting   bool
}

// NewModel creates a model positioned on the main menu.
func NewModel(store library.BookStore) Model {
	return Model{
		store:    store,
		screen:   screenMenu,
		menu:     newMenu(),
		searchBy: library.FieldTitle,
	}
}

// Run starts the interactive session and blocks until the user exits.
func Run(store library.BookStore, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(NewModel(store), opts...)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.menu.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenList, screenStats:
			switch msg.String() {
			case "esc", "enter", "q":
				return m.backToMenu(), nil
			}
			return m, nil
		default:
			return m.updateForm(msg)
		}
	}

	if m.screen == screenMenu {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, m.updateInputs(msg)
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		i, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		return m.open(i.action)
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

// open switches to the screen for a menu action.
func (m Model) open(a action) (Model, tea.Cmd) {
	m.status, m.statusKind = "", statusNone
	m.results = nil
	m.focus = 0

	switch a {
	case actionAdd:
		m.screen = screenAdd
		m.inputs = newInputs("Title", "Author", "Publication year", "Genre", "Read? (y/n)")
		m.inputs[fieldYear].CharLimit = 4
		m.inputs[fieldRead].CharLimit = 3
	case actionRemove:
		m.screen = screenRemove
		m.inputs = newInputs("Title of the book to remove")
	case actionSearch:
		m.screen = screenSearch
		m.inputs = newInputs("Search term")
	case actionList:
		m.screen = screenList
		m.inputs = nil
		m.results = m.store.List()
	case actionStats:
		m.screen = screenStats
		m.inputs = nil
	case actionExit:
		m.quitting = true
		return m, tea.Quit
	}

	return m, m.focusInput(0)
}

func (m Model) backToMenu() Model {
	m.screen = screenMenu
	m.inputs = nil
	m.results = nil
	m.status, m.statusKind = "", statusNone
	return m
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.backToMenu(), nil

	case "tab", "shift+tab":
		if m.screen == screenSearch {
			if m.searchBy == library.FieldTitle {
				m.searchBy = library.FieldAuthor
			} else {
				m.searchBy = library.FieldTitle
			}
			return m, nil
		}
		return m, m.cycleFocus(msg.String() == "tab")

	case "up":
		return m, m.cycleFocus(false)

	case "down":
		return m, m.cycleFocus(true)

	case "enter":
		if m.focus < len(m.inputs)-1 {
			return m, m.focusInput(m.focus + 1)
		}
		return m.submit(), nil
	}

	return m, m.updateInputs(msg)
}

func (m *Model) cycleFocus(forward bool) tea.Cmd {
	n := len(m.inputs)
	if n == 0 {
		return nil
	}
	next := m.focus - 1
	if forward {
		next = m.focus + 1
	}
	return m.focusInput((next + n) % n)
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
			m.inputs[j].PromptStyle = focusedStyle
			m.inputs[j].TextStyle = focusedStyle
			continue
		}
		m.inputs[j].Blur()
		m.inputs[j].PromptStyle = noStyle
		m.inputs[j].TextStyle = noStyle
	}
	return cmd
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	// Only the focused input reacts to key presses.
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m Model) value(i int) string {
	return strings.TrimSpace(m.inputs[i].Value())
}

func (m Model) submit() Model {
	switch m.screen {
	case screenAdd:
		return m.submitAdd()
	case screenRemove:
		return m.submitRemove()
	case screenSearch:
		return m.submitSearch()
	}
	return m
}

func (m Model) submitAdd() Model {
	if m.value(fieldTitle) == "" || m.value(fieldAuthor) == "" || m.value(fieldGenre) == "" {
		return m.setStatus(statusWarning, "Please fill in all fields!")
	}

	year, err := strconv.Atoi(m.value(fieldYear))
	if err != nil {
		return m.setStatus(statusWarning, "Publication year must be a number.")
	}
	read, ok := parseYesNo(m.value(fieldRead))
	if !ok {
		return m.setStatus(statusWarning, "Has the book been read? Answer yes or no.")
	}

	in := library.BookInput{
		Title:  m.inputs[fieldTitle].Value(),
		Author: m.inputs[fieldAuthor].Value(),
		Year:   year,
		Genre:  m.inputs[fieldGenre].Value(),
		Read:   read,
	}
	book, err := in.AddTo(m.store)
	switch {
	case errors.Is(err, library.ErrInvalidInput):
		return m.setStatus(statusWarning, err.Error())
	case err != nil:
		return m.setStatus(statusError, fmt.Sprintf("Error saving library: %v", err))
	}

	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.focusInput(0)
	return m.setStatus(statusSuccess, fmt.Sprintf("Book '%s' added successfully!", book.Title))
}

func (m Model) submitRemove() Model {
	title := m.value(0)
	if title == "" {
		return m.setStatus(statusWarning, "Please enter a title!")
	}

	n, err := m.store.Remove(title)
	if err != nil {
		return m.setStatus(statusError, fmt.Sprintf("Error saving library: %v", err))
	}
	if n == 0 {
		return m.setStatus(statusWarning, fmt.Sprintf("No book titled '%s' found.", title))
	}
	m.inputs[0].Reset()
	return m.setStatus(statusSuccess, fmt.Sprintf("Book '%s' removed successfully!", title))
}

func (m Model) submitSearch() Model {
	term := m.value(0)
	if term == "" {
		m.results = nil
		return m.setStatus(statusWarning, "Please enter a search term!")
	}

	m.results = m.store.Search(term, m.searchBy)
	if len(m.results) == 0 {
		return m.setStatus(statusWarning, "No books found!")
	}
	return m.setStatus(statusNone, "")
}

func (m Model) setStatus(kind statusKind, text string) Model {
	m.statusKind = kind
	m.status = text
	return m
}

func parseYesNo(s string) (read, ok bool) {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, true
	case "", "n", "no":
		return false, true
	}
	return false, false
}

func newInputs(placeholders ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 256
		t.Placeholder = p
		inputs[i] = t
	}
	return inputs
}
