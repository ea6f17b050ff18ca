// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var addLabels = []string{"Title:", "Author:", "Publication year:", "Genre:", "Has the book been read? (y/n):"}

func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder
	switch m.screen {
	case screenMenu:
		return "\n" + m.menu.View()

	case screenAdd:
		b.WriteString(headerStyle.Render("Add New Book") + "\n\n")
		for i, in := range m.inputs {
			fmt.Fprintf(&b, " %s\n %s\n\n", blurredStyle.Render(addLabels[i]), in.View())
		}
		b.WriteString(m.statusView())
		b.WriteString(blurredStyle.Render(" tab/shift+tab: navigate • enter: next/submit • esc: back"))

	case screenRemove:
		b.WriteString(headerStyle.Render("Remove Book") + "\n\n")
		fmt.Fprintf(&b, " %s\n\n", m.inputs[0].View())
		b.WriteString(m.statusView())
		b.WriteString(blurredStyle.Render(" enter: remove • esc: back"))

	case screenSearch:
		b.WriteString(headerStyle.Render("Search Books") + "\n\n")
		fmt.Fprintf(&b, " %s %s\n\n", blurredStyle.Render("Search by:"), searchByView(m.searchBy))
		fmt.Fprintf(&b, " %s\n\n", m.inputs[0].View())
		b.WriteString(m.statusView())
		b.WriteString(booksView(m.results))
		b.WriteString(blurredStyle.Render(" tab: toggle title/author • enter: search • esc: back"))

	case screenList:
		b.WriteString(headerStyle.Render("All Books") + "\n\n")
		if len(m.results) == 0 {
			b.WriteString(warningStyle.Render(" No books in the library!") + "\n\n")
		} else {
			b.WriteString(booksView(m.results))
		}
		b.WriteString(blurredStyle.Render(" esc: back"))

	case screenStats:
		st := m.store.Statistics()
		b.WriteString(headerStyle.Render("Library Statistics") + "\n\n")
		fmt.Fprintf(&b, " %s %d\n", labelStyle.Render("Total Books:"), st.Total)
		fmt.Fprintf(&b, " %s %d\n", labelStyle.Render("Books Read:"), st.Read)
		fmt.Fprintf(&b, " %s %.1f%%\n\n", labelStyle.Render("Percentage Read:"), st.ReadPercentage)
		b.WriteString(blurredStyle.Render(" esc: back"))
	}

	return "\n" + b.String() + "\n"
}

func (m Model) statusView() string {
	if m.status == "" {
		return ""
	}
	style := noStyle
	switch m.statusKind {
	case statusSuccess:
		style = successStyle
	case statusWarning:
		style = warningStyle
	case statusError:
		style = errorStyle
	}
	return " " + style.Render(m.status) + "\n\n"
}

func searchByView(field library.SearchField) string {
	title, author := "title", "author"
	if field == library.FieldTitle {
		title = focusedStyle.Render("[title]")
	} else {
		author = focusedStyle.Render("[author]")
	}
	return title + " / " + author
}

func booksView(books []library.Book) string {
	var b strings.Builder
	for _, book := range books {
		fmt.Fprintf(&b, " %s %s\n", labelStyle.Render("Title:"), book.Title)
		fmt.Fprintf(&b, " %s %s\n", labelStyle.Render("Author:"), book.Author)
		fmt.Fprintf(&b, " %s %d\n", labelStyle.Render("Year:"), book.Year)
		fmt.Fprintf(&b, " %s %s\n", labelStyle.Render("Genre:"), book.Genre)
		fmt.Fprintf(&b, " %s %s\n", labelStyle.Render("Read:"), yesNo(book.Read))
		fmt.Fprintf(&b, " %s %s\n", labelStyle.Render("Date Added:"), book.DateAdded)
		b.WriteString(" ---\n")
	}
	if len(books) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
