// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output renders command results as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Format is a rendering format selectable with -o/--output.
type Format string

const (
	OutputTable Format = "table"
	OutputJSON  Format = "json"
	OutputYAML  Format = "yaml"
)

var formats = []Format{OutputTable, OutputJSON, OutputYAML}

var _ pflag.Value = (*Format)(nil)

func (f *Format) String() string { return string(*f) }

func (f *Format) Set(s string) error {
	for _, known := range formats {
		if strings.EqualFold(s, string(known)) {
			*f = known
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q (choose table, json or yaml)", s)
}

func (f *Format) Type() string { return "format" }

// Options holds the output flag for one command.
type Options struct {
	Format Format
}

// AddFlags registers -o/--output on cmd with def as the default.
func (o *Options) AddFlags(cmd *cobra.Command, def Format) {
	o.Format = def
	cmd.Flags().VarP(&o.Format, "output", "o", "Output format: table, json, yaml")
}

// Is reports whether the selected format is f.
func (o *Options) Is(f Format) bool {
	return o.Format == f
}

// Encode writes v in the selected structured format. It returns false when
// the table format is selected and the caller must render itself.
func (o *Options) Encode(w io.Writer, v any) (bool, error) {
	switch o.Format {
	case OutputJSON:
		return true, JSON(w, v)
	case OutputYAML:
		return true, YAML(w, v)
	}
	return false, nil
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table accumulates rows and renders them with a bordered layout.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// String renders the table.
func (t *Table) String() string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// Render writes the table followed by a newline.
func (t *Table) Render(w io.Writer) {
	fmt.Fprintln(w, t.String())
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
