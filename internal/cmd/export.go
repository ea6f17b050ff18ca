// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
)

func newExportCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var (
		format   string // "json", "yaml", "markdown", "bibtex", "ris"
		outPath  string // file path or "-" for stdout
		onlyRead bool
		genre    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to various formats",
		Long: `Export your catalog to JSON, YAML, Markdown, BibTeX or RIS for use in other tools.

Examples:
  arc-bookshelf export -f markdown > books.md
  arc-bookshelf export -f bibtex -o books.bib
  arc-bookshelf export -f yaml --read --genre Sci-Fi`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books := filterBooks(store.List(), onlyRead, genre)

			var (
				outBytes []byte
				err      error
			)
			switch format {
			case "json":
				outBytes, err = exportJSON(books)
			case "yaml":
				outBytes, err = exportYAML(books)
			case "markdown", "md":
				outBytes, err = exportMarkdown(books, time.Now())
			case "bibtex":
				outBytes, err = exportBibTeX(books)
			case "ris":
				outBytes, err = exportRIS(books)
			default:
				return fmt.Errorf("unsupported format: %s (choose json, yaml, markdown, bibtex, ris)", format)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}

			if outPath == "-" || outPath == "" {
				_, err := cmd.OutOrStdout().Write(outBytes)
				return err
			}
			if err := os.WriteFile(outPath, outBytes, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d book(s) to %s\n", len(books), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, yaml, markdown, bibtex, ris")
	cmd.Flags().StringVarP(&outPath, "output", "o", "-", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&onlyRead, "read", false, "Only export books marked as read")
	cmd.Flags().StringVar(&genre, "genre", "", "Only export books of this genre (case-insensitive)")

	return cmd
}

func filterBooks(books []library.Book, onlyRead bool, genre string) []library.Book {
	out := make([]library.Book, 0, len(books))
	for _, b := range books {
		if onlyRead && !b.Read {
			continue
		}
		if genre != "" && !strings.EqualFold(b.Genre, genre) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// exportJSON uses the same layout as the data file.
func exportJSON(books []library.Book) ([]byte, error) {
	data, err := json.MarshalIndent(books, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func exportYAML(books []library.Book) ([]byte, error) {
	return yaml.Marshal(books)
}

// exportMarkdown renders a reading list grouped in catalog order.
func exportMarkdown(books []library.Book, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Library Export\n\n")
	buf.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))
	buf.WriteString(fmt.Sprintf("Total books: %d\n\n---\n\n", len(books)))

	for _, b := range books {
		check := " "
		if b.Read {
			check = "x"
		}
		buf.WriteString(fmt.Sprintf("## [%s] %s\n\n", check, b.Title))
		buf.WriteString("**Author:** " + b.Author + "\n\n")
		buf.WriteString(fmt.Sprintf("**Year:** %d\n\n", b.Year))
		if b.Genre != "" {
			buf.WriteString("**Genre:** " + b.Genre + "\n\n")
		}
		buf.WriteString("**Read:** " + readLabel(b.Read) + "\n\n")
		buf.WriteString("**Date Added:** " + b.DateAdded + "\n\n")
		buf.WriteString("---\n\n")
	}

	return buf.Bytes(), nil
}

var nonKeyChars = regexp.MustCompile(`[^a-z0-9]`)

// citationKey builds "<author surname><year>", deduplicated with a suffix.
func citationKey(b library.Book, seen map[string]int) string {
	key := "unknown"
	if parts := strings.Fields(b.Author); len(parts) > 0 {
		if k := nonKeyChars.ReplaceAllString(strings.ToLower(parts[len(parts)-1]), ""); k != "" {
			key = k
		}
	}
	key = fmt.Sprintf("%s%d", key, b.Year)

	seen[key]++
	if n := seen[key]; n > 1 {
		key = fmt.Sprintf("%s%c", key, 'a'+rune(n-2))
	}
	return key
}

// exportBibTeX converts books to @book entries.
func exportBibTeX(books []library.Book) ([]byte, error) {
	var buf bytes.Buffer
	seen := make(map[string]int)

	for _, b := range books {
		fields := []string{
			fmt.Sprintf("  title = {%s}", escapeBibTeX(b.Title)),
			fmt.Sprintf("  author = {%s}", escapeBibTeX(b.Author)),
			fmt.Sprintf("  year = {%d}", b.Year),
		}
		if b.Genre != "" {
			fields = append(fields, fmt.Sprintf("  keywords = {%s}", escapeBibTeX(b.Genre)))
		}

		buf.WriteString(fmt.Sprintf("@book{%s,\n", citationKey(b, seen)))
		buf.WriteString(strings.Join(fields, ",\n"))
		buf.WriteString("\n}\n\n")
	}

	return buf.Bytes(), nil
}

// escapeBibTeX escapes special characters for BibTeX.
func escapeBibTeX(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// exportRIS converts books to RIS format (reference standard).
func exportRIS(books []library.Book) ([]byte, error) {
	var buf bytes.Buffer

	for _, b := range books {
		buf.WriteString("TY  - BOOK\n")
		buf.WriteString(fmt.Sprintf("TI  - %s\n", b.Title))
		buf.WriteString(fmt.Sprintf("AU  - %s\n", b.Author))
		if b.Year > 0 {
			buf.WriteString(fmt.Sprintf("PY  - %d\n", b.Year))
		}
		if b.Genre != "" {
			buf.WriteString(fmt.Sprintf("KW  - %s\n", b.Genre))
		}
		buf.WriteString(fmt.Sprintf("N1  - Read: %s; added %s\n", readLabel(b.Read), b.DateAdded))
		buf.WriteString("ER  - \n\n")
	}

	return buf.Bytes(), nil
}
