// Package table renders plain-text tables for terminal reports.
package table

import (
	"strings"
	"unicode/utf8"
)

// Align sets how a column's cells are padded.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table is a fixed-column text table with optional wrapping and a footer.
type Table struct {
	headers   []string
	rows      [][]string
	footer    []string
	padding   int
	maxWidths map[int]int
	aligns    map[int]Align
}

// New creates a table with the given headers.
func New(headers ...string) *Table {
	return &Table{
		headers:   headers,
		padding:   2,
		maxWidths: make(map[int]int),
		aligns:    make(map[int]Align),
	}
}

// SetMaxWidth wraps column col at word boundaries beyond width runes.
func (t *Table) SetMaxWidth(col, width int) {
	t.maxWidths[col] = width
}

// SetAlign sets the alignment of column col.
func (t *Table) SetAlign(col int, a Align) {
	t.aligns[col] = a
}

// AddRow appends a row, padding or truncating it to the header count.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, t.fit(cells))
}

// SetFooter sets a row rendered below a second separator.
func (t *Table) SetFooter(cells ...string) {
	t.footer = t.fit(cells)
}

func (t *Table) fit(cells []string) []string {
	row := make([]string, len(t.headers))
	copy(row, cells)
	return row
}

// Render formats the table. A table without headers renders as "".
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	rows := t.rows
	if t.footer != nil {
		rows = append(append([][]string(nil), rows...), t.footer)
	}

	wrapped := make([][][]string, len(rows))
	for r, row := range rows {
		wrapped[r] = make([][]string, len(row))
		for c, cell := range row {
			if limit := t.maxWidths[c]; limit > 0 {
				wrapped[r][c] = wrapText(cell, limit)
			} else {
				wrapped[r][c] = []string{cell}
			}
		}
	}

	widths := make([]int, len(t.headers))
	for c, h := range t.headers {
		widths[c] = utf8.RuneCountInString(h)
	}
	for _, row := range wrapped {
		for c, lines := range row {
			for _, line := range lines {
				if n := utf8.RuneCountInString(line); n > widths[c] {
					widths[c] = n
				}
			}
		}
	}

	var b strings.Builder
	gap := strings.Repeat(" ", t.padding)

	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for c, cell := range cells {
			parts[c] = t.pad(c, cell, widths[c])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteString("\n")
	}
	separator := func() {
		parts := make([]string, len(widths))
		for c, w := range widths {
			parts[c] = strings.Repeat("-", w)
		}
		b.WriteString(strings.Join(parts, gap))
		b.WriteString("\n")
	}

	writeLine(t.headers)
	separator()

	for r, row := range wrapped {
		if t.footer != nil && r == len(wrapped)-1 {
			separator()
		}
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for i := 0; i < height; i++ {
			cells := make([]string, len(row))
			for c, lines := range row {
				if i < len(lines) {
					cells[c] = lines[i]
				}
			}
			writeLine(cells)
		}
	}

	return b.String()
}

func (t *Table) pad(col int, s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	fill := strings.Repeat(" ", width-n)
	if t.aligns[col] == AlignRight {
		return fill + s
	}
	return s + fill
}

// wrapText wraps text to width runes, breaking at spaces and splitting
// words that are longer than width.
func wrapText(text string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		for utf8.RuneCountInString(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:width]))
			word = string(runes[width:])
		}

		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
