package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column of a Table, Width is the minimum cell width
type Column struct {
	Name  string
	Width int
	Align Align
}

// Table renders aligned rows with a bold header and a dim separator
type Table struct {
	columns []Column
	rows    [][]string
}

func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row, missing values render empty
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	copy(row, values)
	t.rows = append(t.rows, row)
}

func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = max(c.Width, lipgloss.Width(c.Name))
		for _, row := range t.rows {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	sb := &strings.Builder{}
	header := make([]string, len(t.columns))
	separator := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = Bold.Render(pad(c.Name, widths[i], c.Align))
		separator[i] = Dim.Render(strings.Repeat("─", widths[i]))
	}
	sb.WriteString(strings.TrimRight(strings.Join(header, "  "), " "))
	sb.WriteByte('\n')
	sb.WriteString(strings.Join(separator, "  "))
	sb.WriteByte('\n')

	for _, row := range t.rows {
		cells := make([]string, len(t.columns))
		for i, c := range t.columns {
			cells[i] = pad(row[i], widths[i], c.Align)
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func pad(value string, width int, align Align) string {
	gap := width - lipgloss.Width(value)
	if gap <= 0 {
		return value
	}
	if align == AlignRight {
		return strings.Repeat(" ", gap) + value
	}
	return value + strings.Repeat(" ", gap)
}
