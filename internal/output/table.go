package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	Border      lipgloss.Border
	BorderColor lipgloss.Color
	HeaderStyle lipgloss.Style
	CellStyle   lipgloss.Style
}

// DefaultTableStyle returns the default table style.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: ColorDimGray,
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(ColorBlue),
		CellStyle:   lipgloss.NewStyle(),
	}
}

// Table is a styled table.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		style:   DefaultTableStyle(),
	}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// SetStyle sets the table style.
func (t *Table) SetStyle(style TableStyle) *Table {
	t.style = style
	return t
}

// String renders the table.
func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.style.HeaderStyle
			}
			return t.style.CellStyle
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}

// TabSummary is one row of the subpanel summary table.
type TabSummary struct {
	Name         string
	Module       string
	HeaderModule string
	Columns      int
	Buttons      int
	LineActions  int
	Insight      string
}

// RenderTabTable renders a summary table of translated tabs.
func RenderTabTable(tabs []TabSummary) string {
	t := NewTable("TAB", "MODULE", "HEADER", "COLUMNS", "BUTTONS", "LINE ACTIONS", "INSIGHT")

	for _, tab := range tabs {
		insight := tab.Insight
		if insight == "" {
			insight = "-"
		}
		t.Row(tab.Name, tab.Module, tab.HeaderModule,
			itoa(tab.Columns), itoa(tab.Buttons), itoa(tab.LineActions), insight)
	}

	return t.String()
}
