// Package report renders validation results as plain-text tables for the
// taskdeps CLI.
package report

import (
	"fmt"
	"strings"

	"github.com/mobiplan/taskdeps/internal/deps"
)

// Table is a minimal box-drawing table formatter.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{headers: headers, widths: widths}
}

// AddRow appends a row; rows with the wrong column count are ignored.
func (t *Table) AddRow(cells ...string) {
	if len(cells) != len(t.headers) {
		return
	}
	t.rows = append(t.rows, cells)
	for i, cell := range cells {
		if len(cell) > t.widths[i] {
			t.widths[i] = len(cell)
		}
	}
}

// String returns the formatted table.
func (t *Table) String() string {
	var sb strings.Builder

	t.writeBorder(&sb, "┌", "┬", "┐")
	t.writeRow(&sb, t.headers)
	t.writeBorder(&sb, "├", "┼", "┤")
	for _, row := range t.rows {
		t.writeRow(&sb, row)
	}
	t.writeBorder(&sb, "└", "┴", "┘")

	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("│")
	for i, cell := range cells {
		sb.WriteString(fmt.Sprintf(" %-*s ", t.widths[i], cell))
		sb.WriteString("│")
	}
	sb.WriteString("\n")
}

func (t *Table) writeBorder(sb *strings.Builder, left, middle, right string) {
	sb.WriteString(left)
	for i, w := range t.widths {
		sb.WriteString(strings.Repeat("─", w+2))
		if i < len(t.widths)-1 {
			sb.WriteString(middle)
		}
	}
	sb.WriteString(right)
	sb.WriteString("\n")
}

// Render formats validation results as a table followed by a summary line.
// Results are printed in the order given.
func Render(results []deps.ValidationResult) string {
	table := NewTable("TASK", "READY", "WAITING ON", "ISSUE")

	ready := 0
	issues := 0
	for _, res := range results {
		readyCell := "no"
		if res.Valid {
			readyCell = "yes"
			ready++
		}

		waiting := "-"
		if len(res.IncompleteDependencyIDs) > 0 {
			waiting = joinIDs(res.IncompleteDependencyIDs)
		}

		issueCell := "-"
		if res.Issue != nil {
			issues++
			issueCell = describeIssue(res.Issue)
		}

		table.AddRow(string(res.TaskID), readyCell, waiting, issueCell)
	}

	var sb strings.Builder
	sb.WriteString(table.String())
	sb.WriteString(fmt.Sprintf("%d tasks, %d ready, %d blocked, %d with issues\n",
		len(results), ready, len(results)-ready-issues, issues))
	return sb.String()
}

func describeIssue(issue *deps.IntegrityIssue) string {
	switch issue.Kind {
	case deps.IssueSelfDependency:
		return "depends on itself"
	case deps.IssueDanglingReference:
		return fmt.Sprintf("unknown dependency %s", issue.MissingID)
	case deps.IssueCycle:
		return fmt.Sprintf("cycle: %s", joinIDs(issue.CycleMembers))
	default:
		return issue.Kind.String()
	}
}

func joinIDs(ids []deps.TaskID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
