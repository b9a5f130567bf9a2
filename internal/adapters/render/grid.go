// Package render turns simulation results into human and machine readable output.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/core/ports"
)

const (
	idleLabel   = "idle"
	emptyDayMsg = "No schedule for this day."
)

var _ ports.Renderer = (*Grid)(nil)

// Grid renders a result as one schedule table per day followed by the
// inventory and the production log.
type Grid struct{}

// NewGrid creates a new Grid renderer.
func NewGrid() *Grid {
	return &Grid{}
}

// Render writes the result to w.
func (g *Grid) Render(w io.Writer, result *domain.Result) error {
	sections := []string{g.summary(result)}

	for _, warning := range result.Warnings {
		sections = append(sections, warnStyle.Render("! "+warning))
	}

	var grid map[int]map[string]map[int]string
	if result.Schedule != nil {
		grid = result.Schedule.Grid()
	}
	for day := 1; day <= result.FinalDay; day++ {
		sections = append(sections, g.day(result, day, grid[day]))
	}

	sections = append(sections, g.inventory(result), g.log(result))

	_, err := fmt.Fprintln(w, strings.Join(sections, "\n\n"))
	return err
}

func (g *Grid) summary(result *domain.Result) string {
	status := doneStyle.Render(string(result.Status))
	if !result.Done() {
		status = abortedStyle.Render(string(result.Status))
	}
	return fmt.Sprintf("Status: %s\nEstimated days: %d\nFinal day: %d\nElapsed: %d min",
		status, result.EstimatedDays, result.FinalDay, result.ElapsedMinutes)
}

// day renders the TIME x worker grid of one day. Absent cells are idle.
func (g *Grid) day(result *domain.Result, day int, byWorker map[string]map[int]string) string {
	title := titleStyle.Render("Day " + strconv.Itoa(day))
	if len(byWorker) == 0 {
		return title + "\n" + emptyDayMsg
	}

	workers := result.Schedule.Workers()
	headers := append([]string{"TIME"}, workers...)

	rows := make([][]string, 0, result.SlotsPerDay())
	for slot := range result.SlotsPerDay() {
		row := make([]string, 0, len(headers))
		row = append(row, domain.FormatClock(slot*result.SlotMinutes))
		for _, worker := range workers {
			summary, ok := byWorker[worker][slot]
			if !ok {
				row = append(row, idleLabel)
				continue
			}
			row = append(row, summary)
		}
		rows = append(rows, row)
	}

	t := newTable(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col > 0 && rows[row][col] == idleLabel:
				return idleStyle
			default:
				return cellStyle
			}
		}).
		Rows(rows...)

	return title + "\n" + t.String()
}

func (g *Grid) inventory(result *domain.Result) string {
	title := titleStyle.Render("Inventory")
	if result.Inventory == nil || len(result.Inventory.TaskIDs()) == 0 {
		return title + "\nNothing produced."
	}

	t := newTable("TASK", "PIECES").StyleFunc(plainStyle)
	for _, id := range result.Inventory.TaskIDs() {
		t.Row(id, strconv.Itoa(result.Inventory.Count(id)))
	}
	return title + "\n" + t.String()
}

func (g *Grid) log(result *domain.Result) string {
	title := titleStyle.Render("Log")
	if len(result.Log) == 0 {
		return title + "\nNo production events."
	}

	t := newTable("DAY", "TIME", "EVENT").StyleFunc(plainStyle)
	for _, entry := range result.Log {
		t.Row(strconv.Itoa(entry.Day), entry.Time, entry.Event())
	}
	return title + "\n" + t.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func plainStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return cellStyle
}
