package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/halfmoonliu/SaturationApp/internal/pipeline"
)

// View renders a complete analysis: title, preview table, dropped-row
// notice and the four metric cards. maxRows caps the preview; 0 shows all.
func View(s Styles, res *pipeline.Result, maxRows int) string {
	var b strings.Builder

	b.WriteString(s.Title.Render(fmt.Sprintf("Interview %s Analysis", titleCase(res.Dataset.Label))))
	b.WriteString("\n\n")
	b.WriteString(Table(s, res, maxRows))
	b.WriteString("\n")

	if res.Dataset.DroppedRows > 0 {
		notice := fmt.Sprintf("%d row(s) dropped: non-numeric value in a required column", res.Dataset.DroppedRows)
		b.WriteString(s.Warning.Render(notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Metrics(s, res))
	b.WriteString("\n")
	return b.String()
}

// Table renders the four-column preview table.
func Table(s Styles, res *pipeline.Result, maxRows int) string {
	label := titleCase(res.Dataset.Label)
	headers := []string{
		"Interview",
		label + " Collected",
		"New " + label,
		"Cumulative Unique " + label,
	}

	recs := res.Dataset.Records
	truncated := 0
	if maxRows > 0 && len(recs) > maxRows {
		truncated = len(recs) - maxRows
		recs = recs[:maxRows]
	}

	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			formatNumber(r.InterviewNumber),
			formatNumber(r.ItemsCollected),
			formatNumber(r.NewItems),
			formatNumber(r.CumulativeUnique),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(s.TableHeader.Width(widths[i] + 2).Render(h))
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(s.TableCell.Width(widths[i] + 2).Align(lipgloss.Right).Render(cell))
		}
		b.WriteString("\n")
	}
	if truncated > 0 {
		b.WriteString(s.Muted.Render(fmt.Sprintf("... %d more row(s)", truncated)))
		b.WriteString("\n")
	}
	return b.String()
}

// Metrics renders the four summary cards side by side.
func Metrics(s Styles, res *pipeline.Result) string {
	label := titleCase(res.Dataset.Label)
	sum := res.Summary
	cards := []string{
		metricCard(s, "Total Interviews", strconv.Itoa(sum.TotalInterviews)),
		metricCard(s, "Total Unique "+label, strconv.Itoa(sum.TotalUniqueItems)),
		metricCard(s, "Avg "+label+"/Interview", fmt.Sprintf("%.1f", sum.AvgItemsPerInterview)),
		metricCard(s, "Avg New "+label+"/Interview", fmt.Sprintf("%.1f", sum.AvgNewItemsPerInterview)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(s Styles, label, value string) string {
	body := s.MetricValue.Render(value) + "\n" + s.MetricLabel.Render(label)
	return s.MetricCard.Render(body)
}

// Failure renders a user-facing error with the static format hint. Nothing
// else is shown alongside it.
func Failure(s Styles, err error) string {
	var b strings.Builder
	b.WriteString(s.Error.Render("[INPUT] " + userMessage(err)))
	b.WriteString("\n")
	b.WriteString(s.Hint.Render(pipeline.FormatHint))
	b.WriteString("\n")
	return b.String()
}

// userMessage maps pipeline failures to a short summary a researcher can
// act on without reading Go errors.
func userMessage(err error) string {
	switch e := err.(type) {
	case *pipeline.StructuralError:
		return fmt.Sprintf("The file must have at least 3 columns (found %d).", e.Columns)
	case *pipeline.ProcessingError:
		if e.Stage == "filtering" {
			return "No usable rows: every row had a non-numeric value in a required column."
		}
		return fmt.Sprintf("Could not process the file: %v.", e.Err)
	default:
		return fmt.Sprintf("Could not process the file: %v.", err)
	}
}

// formatNumber prints whole values without a decimal tail.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
