package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jacobusmeintjes/todo/internal/tasks"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func validOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q: use table, json or yaml", format)
}

// writeData renders v as JSON or YAML.
func writeData(w io.Writer, format string, v interface{}) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return validOutput(format)
}

type renderer struct {
	w          io.Writer
	dateFormat string
	today      tasks.Date
}

func (r renderer) table(list []tasks.Task) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(r.w, "No tasks found.")
		return err
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tDUE\tTITLE\tTAGS")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ShortID(),
			status(t),
			t.Priority,
			r.due(t),
			t.Title,
			strings.Join(t.Tags, ","))
	}
	return tw.Flush()
}

func (r renderer) detail(t tasks.Task) error {
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", t.Description)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", status(t))
	fmt.Fprintf(tw, "Priority:\t%s\n", t.Priority)
	fmt.Fprintf(tw, "Created:\t%s\n", t.CreatedAt.Local().Format(r.dateFormat+" 15:04"))
	if t.DueDate != nil {
		fmt.Fprintf(tw, "Due:\t%s\n", r.due(t))
	}
	if t.CompletedAt != nil {
		fmt.Fprintf(tw, "Completed:\t%s (after %s)\n", t.CompletedAt.Local().Format(r.dateFormat+" 15:04"), humanDuration(t.Elapsed()))
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(t.Tags, ", "))
	}
	return tw.Flush()
}

func (r renderer) due(t tasks.Task) string {
	if t.DueDate == nil {
		return "-"
	}
	s := dateString(*t.DueDate, r.dateFormat)
	if t.Completed {
		return s
	}
	switch n := r.today.DaysUntil(*t.DueDate); {
	case n < 0:
		s += fmt.Sprintf(" (%dd overdue)", -n)
	case n == 0:
		s += " (today)"
	}
	return s
}

func dateString(d tasks.Date, layout string) string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(layout)
}

func status(t tasks.Task) string {
	if t.Completed {
		return "done"
	}
	return "open"
}

// humanDuration renders d as e.g. "2d 3h", "45m" or "under a minute".
func humanDuration(d time.Duration) string {
	if d < time.Minute {
		return "under a minute"
	}
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 && days == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}
