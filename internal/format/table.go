// Package format renders aggregation results for the CLI and writes the
// flat-file export.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/arahm071/Messenger-Analysis/internal/analyze"
)

// WriteStats writes participant statistics to w in the requested format.
func WriteStats(w io.Writer, stats analyze.Stats, includeHeader bool, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeStatsTable(w, stats, includeHeader)
	case "plain":
		return writeStatsPlain(w, stats, includeHeader)
	case "json":
		return writeJSON(w, stats)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeStatsTable(w io.Writer, stats analyze.Stats, includeHeader bool) error {
	tw := newTableWriter(w)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	})

	if includeHeader {
		tw.AppendHeader(table.Row{"Sender", "Messages", "Words", "Call Time"})
	}
	for _, s := range stats.Senders {
		tw.AppendRow(table.Row{s.Sender, s.Messages, s.Words, FormatDuration(s.CallSeconds)})
	}
	if len(stats.Senders) == 0 {
		tw.AppendRow(table.Row{"(no messages)", 0, 0, "00:00:00"})
	} else {
		tw.AppendFooter(table.Row{"Total", stats.Total.Messages, stats.Total.Words, FormatDuration(stats.Total.CallSeconds)})
	}

	_ = tw.Render()
	return nil
}

func writeStatsPlain(w io.Writer, stats analyze.Stats, includeHeader bool) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "sender\tmessages\twords\tcall_seconds"); err != nil {
			return err
		}
	}
	for _, s := range stats.Senders {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", s.Sender, s.Messages, s.Words, s.CallSeconds); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total\t%d\t%d\t%d\n", stats.Total.Messages, stats.Total.Words, stats.Total.CallSeconds)
	return err
}

// WriteRanked writes a top-words or top-emojis ranking to w. valueLabel names
// the ranked column ("Word" or "Emoji").
func WriteRanked(w io.Writer, entries []analyze.RankedEntry, valueLabel string, includeHeader bool, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeRankedTable(w, entries, valueLabel, includeHeader)
	case "plain":
		return writeRankedPlain(w, entries, includeHeader)
	case "json":
		return writeJSON(w, entries)
	case "jsonl":
		return writeJSONL(w, entries)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeRankedTable(w io.Writer, entries []analyze.RankedEntry, valueLabel string, includeHeader bool) error {
	tw := newTableWriter(w)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
	})

	if includeHeader {
		tw.AppendHeader(table.Row{"#", valueLabel, "Sender", "Count"})
	}
	for i, entry := range entries {
		tw.AppendRow(table.Row{i + 1, entry.Value, entry.Sender, entry.Count})
	}
	if len(entries) == 0 {
		tw.AppendRow(table.Row{"-", "(no data)", "-", 0})
	}

	_ = tw.Render()
	return nil
}

func writeRankedPlain(w io.Writer, entries []analyze.RankedEntry, includeHeader bool) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "value\tsender\tcount"); err != nil {
			return err
		}
	}
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\n", entry.Value, entry.Sender, entry.Count); err != nil {
			return err
		}
	}
	return nil
}

// WriteShares writes the message-share distribution to w.
func WriteShares(w io.Writer, shares []analyze.Share, includeHeader bool, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeSharesTable(w, shares, includeHeader)
	case "plain":
		return writeSharesPlain(w, shares, includeHeader)
	case "json":
		return writeJSON(w, shares)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeSharesTable(w io.Writer, shares []analyze.Share, includeHeader bool) error {
	tw := newTableWriter(w)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignCenter},
	})

	if includeHeader {
		tw.AppendHeader(table.Row{"Sender", "Messages", "Share"})
	}
	total := 0
	for _, share := range shares {
		tw.AppendRow(table.Row{share.Sender, share.Messages, fmt.Sprintf("%.1f%%", share.Percent)})
		total += share.Messages
	}
	if len(shares) == 0 {
		tw.AppendRow(table.Row{"(no messages)", 0, "0.0%"})
	} else {
		tw.AppendFooter(table.Row{"Total", total, "100.0%"})
	}

	_ = tw.Render()
	return nil
}

func writeSharesPlain(w io.Writer, shares []analyze.Share, includeHeader bool) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "sender\tmessages\tpercent"); err != nil {
			return err
		}
	}
	for _, share := range shares {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%.1f\n", share.Sender, share.Messages, share.Percent); err != nil {
			return err
		}
	}
	return nil
}

// WriteFrequency writes the weekday-by-hour count matrix to w.
func WriteFrequency(w io.Writer, freq analyze.Frequency, includeHeader bool, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeFrequencyTable(w, freq, includeHeader)
	case "plain":
		return writeFrequencyPlain(w, freq, includeHeader)
	case "json":
		return writeJSON(w, freq)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeFrequencyTable(w io.Writer, freq analyze.Frequency, includeHeader bool) error {
	tw := newTableWriter(w)

	if includeHeader {
		header := table.Row{"Day"}
		for hour := 0; hour < 24; hour++ {
			header = append(header, fmt.Sprintf("%02d", hour))
		}
		tw.AppendHeader(header)
	}
	for day, name := range analyze.Weekdays {
		row := table.Row{name}
		for hour := 0; hour < 24; hour++ {
			row = append(row, freq.Counts[day][hour])
		}
		tw.AppendRow(row)
	}

	_ = tw.Render()
	return nil
}

func writeFrequencyPlain(w io.Writer, freq analyze.Frequency, includeHeader bool) error {
	if includeHeader {
		cols := make([]string, 0, 25)
		cols = append(cols, "day")
		for hour := 0; hour < 24; hour++ {
			cols = append(cols, fmt.Sprintf("%02d", hour))
		}
		if _, err := fmt.Fprintln(w, strings.Join(cols, "\t")); err != nil {
			return err
		}
	}
	for day, name := range analyze.Weekdays {
		cols := make([]string, 0, 25)
		cols = append(cols, name)
		for hour := 0; hour < 24; hour++ {
			cols = append(cols, fmt.Sprintf("%d", freq.Counts[day][hour]))
		}
		if _, err := fmt.Fprintln(w, strings.Join(cols, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// WriteFrequencyByDate writes per-calendar-date hourly counts to w.
func WriteFrequencyByDate(w io.Writer, byDate []analyze.DateFrequency, includeHeader bool, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeFrequencyByDateTable(w, byDate, includeHeader)
	case "plain":
		return writeFrequencyByDatePlain(w, byDate, includeHeader)
	case "json":
		return writeJSON(w, byDate)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeFrequencyByDateTable(w io.Writer, byDate []analyze.DateFrequency, includeHeader bool) error {
	tw := newTableWriter(w)

	if includeHeader {
		header := table.Row{"Date"}
		for hour := 0; hour < 24; hour++ {
			header = append(header, fmt.Sprintf("%02d", hour))
		}
		header = append(header, "Total")
		tw.AppendHeader(header)
	}
	for _, day := range byDate {
		row := table.Row{day.Date}
		for hour := 0; hour < 24; hour++ {
			row = append(row, day.Hours[hour])
		}
		row = append(row, day.Total)
		tw.AppendRow(row)
	}
	if len(byDate) == 0 {
		tw.AppendRow(table.Row{"(no messages)"})
	}

	_ = tw.Render()
	return nil
}

func writeFrequencyByDatePlain(w io.Writer, byDate []analyze.DateFrequency, includeHeader bool) error {
	if includeHeader {
		cols := make([]string, 0, 26)
		cols = append(cols, "date")
		for hour := 0; hour < 24; hour++ {
			cols = append(cols, fmt.Sprintf("%02d", hour))
		}
		cols = append(cols, "total")
		if _, err := fmt.Fprintln(w, strings.Join(cols, "\t")); err != nil {
			return err
		}
	}
	for _, day := range byDate {
		cols := make([]string, 0, 26)
		cols = append(cols, day.Date)
		for hour := 0; hour < 24; hour++ {
			cols = append(cols, fmt.Sprintf("%d", day.Hours[hour]))
		}
		cols = append(cols, fmt.Sprintf("%d", day.Total))
		if _, err := fmt.Fprintln(w, strings.Join(cols, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func newTableWriter(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true
	// The default style upper-cases footer cells; keep them as appended.
	tw.Style().Format.Footer = text.FormatDefault
	return tw
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONL(w io.Writer, entries []analyze.RankedEntry) error {
	enc := json.NewEncoder(w)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return err
		}
	}
	return nil
}

// FormatDuration renders seconds as HH:MM:SS.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "00:00:00"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
