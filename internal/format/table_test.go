package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arahm071/Messenger-Analysis/internal/analyze"
)

func sampleStats() analyze.Stats {
	return analyze.Stats{
		Senders: []analyze.SenderStats{
			{Sender: "Alice Johnson", Messages: 3, Words: 4, CallSeconds: 120},
			{Sender: "Robert Lee", Messages: 1, Words: 2},
		},
		Total: analyze.SenderStats{Sender: "Total", Messages: 4, Words: 6, CallSeconds: 120},
	}
}

func TestWriteStatsPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStats(&buf, sampleStats(), true, "plain"); err != nil {
		t.Fatalf("WriteStats returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 2 senders + total, got %d lines", len(lines))
	}
	if lines[0] != "sender\tmessages\twords\tcall_seconds" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "Alice Johnson\t3\t4\t120" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if lines[3] != "Total\t4\t6\t120" {
		t.Fatalf("unexpected total row: %q", lines[3])
	}
}

func TestWriteStatsTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStats(&buf, sampleStats(), true, "table"); err != nil {
		t.Fatalf("WriteStats returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Alice Johnson", "Robert Lee", "00:02:00", "Total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "TOTAL") {
		t.Fatalf("footer cells should render as appended:\n%s", out)
	}
}

func TestWriteStatsUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStats(&buf, sampleStats(), true, "yaml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestWriteRankedPlain(t *testing.T) {
	entries := []analyze.RankedEntry{
		{Sender: "Alice Johnson", Value: "Coffee", Count: 4},
		{Sender: "Robert Lee", Value: "Tomorrow", Count: 1},
	}

	var buf bytes.Buffer
	if err := WriteRanked(&buf, entries, "Word", true, "plain"); err != nil {
		t.Fatalf("WriteRanked returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "Coffee\tAlice Johnson\t4" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestWriteRankedEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRanked(&buf, nil, "Emoji", true, "table"); err != nil {
		t.Fatalf("WriteRanked returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "(no data)") {
		t.Fatalf("empty ranking should render a placeholder row:\n%s", buf.String())
	}
}

func TestWriteSharesPlain(t *testing.T) {
	shares := []analyze.Share{
		{Sender: "Alice Johnson", Messages: 3, Percent: 75},
		{Sender: "Robert Lee", Messages: 1, Percent: 25},
	}

	var buf bytes.Buffer
	if err := WriteShares(&buf, shares, true, "plain"); err != nil {
		t.Fatalf("WriteShares returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[1] != "Alice Johnson\t3\t75.0" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestWriteFrequencyPlain(t *testing.T) {
	var freq analyze.Frequency
	freq.Counts[1][9] = 2
	freq.Total = 2

	var buf bytes.Buffer
	if err := WriteFrequency(&buf, freq, true, "plain"); err != nil {
		t.Fatalf("WriteFrequency returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected header + 7 weekday rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[2], "Tuesday\t") {
		t.Fatalf("unexpected weekday order: %q", lines[2])
	}
	if !strings.Contains(lines[2], "\t2\t") {
		t.Fatalf("bucket count missing from row: %q", lines[2])
	}
}

func TestWriteFrequencyByDatePlain(t *testing.T) {
	byDate := []analyze.DateFrequency{{Date: "2023-11-14", Total: 3}}
	byDate[0].Hours[9] = 3

	var buf bytes.Buffer
	if err := WriteFrequencyByDate(&buf, byDate, true, "plain"); err != nil {
		t.Fatalf("WriteFrequencyByDate returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 date row, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "2023-11-14\t") || !strings.HasSuffix(lines[1], "\t3") {
		t.Fatalf("unexpected date row: %q", lines[1])
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		0:    "00:00:00",
		-5:   "00:00:00",
		61:   "00:01:01",
		3725: "01:02:05",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}
