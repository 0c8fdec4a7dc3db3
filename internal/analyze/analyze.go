// Package analyze derives the fixed aggregate statistics from the canonical
// table. Every function is side-effect free, reads the table without mutating
// it, and returns an empty or zero-valued result for an empty input.
package analyze

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/arahm071/Messenger-Analysis/internal/clean"
	"github.com/arahm071/Messenger-Analysis/internal/model"
)

// DefaultTopN is the ranking depth used when the caller does not choose one.
const DefaultTopN = 10

// SenderStats aggregates one participant's activity.
type SenderStats struct {
	Sender      string `json:"sender"`
	Messages    int    `json:"messages"`
	Words       int    `json:"words"`
	CallSeconds int    `json:"call_seconds"`
}

// Stats holds per-participant totals plus a grand total row.
type Stats struct {
	Senders []SenderStats `json:"senders"`
	Total   SenderStats   `json:"total"`
}

// ParticipantStats groups rows by sender: message count, summed word count
// and summed call duration. Senders appear in first-appearance order.
func ParticipantStats(t *model.Table) Stats {
	stats := Stats{Total: SenderStats{Sender: "Total"}}
	if t.Len() == 0 {
		return stats
	}

	index := make(map[string]int)
	for _, row := range t.Rows {
		i, ok := index[row.Sender]
		if !ok {
			i = len(stats.Senders)
			index[row.Sender] = i
			stats.Senders = append(stats.Senders, SenderStats{Sender: row.Sender})
		}
		stats.Senders[i].Messages++
		stats.Senders[i].Words += row.WordCount
		stats.Senders[i].CallSeconds += row.CallDuration
	}

	for _, s := range stats.Senders {
		stats.Total.Messages += s.Messages
		stats.Total.Words += s.Words
		stats.Total.CallSeconds += s.CallSeconds
	}
	return stats
}

// RankedEntry is one row of a top-words or top-emojis ranking.
type RankedEntry struct {
	Sender string `json:"sender"`
	Value  string `json:"value"`
	Count  int    `json:"count"`
}

// TopWords returns each sender's n most frequent words, merged into one list
// sorted by descending count. Stop words are excluded, words are title-cased,
// and URL or call rows contribute nothing. Ties keep first-occurrence order.
func TopWords(t *model.Table, n int) []RankedEntry {
	return topRanked(t, n, func(row model.Row) []string {
		if row.CallDuration > 0 || row.WordCount == 0 {
			return nil
		}
		var values []string
		for _, word := range clean.Words(row.Content) {
			titled := clean.TitleWord(word)
			if clean.IsStopWord(titled) {
				continue
			}
			values = append(values, titled)
		}
		return values
	})
}

// TopEmojis returns each sender's n most frequent emojis, merged into one
// list sorted by descending count. Ties keep first-occurrence order.
func TopEmojis(t *model.Table, n int) []RankedEntry {
	return topRanked(t, n, func(row model.Row) []string {
		if row.EmojiCount == 0 {
			return nil
		}
		return clean.Emojis(row.Content)
	})
}

type rankedCounter struct {
	counts map[string]int
	first  map[string]int
	order  int
}

func newRankedCounter() *rankedCounter {
	return &rankedCounter{counts: make(map[string]int), first: make(map[string]int)}
}

func (c *rankedCounter) add(value string) {
	if _, ok := c.counts[value]; !ok {
		c.first[value] = c.order
		c.order++
	}
	c.counts[value]++
}

func (c *rankedCounter) top(sender string, n int) []RankedEntry {
	entries := make([]RankedEntry, 0, len(c.counts))
	for value, count := range c.counts {
		entries = append(entries, RankedEntry{Sender: sender, Value: value, Count: count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return c.first[entries[i].Value] < c.first[entries[j].Value]
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func topRanked(t *model.Table, n int, values func(model.Row) []string) []RankedEntry {
	if n <= 0 {
		n = DefaultTopN
	}
	if t.Len() == 0 {
		return nil
	}

	counters := make(map[string]*rankedCounter)
	senders := t.Senders()
	for _, row := range t.Rows {
		for _, value := range values(row) {
			counter, ok := counters[row.Sender]
			if !ok {
				counter = newRankedCounter()
				counters[row.Sender] = counter
			}
			counter.add(value)
		}
	}

	var merged []RankedEntry
	for _, sender := range senders {
		counter, ok := counters[sender]
		if !ok {
			continue
		}
		merged = append(merged, counter.top(sender, n)...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Count > merged[j].Count
	})
	return merged
}

// Share is one participant's slice of the total message count.
type Share struct {
	Sender   string  `json:"sender"`
	Messages int     `json:"messages"`
	Percent  float64 `json:"percent"`
}

// MessageShare computes each participant's percentage of the total message
// count, rounded to one decimal place. The tenths are apportioned by largest
// remainder so the rounded shares always sum to exactly 100.0 on non-empty
// input: independent rounding drifts once enough senders share a repeating
// fraction.
func MessageShare(t *model.Table) []Share {
	stats := ParticipantStats(t)
	if stats.Total.Messages == 0 {
		return nil
	}

	shares := make([]Share, 0, len(stats.Senders))
	tenths := make([]int, len(stats.Senders))
	fracs := make([]float64, len(stats.Senders))
	total := float64(stats.Total.Messages)
	allotted := 0
	for i, s := range stats.Senders {
		exact := float64(s.Messages) / total * 1000
		floor := math.Floor(exact)
		tenths[i] = int(floor)
		fracs[i] = exact - floor
		allotted += tenths[i]
		shares = append(shares, Share{Sender: s.Sender, Messages: s.Messages})
	}

	// Hand the leftover tenths to the largest fractional parts, first
	// appearance breaking ties.
	order := make([]int, len(tenths))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return fracs[order[i]] > fracs[order[j]]
	})
	for i := 0; i < 1000-allotted; i++ {
		tenths[order[i%len(order)]]++
	}

	for i := range shares {
		shares[i].Percent = float64(tenths[i]) / 10
	}
	return shares
}

// Weekdays is the Monday-first row order of the frequency matrix.
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Frequency is the weekday-by-hour count matrix for heat-map rendering.
// Buckets with no messages hold explicit zeros.
type Frequency struct {
	Counts [7][24]int `json:"counts"`
	Total  int        `json:"total"`
}

// TemporalFrequency buckets every row by weekday and hour. The bucket counts
// sum exactly to the table's row count.
func TemporalFrequency(t *model.Table) Frequency {
	var freq Frequency
	if t.Len() == 0 {
		return freq
	}
	for _, row := range t.Rows {
		day := weekdayIndex(row.Timestamp.Weekday())
		freq.Counts[day][row.Timestamp.Hour()]++
		freq.Total++
	}
	return freq
}

// DateFrequency is one calendar date's hourly counts.
type DateFrequency struct {
	Date  string  `json:"date"`
	Hours [24]int `json:"hours"`
	Total int     `json:"total"`
}

// FrequencyByDate buckets rows by calendar date and hour, dates ascending.
func FrequencyByDate(t *model.Table) []DateFrequency {
	if t.Len() == 0 {
		return nil
	}

	index := make(map[string]int)
	var out []DateFrequency
	for _, row := range t.Rows {
		i, ok := index[row.Date]
		if !ok {
			i = len(out)
			index[row.Date] = i
			out = append(out, DateFrequency{Date: row.Date})
		}
		out[i].Hours[row.Timestamp.Hour()]++
		out[i].Total++
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func weekdayIndex(day time.Weekday) int {
	// time.Weekday is Sunday-first; the matrix is Monday-first.
	return (int(day) + 6) % 7
}

// ExportHeader is the fixed column order of the export view.
var ExportHeader = []string{"sender", "date", "time", "content", "word_count", "emoji_count", "call_duration", "chat_id"}

// ExportView renders the canonical table as header plus string rows, ready
// for flat-file serialization. Row order matches the table.
func ExportView(t *model.Table) [][]string {
	out := make([][]string, 0, t.Len()+1)
	out = append(out, ExportHeader)
	if t.Len() == 0 {
		return out
	}
	for _, row := range t.Rows {
		out = append(out, []string{
			row.Sender,
			row.Date,
			row.Clock,
			row.Content,
			strconv.Itoa(row.WordCount),
			strconv.Itoa(row.EmojiCount),
			strconv.Itoa(row.CallDuration),
			row.ChatID,
		})
	}
	return out
}
