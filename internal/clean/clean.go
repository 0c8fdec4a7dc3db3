// Package clean transforms raw export records into the canonical table.
package clean

import (
	"sort"
	"time"

	"github.com/arahm071/Messenger-Analysis/internal/model"
)

// Report counts the rows the cleaner dropped, by reason. Counters make
// per-row data-quality recovery observable without aborting a run.
type Report struct {
	Loaded         int
	Malformed      int // missing sender
	BadTimestamps  int
	MediaRows      int
	EmptyRows      int // no content, no reaction, no call signal
	AmbiguousCalls int
}

// Dropped is the total number of records removed during cleaning.
func (r Report) Dropped() int {
	return r.Malformed + r.BadTimestamps + r.MediaRows + r.EmptyRows + r.AmbiguousCalls
}

type callKey struct {
	chatID      string
	timestampMS int64
}

// Clean is a pure transformation from raw records to the canonical table.
// Rows that fail a policy are dropped and counted; nothing is ever left
// partially enriched. Given identical input the output is identical.
func Clean(records []model.RawRecord) (*model.Table, Report) {
	report := Report{Loaded: len(records)}

	ambiguous := ambiguousCallKeys(records)

	rows := make([]model.Row, 0, len(records))
	for _, rec := range records {
		switch {
		case rec.SenderName == "":
			report.Malformed++
			continue
		case rec.TimestampMS <= 0:
			report.BadTimestamps++
			continue
		case rec.HasMedia:
			report.MediaRows++
			continue
		}

		if rec.Call != nil {
			if rec.Call.Initiator == "" {
				report.AmbiguousCalls++
				continue
			}
			if rec.Call.DurationSeconds > 0 && rec.Call.Initiator == rec.SenderName &&
				ambiguous[callKey{rec.ChatID, rec.TimestampMS}] {
				report.AmbiguousCalls++
				continue
			}
		}

		row := enrich(rec)
		if row.Content == "" && len(rec.Reactions) == 0 && rec.Call == nil {
			report.EmptyRows++
			continue
		}
		rows = append(rows, row)
	}

	// The builder preserves export order; chronological order is restored
	// here with a stable sort so equal timestamps keep insertion order.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})

	return &model.Table{ChatID: tableScope(rows), Rows: rows}, report
}

func enrich(rec model.RawRecord) model.Row {
	ts := time.UnixMilli(rec.TimestampMS)

	row := model.Row{
		Sender:    rec.SenderName,
		Timestamp: ts,
		Date:      ts.Format("2006-01-02"),
		Clock:     ts.Format("15:04:05"),
		Content:   rec.Content,
		ChatID:    rec.ChatID,
	}

	row.EmojiCount = len(Emojis(rec.Content))

	if rec.Call != nil {
		// Call rows contribute no words; phrases like "X called you"
		// are event descriptions, not messages.
		if rec.Call.Initiator == rec.SenderName {
			row.CallDuration = rec.Call.DurationSeconds
		}
		return row
	}

	row.WordCount = len(Words(rec.Content))
	return row
}

// ambiguousCallKeys finds call events claimed by more than one initiator:
// same chat, same timestamp, multiple records with a positive duration.
func ambiguousCallKeys(records []model.RawRecord) map[callKey]bool {
	claims := make(map[callKey]int)
	for _, rec := range records {
		if rec.Call == nil || rec.Call.DurationSeconds <= 0 {
			continue
		}
		if rec.Call.Initiator != rec.SenderName {
			continue
		}
		claims[callKey{rec.ChatID, rec.TimestampMS}]++
	}

	ambiguous := make(map[callKey]bool)
	for key, n := range claims {
		if n > 1 {
			ambiguous[key] = true
		}
	}
	return ambiguous
}

// tableScope returns the single chat id the rows span, or "" in combined mode.
func tableScope(rows []model.Row) string {
	scope := ""
	for i, row := range rows {
		if i == 0 {
			scope = row.ChatID
			continue
		}
		if row.ChatID != scope {
			return ""
		}
	}
	return scope
}
