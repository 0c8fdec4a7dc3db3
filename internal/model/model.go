// Package model defines the raw export records and the canonical message table.
package model

import "time"

// Reaction is a single emoji reaction attached to a message.
type Reaction struct {
	Reaction string
	Actor    string
}

// CallEvent carries the metadata of a voice/video call record.
type CallEvent struct {
	DurationSeconds int
	Initiator       string
}

// RawRecord is one message or event exactly as exported, tagged with the
// conversation it came from. Records are transient: they are consumed once
// when the canonical table is built and never retained.
type RawRecord struct {
	SenderName  string
	TimestampMS int64
	Content     string
	Reactions   []Reaction
	Call        *CallEvent
	HasMedia    bool
	ChatID      string
}

// Row is one cleaned, enriched message or event. Rows are immutable once the
// cleaner has produced them; aggregations only read.
type Row struct {
	Sender       string
	Timestamp    time.Time
	Date         string // 2006-01-02
	Clock        string // 15:04:05
	Content      string
	WordCount    int
	EmojiCount   int
	CallDuration int // seconds, attributed to the call initiator only
	ChatID       string
}

// Table is the canonical row collection for one analysis scope. ChatID is
// empty in combined mode, where rows span multiple conversations.
type Table struct {
	ChatID string
	Rows   []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Senders returns the distinct sender names in first-appearance order.
func (t *Table) Senders() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]bool, 4)
	var out []string
	for _, row := range t.Rows {
		if !seen[row.Sender] {
			seen[row.Sender] = true
			out = append(out, row.Sender)
		}
	}
	return out
}

// FilterChat returns a new table holding only rows from the given chat.
// The receiver is left untouched.
func (t *Table) FilterChat(chatID string) *Table {
	out := &Table{ChatID: chatID}
	if t == nil {
		return out
	}
	for _, row := range t.Rows {
		if row.ChatID == chatID {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
