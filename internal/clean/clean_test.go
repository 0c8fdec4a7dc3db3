package clean

import (
	"os"
	"testing"
	"time"

	"github.com/arahm071/Messenger-Analysis/internal/model"
)

func TestMain(m *testing.M) {
	// Pin the calendar decomposition so assertions do not depend on the
	// machine's zone.
	time.Local = time.UTC
	os.Exit(m.Run())
}

func rawText(sender string, ts int64, content string) model.RawRecord {
	return model.RawRecord{SenderName: sender, TimestampMS: ts, Content: content, ChatID: "chat_1"}
}

func TestCleanScenario(t *testing.T) {
	records := []model.RawRecord{
		rawText("A", 1700000001000, "good morning 🙂"),
		rawText("B", 1700000002000, "good night"),
		{
			SenderName:  "A",
			TimestampMS: 1700000003000,
			Content:     "A called you.",
			Call:        &model.CallEvent{DurationSeconds: 120, Initiator: "A"},
			ChatID:      "chat_1",
		},
	}

	table, report := Clean(records)
	if report.Dropped() != 0 {
		t.Fatalf("expected no drops, got %+v", report)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", table.Len())
	}
	if table.ChatID != "chat_1" {
		t.Fatalf("unexpected table scope: %q", table.ChatID)
	}

	wantWords := []int{2, 2, 0}
	wantEmojis := []int{1, 0, 0}
	wantCalls := []int{0, 0, 120}
	for i, row := range table.Rows {
		if row.WordCount != wantWords[i] {
			t.Fatalf("row %d word count = %d, want %d", i, row.WordCount, wantWords[i])
		}
		if row.EmojiCount != wantEmojis[i] {
			t.Fatalf("row %d emoji count = %d, want %d", i, row.EmojiCount, wantEmojis[i])
		}
		if row.CallDuration != wantCalls[i] {
			t.Fatalf("row %d call duration = %d, want %d", i, row.CallDuration, wantCalls[i])
		}
	}
}

func TestCleanTimestampDecomposition(t *testing.T) {
	table, _ := Clean([]model.RawRecord{rawText("A", 1700000000000, "hi there")})
	if table.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", table.Len())
	}

	row := table.Rows[0]
	if row.Date != "2023-11-14" {
		t.Fatalf("unexpected date: %s", row.Date)
	}
	if row.Clock != "22:13:20" {
		t.Fatalf("unexpected clock: %s", row.Clock)
	}
	if row.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}
}

func TestCleanDropsAndCounts(t *testing.T) {
	records := []model.RawRecord{
		rawText("A", 1700000001000, "keep me"),
		rawText("", 1700000002000, "no sender"),
		rawText("A", 0, "bad timestamp"),
		{SenderName: "A", TimestampMS: 1700000003000, HasMedia: true, ChatID: "chat_1"},
		rawText("A", 1700000004000, ""), // no content, no reaction, no call
	}

	table, report := Clean(records)
	if table.Len() != 1 {
		t.Fatalf("expected 1 surviving row, got %d", table.Len())
	}
	if report.Malformed != 1 || report.BadTimestamps != 1 || report.MediaRows != 1 || report.EmptyRows != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Dropped() != 4 {
		t.Fatalf("expected 4 dropped, got %d", report.Dropped())
	}
}

func TestCleanKeepsReactionOnlyRows(t *testing.T) {
	records := []model.RawRecord{
		{
			SenderName:  "A",
			TimestampMS: 1700000001000,
			Reactions:   []model.Reaction{{Reaction: "😂", Actor: "B"}},
			ChatID:      "chat_1",
		},
	}

	table, report := Clean(records)
	if table.Len() != 1 {
		t.Fatalf("reaction-only row should survive, report: %+v", report)
	}
	if table.Rows[0].WordCount != 0 || table.Rows[0].EmojiCount != 0 {
		t.Fatalf("reaction-only row should carry zero counts: %+v", table.Rows[0])
	}
}

func TestCleanCallAttribution(t *testing.T) {
	// The same call event seen from both participants: only the
	// initiator's row carries the duration.
	records := []model.RawRecord{
		{
			SenderName:  "A",
			TimestampMS: 1700000001000,
			Call:        &model.CallEvent{DurationSeconds: 300, Initiator: "A"},
			ChatID:      "chat_1",
		},
		{
			SenderName:  "B",
			TimestampMS: 1700000001000,
			Call:        &model.CallEvent{DurationSeconds: 300, Initiator: "A"},
			ChatID:      "chat_1",
		},
	}

	table, report := Clean(records)
	if report.AmbiguousCalls != 0 {
		t.Fatalf("single-initiator call flagged ambiguous: %+v", report)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}

	withDuration := 0
	for _, row := range table.Rows {
		if row.CallDuration > 0 {
			withDuration++
			if row.Sender != "A" {
				t.Fatalf("duration attributed to %s, want A", row.Sender)
			}
		}
	}
	if withDuration != 1 {
		t.Fatalf("duration attributed to %d rows, want exactly 1", withDuration)
	}
}

func TestCleanAmbiguousCallDropped(t *testing.T) {
	records := []model.RawRecord{
		{
			SenderName:  "A",
			TimestampMS: 1700000001000,
			Call:        &model.CallEvent{DurationSeconds: 300, Initiator: "A"},
			ChatID:      "chat_1",
		},
		{
			SenderName:  "B",
			TimestampMS: 1700000001000,
			Call:        &model.CallEvent{DurationSeconds: 300, Initiator: "B"},
			ChatID:      "chat_1",
		},
	}

	table, report := Clean(records)
	if report.AmbiguousCalls != 2 {
		t.Fatalf("expected both claiming rows dropped, report: %+v", report)
	}
	if table.Len() != 0 {
		t.Fatalf("expected no surviving rows, got %d", table.Len())
	}
}

func TestCleanChronologicalOrder(t *testing.T) {
	// Export files list newest first; the cleaned table is ascending.
	records := []model.RawRecord{
		rawText("A", 1700000003000, "third"),
		rawText("B", 1700000002000, "second"),
		rawText("A", 1700000001000, "first"),
	}

	table, _ := Clean(records)
	want := []string{"first", "second", "third"}
	for i, row := range table.Rows {
		if row.Content != want[i] {
			t.Fatalf("row %d = %q, want %q", i, row.Content, want[i])
		}
	}
}

func TestCleanCombinedScope(t *testing.T) {
	records := []model.RawRecord{
		rawText("A", 1700000001000, "one"),
		{SenderName: "C", TimestampMS: 1700000002000, Content: "two", ChatID: "chat_2"},
	}

	table, _ := Clean(records)
	if table.ChatID != "" {
		t.Fatalf("combined table should have empty scope, got %q", table.ChatID)
	}
}

func TestCleanIdempotent(t *testing.T) {
	records := []model.RawRecord{
		rawText("A", 1700000001000, "good morning 🙂"),
		rawText("B", 1700000002000, "good night"),
		{
			SenderName:  "A",
			TimestampMS: 1700000003000,
			Call:        &model.CallEvent{DurationSeconds: 120, Initiator: "A"},
			ChatID:      "chat_1",
		},
	}

	once, _ := Clean(records)

	// Re-express the cleaned rows as raw records and clean again.
	again := make([]model.RawRecord, 0, once.Len())
	for _, row := range once.Rows {
		rec := model.RawRecord{
			SenderName:  row.Sender,
			TimestampMS: row.Timestamp.UnixMilli(),
			Content:     row.Content,
			ChatID:      row.ChatID,
		}
		if row.CallDuration > 0 {
			rec.Call = &model.CallEvent{DurationSeconds: row.CallDuration, Initiator: row.Sender}
		}
		again = append(again, rec)
	}

	twice, report := Clean(again)
	if report.Dropped() != 0 {
		t.Fatalf("re-cleaning dropped rows: %+v", report)
	}
	if twice.Len() != once.Len() {
		t.Fatalf("row count changed: %d vs %d", twice.Len(), once.Len())
	}
	for i := range once.Rows {
		if once.Rows[i] != twice.Rows[i] {
			t.Fatalf("row %d changed:\n first: %+v\nsecond: %+v", i, once.Rows[i], twice.Rows[i])
		}
	}
}
