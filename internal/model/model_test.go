package model

import "testing"

func TestSendersFirstAppearanceOrder(t *testing.T) {
	table := &Table{Rows: []Row{
		{Sender: "B", ChatID: "x"},
		{Sender: "A", ChatID: "x"},
		{Sender: "B", ChatID: "y"},
	}}

	senders := table.Senders()
	if len(senders) != 2 || senders[0] != "B" || senders[1] != "A" {
		t.Fatalf("unexpected sender order: %v", senders)
	}
}

func TestFilterChat(t *testing.T) {
	table := &Table{Rows: []Row{
		{Sender: "A", ChatID: "x"},
		{Sender: "B", ChatID: "y"},
		{Sender: "A", ChatID: "x"},
	}}

	filtered := table.FilterChat("x")
	if filtered.ChatID != "x" {
		t.Fatalf("unexpected scope: %q", filtered.ChatID)
	}
	if filtered.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", filtered.Len())
	}
	if table.Len() != 3 {
		t.Fatalf("source table mutated")
	}
}

func TestNilTableAccessors(t *testing.T) {
	var table *Table
	if table.Len() != 0 {
		t.Fatalf("nil table should report zero length")
	}
	if table.Senders() != nil {
		t.Fatalf("nil table should have no senders")
	}
	if table.FilterChat("x").Len() != 0 {
		t.Fatalf("filtering a nil table should yield an empty table")
	}
}
