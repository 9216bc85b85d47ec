package catalog

import (
	"testing"
	"time"
)

func TestMoveToDateReplacesSellDateOnly(t *testing.T) {
	oldDate := NewDate(2025, time.September, 10)
	newDate := NewDate(2025, time.September, 20)
	items := []Item{
		{ID: 1, Name: "Chirashi Set", Stock: 4, Rank: rankPtr(2), SellDate: datePtr(oldDate)},
		{ID: 2, Name: "Saba Bento", Stock: 7, Rank: nil},
	}

	moved := MoveToDate(items, newDate)
	if len(moved) != 2 {
		t.Fatalf("expected 2 moved items, got %d", len(moved))
	}

	for i, item := range moved {
		if item.SellDate == nil || *item.SellDate != newDate {
			t.Fatalf("item %d sell date = %v, want %v", item.ID, item.SellDate, newDate)
		}
		if item.Stock != items[i].Stock {
			t.Fatalf("item %d stock changed: %d -> %d", item.ID, items[i].Stock, item.Stock)
		}
	}
	if moved[0].Rank == nil || *moved[0].Rank != 2 {
		t.Fatalf("rank must be preserved through a bulk move")
	}
	if moved[1].Rank != nil {
		t.Fatalf("missing rank must stay missing through a bulk move")
	}

	// Source values are untouched; the move emits copies.
	if *items[0].SellDate != oldDate {
		t.Fatalf("move mutated its input: %v", items[0].SellDate)
	}
	if items[1].SellDate != nil {
		t.Fatalf("move mutated its input: %v", items[1].SellDate)
	}
}
