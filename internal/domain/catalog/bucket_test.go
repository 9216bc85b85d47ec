package catalog

import (
	"testing"
	"time"
)

// Noon JST, away from any midnight edge.
var testNow = time.Date(2025, time.September, 15, 12, 0, 0, 0, Zone)

func datePtr(d Date) *Date {
	return &d
}

func TestClassifyNilSellDate(t *testing.T) {
	c := NewClassifier(testNow)
	if key := c.Classify(nil); key != UnassignedKey {
		t.Fatalf("nil sell date should be unassigned, got %v", key)
	}
}

func TestClassifySevenDayBoundary(t *testing.T) {
	c := NewClassifier(testNow)

	exactlySeven := DateOf(testNow).AddDays(-7)
	key := c.Classify(datePtr(exactlySeven))
	if key.Kind != KindExactDate {
		t.Fatalf("exactly 7 days old should stay ExactDate, got %v", key)
	}
	if key.Date != exactlySeven {
		t.Fatalf("unexpected exact date key: %v", key.Date)
	}

	overSeven := exactlySeven.AddDays(-1)
	if key := c.Classify(datePtr(overSeven)); key != Aged7Key {
		t.Fatalf("8 days old should be aged7, got %v", key)
	}
}

func TestClassifyThirtyDayBoundary(t *testing.T) {
	c := NewClassifier(testNow)

	exactlyThirty := DateOf(testNow).AddDays(-30)
	if key := c.Classify(datePtr(exactlyThirty)); key != Aged7Key {
		t.Fatalf("exactly 30 days old should still be aged7, got %v", key)
	}

	overThirty := exactlyThirty.AddDays(-1)
	if key := c.Classify(datePtr(overThirty)); key != Aged30Key {
		t.Fatalf("31 days old should be aged30, got %v", key)
	}
}

func TestClassifyFutureAndTodayAreExact(t *testing.T) {
	c := NewClassifier(testNow)

	for _, offset := range []int{0, 1, 14} {
		d := DateOf(testNow).AddDays(offset)
		key := c.Classify(datePtr(d))
		if key.Kind != KindExactDate || key.Date != d {
			t.Fatalf("offset %d: expected ExactDate(%v), got %v", offset, d, key)
		}
	}
}

func TestClassifierUsesFixedZone(t *testing.T) {
	// 23:30 JST on the 15th is still the 14th in UTC. Membership must follow
	// the JST calendar regardless of how the instant is expressed.
	lateEvening := time.Date(2025, time.September, 15, 23, 30, 0, 0, Zone)
	c := NewClassifier(lateEvening.UTC())

	sevenDaysOld := NewDate(2025, time.September, 8)
	if key := c.Classify(datePtr(sevenDaysOld)); key.Kind != KindExactDate {
		t.Fatalf("expected ExactDate at the JST 7-day boundary, got %v", key)
	}
	eightDaysOld := NewDate(2025, time.September, 7)
	if key := c.Classify(datePtr(eightDaysOld)); key != Aged7Key {
		t.Fatalf("expected aged7, got %v", key)
	}
}

func TestBucketKeyOrdering(t *testing.T) {
	newer := ExactDateKey(NewDate(2025, time.September, 20))
	older := ExactDateKey(NewDate(2025, time.September, 10))

	if !newer.Less(older) {
		t.Fatalf("newer exact dates must sort before older ones")
	}
	if !older.Less(Aged7Key) {
		t.Fatalf("exact dates must sort before aged7")
	}
	if !Aged7Key.Less(Aged30Key) {
		t.Fatalf("aged7 must sort before aged30")
	}
	if !Aged30Key.Less(UnassignedKey) {
		t.Fatalf("unassigned must sort last")
	}
	if UnassignedKey.Less(newer) {
		t.Fatalf("unassigned must not sort before exact dates")
	}
}

func TestParseBucketKeyRoundTrip(t *testing.T) {
	for _, s := range []string{"2025-09-15", "aged7", "aged30", "unassigned"} {
		key, err := ParseBucketKey(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if key.String() != s {
			t.Fatalf("round trip %q -> %q", s, key.String())
		}
	}

	if _, err := ParseBucketKey("not-a-bucket"); err == nil {
		t.Fatalf("expected error for invalid bucket key")
	}
}
