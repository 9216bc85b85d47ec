package catalog

import (
	"fmt"
	"strings"
	"time"
)

type BucketKind int

const (
	KindExactDate BucketKind = iota
	KindAged7
	KindAged30
	KindUnassigned
)

// BucketKey identifies one sell-date bucket. Date is set only for
// KindExactDate and zero otherwise, keeping the key usable as a map key.
type BucketKey struct {
	Kind BucketKind
	Date Date
}

func ExactDateKey(d Date) BucketKey {
	return BucketKey{Kind: KindExactDate, Date: d}
}

var (
	Aged7Key      = BucketKey{Kind: KindAged7}
	Aged30Key     = BucketKey{Kind: KindAged30}
	UnassignedKey = BucketKey{Kind: KindUnassigned}
)

func (k BucketKey) String() string {
	switch k.Kind {
	case KindExactDate:
		return k.Date.String()
	case KindAged7:
		return "aged7"
	case KindAged30:
		return "aged30"
	default:
		return "unassigned"
	}
}

func ParseBucketKey(s string) (BucketKey, error) {
	switch strings.ToLower(s) {
	case "aged7":
		return Aged7Key, nil
	case "aged30":
		return Aged30Key, nil
	case "unassigned":
		return UnassignedKey, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return BucketKey{}, fmt.Errorf("invalid bucket key %q", s)
	}
	return ExactDateKey(d), nil
}

// Less orders buckets for display: exact dates newest first, then the aged
// windows, unassigned always last.
func (k BucketKey) Less(other BucketKey) bool {
	if k.Kind != other.Kind {
		return k.Kind < other.Kind
	}
	if k.Kind == KindExactDate {
		return other.Date.Before(k.Date)
	}
	return false
}

// Classifier computes bucket membership for a batch of items. The cutoffs are
// fixed at construction so every item in one batch sees the same "now", even
// if the batch straddles midnight.
type Classifier struct {
	cutoff7  Date
	cutoff30 Date
}

func NewClassifier(now time.Time) Classifier {
	today := DateOf(now)
	return Classifier{
		cutoff7:  today.AddDays(-7),
		cutoff30: today.AddDays(-30),
	}
}

// Classify maps a nullable sell date onto its bucket. A date exactly 7 (or
// 30) days old is still ExactDate (or Aged7); the comparisons are strict.
func (c Classifier) Classify(sellDate *Date) BucketKey {
	if sellDate == nil {
		return UnassignedKey
	}
	if sellDate.Before(c.cutoff30) {
		return Aged30Key
	}
	if sellDate.Before(c.cutoff7) {
		return Aged7Key
	}
	return ExactDateKey(*sellDate)
}
