package catalog

// Item is a catalog entry as the external store hands it to us. The engine
// treats it as an immutable value during a grouping or ranking pass and emits
// updated copies instead of mutating in place.
type Item struct {
	ID       int64
	Name     string
	Price    int64
	Stock    int
	ImageURL string
	SellDate *Date
	Rank     *int
}

func (i Item) WithSellDate(d Date) Item {
	date := d
	i.SellDate = &date
	return i
}

func (i Item) WithRank(r int) Item {
	rank := r
	i.Rank = &rank
	return i
}

// DateMove pairs an item with its new sell date, the unit the external store
// persists after a bulk move.
type DateMove struct {
	ItemID   int64
	SellDate Date
}
