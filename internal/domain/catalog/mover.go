package catalog

// MoveToDate returns copies of the selected items with the sell date
// replaced. Rank and stock are preserved by contract: a bulk move must not
// silently renumber or change quantities. The destination bucket may be left
// with conflicting ranks; that is resolved by Repair the next time the bucket
// is opened for reordering, not here, because the destination's membership is
// only known after the moved items are merged back and regrouped.
func MoveToDate(items []Item, newSellDate Date) []Item {
	moved := make([]Item, 0, len(items))
	for _, item := range items {
		moved = append(moved, item.WithSellDate(newSellDate))
	}
	return moved
}
