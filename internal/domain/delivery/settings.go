package delivery

import "sort"

// FeeTier sets the delivery fee for orders whose subtotal is at least
// MinSubtotal. The tier with the highest matching threshold wins.
type FeeTier struct {
	ID          int64
	MinSubtotal int64
	Fee         int64
}

// Window is a deliverable time slot offered at checkout, e.g. 10:00-12:00.
type Window struct {
	ID       int64
	Label    string
	StartsAt string
	EndsAt   string
}

type Settings struct {
	Tiers   []FeeTier
	Windows []Window
}

// FeeFor picks the fee for a subtotal. With no matching tier the fee is the
// one of the lowest tier, or zero when no tiers are configured.
func (s Settings) FeeFor(subtotal int64) int64 {
	tiers := make([]FeeTier, len(s.Tiers))
	copy(tiers, s.Tiers)
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].MinSubtotal < tiers[j].MinSubtotal
	})

	var fee int64
	for i, tier := range tiers {
		if i == 0 || subtotal >= tier.MinSubtotal {
			fee = tier.Fee
		}
	}
	return fee
}

func (s Settings) WindowByID(id int64) (Window, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return Window{}, false
}
