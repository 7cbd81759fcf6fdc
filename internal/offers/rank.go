package offers

import (
	"cmp"
	"slices"
)

// Rank sorts offers in place for display: EPC descending, payout descending
// on ties. The sort is stable so offers with equal keys keep their upstream
// order across runs.
func Rank(in []Offer) {
	slices.SortStableFunc(in, func(a, b Offer) int {
		if c := cmp.Compare(epcKey(b), epcKey(a)); c != 0 {
			return c
		}
		return cmp.Compare(b.Payout, a.Payout)
	})
}

// epcKey ranks absent EPC below every present value, including zero.
func epcKey(o Offer) float64 {
	if o.EPC == nil {
		return -1
	}
	return *o.EPC
}
