package offers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(list []Offer) []int64 {
	out := make([]int64, len(list))
	for i, o := range list {
		out[i] = o.ID
	}
	return out
}

func TestRank_EPCDescending(t *testing.T) {
	list := []Offer{
		Normalize(RawOffer{ID: 1, EPC: "0.143", Payout: "5.00"}),
		Normalize(RawOffer{ID: 2, EPC: "0.162", Payout: "0.10"}),
	}
	Rank(list)
	assert.Equal(t, []int64{2, 1}, ids(list))
}

func TestRank_AbsentEPCRanksLast(t *testing.T) {
	list := []Offer{
		Normalize(RawOffer{ID: 1, EPC: "", Payout: "10.00"}),
		Normalize(RawOffer{ID: 2, EPC: "0.00001", Payout: "0.01"}),
		Normalize(RawOffer{ID: 3, EPC: "0", Payout: "0.01"}),
	}
	Rank(list)
	assert.Equal(t, []int64{2, 3, 1}, ids(list))
}

func TestRank_PayoutBreaksTies(t *testing.T) {
	list := []Offer{
		Normalize(RawOffer{ID: 1, EPC: "0.2", Payout: "1.00"}),
		Normalize(RawOffer{ID: 2, EPC: "0.2", Payout: "2.00"}),
	}
	Rank(list)
	assert.Equal(t, []int64{2, 1}, ids(list))
}

func TestRank_StableOnEqualKeys(t *testing.T) {
	list := []Offer{
		Normalize(RawOffer{ID: 10, EPC: "0.2", Payout: "1.00"}),
		Normalize(RawOffer{ID: 11, EPC: "0.2", Payout: "1.00"}),
		Normalize(RawOffer{ID: 12, EPC: "0.2", Payout: "1.00"}),
	}
	Rank(list)
	assert.Equal(t, []int64{10, 11, 12}, ids(list))
}
