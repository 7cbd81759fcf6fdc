package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offer-proxy/internal/cache"
	"offer-proxy/internal/offers"
	"offer-proxy/internal/upstream"
)

type fakeFetcher struct {
	configured bool
	raw        []offers.RawOffer
	err        error
	calls      int
}

func (f *fakeFetcher) Configured() bool { return f.configured }

func (f *fakeFetcher) Fetch(_ context.Context, _, _ string) ([]offers.RawOffer, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func androidRequest() Request {
	return Request{IP: "8.8.8.8", UserAgent: "ua", Country: "US", FormFactor: "mobile", OS: "android"}
}

func TestOffers_NotConfigured(t *testing.T) {
	svc := New(&fakeFetcher{configured: false}, cache.New(time.Minute))
	_, err := svc.Offers(context.Background(), androidRequest())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOffers_MissFetchesFiltersAndRanks(t *testing.T) {
	f := &fakeFetcher{
		configured: true,
		raw: []offers.RawOffer{
			{ID: 1, Name: "Low EPC", Country: "US", Device: "Android", EPC: "0.143", Payout: "5.00", Ctype: "CPI"},
			{ID: 2, Name: "High EPC", Country: "US", Device: "Android", EPC: "0.162", Payout: "0.10", Ctype: "CPI"},
			{ID: 3, Name: "Wrong country", Country: "DE", Device: "Android", EPC: "0.9", Ctype: "CPI"},
			{ID: 4, Name: "iOS only", Country: "US", Device: "iPhone", EPC: "0.9", Ctype: "CPI"},
			{ID: 5, Name: "Lead gen", Country: "US", Device: "Android", EPC: "0.9", Ctype: "CPA"},
		},
	}
	svc := New(f, cache.New(time.Minute))

	got, err := svc.Offers(context.Background(), androidRequest())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, 1, f.calls)
}

func TestOffers_SecondCallHitsCache(t *testing.T) {
	f := &fakeFetcher{
		configured: true,
		raw:        []offers.RawOffer{{ID: 1, Name: "A", Country: "US", Device: "Android", EPC: "0.1", Ctype: "CPI"}},
	}
	svc := New(f, cache.New(time.Minute))
	req := androidRequest()

	first, err := svc.Offers(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Offers(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.calls, "second request must be served from cache")
}

func TestOffers_DistinctKeysFetchSeparately(t *testing.T) {
	f := &fakeFetcher{configured: true}
	svc := New(f, cache.New(time.Minute))

	_, err := svc.Offers(context.Background(), androidRequest())
	require.NoError(t, err)

	caReq := androidRequest()
	caReq.Country = "CA"
	_, err = svc.Offers(context.Background(), caReq)
	require.NoError(t, err)

	assert.Equal(t, 2, f.calls)
}

func TestOffers_UpstreamFailureIsNotCached(t *testing.T) {
	apiErr := &upstream.APIError{StatusCode: http.StatusForbidden, Message: "invalid api key"}
	f := &fakeFetcher{configured: true, err: apiErr}
	svc := New(f, cache.New(time.Minute))
	req := androidRequest()

	_, err := svc.Offers(context.Background(), req)
	var got *upstream.APIError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, http.StatusForbidden, got.StatusCode)

	// failure wrote nothing, so the next request fetches again
	_, _ = svc.Offers(context.Background(), req)
	assert.Equal(t, 2, f.calls)
}

func TestOffers_EmptyEligibleListIsCached(t *testing.T) {
	f := &fakeFetcher{
		configured: true,
		raw:        []offers.RawOffer{{ID: 1, Name: "iOS only", Country: "US", Device: "iPhone", Ctype: "CPI"}},
	}
	svc := New(f, cache.New(time.Minute))
	req := androidRequest()

	got, err := svc.Offers(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.Offers(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, f.calls, "empty result is a valid cacheable outcome")
}
