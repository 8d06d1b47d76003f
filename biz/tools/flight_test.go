/*
 * Copyright 2025 Tripwise Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tools

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise-ai/tripwise/biz/consts"
	"github.com/tripwise-ai/tripwise/biz/model"
	"github.com/tripwise-ai/tripwise/pkg/cache"
	"github.com/tripwise-ai/tripwise/pkg/retry"
)

func newTestDeps(outageRate float64) *Deps {
	return &Deps{
		Cache:      cache.New(time.Hour),
		Retry:      retry.Policy{MaxAttempts: 2, BaseDelay: 0, Retryable: IsRetryable},
		Rand:       rand.New(rand.NewSource(42)),
		OutageRate: outageRate,
	}
}

func decodeToolError(t *testing.T, out string) *model.ToolError {
	t.Helper()
	te := &model.ToolError{}
	require.NoError(t, sonic.UnmarshalString(out, te))
	return te
}

func TestFlightSearchMissingFields(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.searchFlights(context.Background(), &FlightSearchRequest{Origin: "JFK"})
	require.NoError(t, err)

	te := decodeToolError(t, out)
	assert.Equal(t, model.StatusError, te.Status)
	assert.Equal(t, model.ErrTypeValidation, te.ErrorType)
	assert.Contains(t, te.Message, "date")
	assert.Contains(t, te.Message, "destination")
	assert.NotContains(t, te.Message, "origin")
}

func TestFlightSearchInvalidDate(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.searchFlights(context.Background(), &FlightSearchRequest{
		Origin: "JFK", Destination: "LHR", Date: "15-05-2025",
	})
	require.NoError(t, err)

	te := decodeToolError(t, out)
	assert.Equal(t, model.ErrTypeValidation, te.ErrorType)
	assert.Contains(t, te.Message, "YYYY-MM-DD")
}

func TestFlightSearchReturnBeforeDeparture(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.searchFlights(context.Background(), &FlightSearchRequest{
		Origin: "JFK", Destination: "LHR", Date: "2025-05-15", ReturnDate: "2025-05-10",
	})
	require.NoError(t, err)

	te := decodeToolError(t, out)
	assert.Equal(t, model.ErrTypeValidation, te.ErrorType)
	assert.Contains(t, te.Message, "Return date must be after departure date")
}

func TestFlightSearchInvalidCabin(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.searchFlights(context.Background(), &FlightSearchRequest{
		Origin: "JFK", Destination: "LHR", Date: "2025-05-15", CabinClass: "deluxe",
	})
	require.NoError(t, err)

	te := decodeToolError(t, out)
	assert.Equal(t, model.ErrTypeValidation, te.ErrorType)
}

func TestFlightSearchSuccess(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.searchFlights(context.Background(), &FlightSearchRequest{
		Origin: "jfk", Destination: "lhr", Date: "2025-05-15", NumPassengers: 2,
	})
	require.NoError(t, err)

	res := &model.FlightSearchResult{}
	require.NoError(t, sonic.UnmarshalString(out, res))

	assert.Equal(t, model.StatusSuccess, res.Status)
	require.NotEmpty(t, res.Flights)
	assert.LessOrEqual(t, len(res.Flights), 10)
	assert.Empty(t, res.Return)

	for i, f := range res.Flights {
		assert.Equal(t, "JFK", f.Origin)
		assert.Equal(t, "LHR", f.Destination)
		assert.Equal(t, "2025-05-15", f.DepartureDate)
		assert.Positive(t, f.Prices[consts.CabinEconomy])
		assert.Less(t, f.Prices[consts.CabinEconomy], f.Prices[consts.CabinBusiness])
		assert.Less(t, f.Prices[consts.CabinBusiness], f.Prices[consts.CabinFirst])
		if i > 0 {
			assert.GreaterOrEqual(t, f.Prices[consts.CabinEconomy], res.Flights[i-1].Prices[consts.CabinEconomy])
		}
	}

	require.NotNil(t, res.Summary)
	assert.Equal(t, len(res.Flights), res.Summary.TotalResults)
	require.NotNil(t, res.Summary.PriceStatistics)
	assert.LessOrEqual(t, res.Summary.PriceStatistics.LowestPrice, res.Summary.PriceStatistics.AveragePrice)
	assert.LessOrEqual(t, res.Summary.PriceStatistics.AveragePrice, res.Summary.PriceStatistics.HighestPrice)
}

func TestFlightSearchRoundTrip(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.searchFlights(context.Background(), &FlightSearchRequest{
		Origin: "JFK", Destination: "LHR", Date: "2025-05-15", ReturnDate: "2025-05-22",
	})
	require.NoError(t, err)

	res := &model.FlightSearchResult{}
	require.NoError(t, sonic.UnmarshalString(out, res))

	require.NotEmpty(t, res.Return)
	for _, f := range res.Return {
		assert.Equal(t, "LHR", f.Origin)
		assert.Equal(t, "JFK", f.Destination)
		assert.Equal(t, "2025-05-22", f.DepartureDate)
	}
}

func TestFlightSearchOutage(t *testing.T) {
	d := newTestDeps(1)

	out, err := d.searchFlights(context.Background(), &FlightSearchRequest{
		Origin: "JFK", Destination: "LHR", Date: "2025-05-15",
	})
	require.NoError(t, err)

	te := decodeToolError(t, out)
	assert.Equal(t, model.StatusError, te.Status)
	assert.Equal(t, model.ErrTypeServiceUnavailable, te.ErrorType)
	assert.NotEmpty(t, te.Suggestion)
}

func TestFilterByPrice(t *testing.T) {
	flights := []*model.Flight{
		{Prices: map[string]int{consts.CabinEconomy: 300}},
		{Prices: map[string]int{consts.CabinEconomy: 700}},
		{Prices: map[string]int{consts.CabinEconomy: 1200}},
	}

	got := filterByPrice(flights, "200-800", consts.CabinEconomy)
	require.Len(t, got, 2)
	assert.Equal(t, 300, got[0].Prices[consts.CabinEconomy])
	assert.Equal(t, 700, got[1].Prices[consts.CabinEconomy])
}

func TestFilterByPriceInvalidRangeIgnored(t *testing.T) {
	flights := []*model.Flight{
		{Prices: map[string]int{consts.CabinEconomy: 300}},
		{Prices: map[string]int{consts.CabinEconomy: 700}},
	}

	for _, bad := range []string{"cheap", "800-200", "100"} {
		got := filterByPrice(flights, bad, consts.CabinEconomy)
		assert.Len(t, got, 2, "range %q", bad)
	}
}

func TestSortFlightsByDuration(t *testing.T) {
	flights := []*model.Flight{
		{DurationMin: 500},
		{DurationMin: 90},
		{DurationMin: 240},
	}

	sortFlights(flights, "duration", consts.CabinEconomy)

	assert.Equal(t, 90, flights[0].DurationMin)
	assert.Equal(t, 240, flights[1].DurationMin)
	assert.Equal(t, 500, flights[2].DurationMin)
}
