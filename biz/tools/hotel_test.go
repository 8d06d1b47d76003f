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
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise-ai/tripwise/biz/model"
)

func TestHotelSearchMissingFields(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.searchHotels(context.Background(), &HotelSearchRequest{Destination: "Paris"})
	require.NoError(t, err)

	te := decodeToolError(t, out)
	assert.Equal(t, model.ErrTypeValidation, te.ErrorType)
	assert.Contains(t, te.Message, "check_in")
	assert.Contains(t, te.Message, "check_out")
}

func TestHotelSearchCheckOutBeforeCheckIn(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.searchHotels(context.Background(), &HotelSearchRequest{
		Destination: "Paris", CheckIn: "2025-05-20", CheckOut: "2025-05-15",
	})
	require.NoError(t, err)

	te := decodeToolError(t, out)
	assert.Equal(t, model.ErrTypeValidation, te.ErrorType)
	assert.Contains(t, te.Message, "Check-out date must be after check-in date")
}

func TestHotelSearchSuccess(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.searchHotels(context.Background(), &HotelSearchRequest{
		Destination: "Paris", CheckIn: "2025-05-15", CheckOut: "2025-05-18",
	})
	require.NoError(t, err)

	res := &model.HotelSearchResult{}
	require.NoError(t, sonic.UnmarshalString(out, res))

	assert.Equal(t, model.StatusSuccess, res.Status)
	assert.False(t, res.Cached)
	require.Len(t, res.Hotels, 5)

	assert.Contains(t, res.Hotels[0].Name, "Paris")
	for _, h := range res.Hotels {
		assert.InDelta(t, h.PricePerNight*3, h.TotalPrice, 0.01)
		assert.GreaterOrEqual(t, h.StarRating, 3)
		assert.LessOrEqual(t, h.StarRating, 5)
		assert.Positive(t, h.AvailableRooms)
	}
}

func TestHotelSearchCachedOnSecondCall(t *testing.T) {
	d := newTestDeps(0)
	req := &HotelSearchRequest{
		Destination: "Paris", CheckIn: "2025-05-15", CheckOut: "2025-05-18",
	}

	first, err := d.searchHotels(context.Background(), req)
	require.NoError(t, err)
	second, err := d.searchHotels(context.Background(), req)
	require.NoError(t, err)

	res1, res2 := &model.HotelSearchResult{}, &model.HotelSearchResult{}
	require.NoError(t, sonic.UnmarshalString(first, res1))
	require.NoError(t, sonic.UnmarshalString(second, res2))

	assert.False(t, res1.Cached)
	assert.True(t, res2.Cached)
	require.Len(t, res2.Hotels, len(res1.Hotels))
	assert.Equal(t, res1.Hotels[0].Name, res2.Hotels[0].Name)
}

func TestHotelSearchFilters(t *testing.T) {
	d := newTestDeps(0)

	out, err := d.searchHotels(context.Background(), &HotelSearchRequest{
		Destination: "Paris", CheckIn: "2025-05-15", CheckOut: "2025-05-18",
		MaxPrice: 200, MinStars: 4,
	})
	require.NoError(t, err)

	res := &model.HotelSearchResult{}
	require.NoError(t, sonic.UnmarshalString(out, res))

	for _, h := range res.Hotels {
		assert.LessOrEqual(t, h.PricePerNight, 200.0)
		assert.GreaterOrEqual(t, h.StarRating, 4)
	}
}

func TestHotelSearchOutage(t *testing.T) {
	d := newTestDeps(1)

	out, err := d.searchHotels(context.Background(), &HotelSearchRequest{
		Destination: "Paris", CheckIn: "2025-05-15", CheckOut: "2025-05-18",
	})
	require.NoError(t, err)

	te := decodeToolError(t, out)
	assert.Equal(t, model.ErrTypeServiceUnavailable, te.ErrorType)
}

func TestFilterHotelsByAmenities(t *testing.T) {
	hotels := []*model.Hotel{
		{Name: "A", Amenities: []string{"pool", "wifi", "spa"}},
		{Name: "B", Amenities: []string{"wifi"}},
		{Name: "C", Amenities: []string{"pool", "wifi"}},
	}

	got := filterHotels(hotels, 0, 0, []string{"pool", "wifi"})
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "C", got[1].Name)
}

func TestParseAmenities(t *testing.T) {
	assert.Nil(t, parseAmenities(""))
	assert.Equal(t, []string{"pool", "wifi", "breakfast"}, parseAmenities("Pool, WIFI ,breakfast"))
}
