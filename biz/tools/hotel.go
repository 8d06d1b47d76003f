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
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/RanFeng/ilog"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"

	"github.com/tripwise-ai/tripwise/biz/consts"
	"github.com/tripwise-ai/tripwise/biz/model"
)

var hotelAmenityPool = []string{"pool", "wifi", "spa", "restaurant", "gym", "breakfast", "bar", "parking", "room service"}

var cancellationPolicies = []string{
	"Free cancellation until 48 hours before check-in",
	"Free cancellation until 24 hours before check-in",
	"Non-refundable",
}

type HotelSearchRequest struct {
	Destination string  `json:"destination" jsonschema:"description=Hotel location or city (e.g. Paris)"`
	CheckIn     string  `json:"check_in" jsonschema:"description=Check-in date in YYYY-MM-DD format"`
	CheckOut    string  `json:"check_out" jsonschema:"description=Check-out date in YYYY-MM-DD format"`
	Guests      int     `json:"guests,omitempty" jsonschema:"description=Number of guests"`
	MaxPrice    float64 `json:"max_price,omitempty" jsonschema:"description=Maximum price per night in USD"`
	MinStars    int     `json:"min_stars,omitempty" jsonschema:"description=Minimum star rating (1-5)"`
	Amenities   string  `json:"amenities,omitempty" jsonschema:"description=Comma-separated required amenities (e.g. pool,wifi,breakfast)"`
	MaxResults  int     `json:"max_results,omitempty" jsonschema:"description=Maximum number of results to return"`
}

// NewHotelSearchTool builds the hotel_search tool. Results for identical
// search parameters are served from the shared cache within its TTL.
func NewHotelSearchTool(d *Deps) (tool.BaseTool, error) {
	return utils.InferTool(
		consts.ToolHotelSearch,
		"Search for hotels at a specific destination with filters",
		d.searchHotels,
	)
}

func (d *Deps) searchHotels(ctx context.Context, req *HotelSearchRequest) (string, error) {
	destination := sanitize(req.Destination)
	checkIn := sanitize(req.CheckIn)
	checkOut := sanitize(req.CheckOut)

	guests := req.Guests
	if guests <= 0 {
		guests = 2
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	if maxResults > 10 {
		maxResults = 10
	}

	if missing := missingFields(map[string]string{
		"destination": destination, "check_in": checkIn, "check_out": checkOut,
	}); len(missing) > 0 {
		ilog.EventWarn(ctx, "hotel_search_missing_fields", "fields", missing)
		return marshal(model.ValidationError(
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
			"Please provide all required information for hotel search.",
		))
	}
	if !validDate(checkIn) {
		return marshal(model.ValidationError(
			"Invalid check-in date format. Use YYYY-MM-DD.",
			"Please provide the check-in date in YYYY-MM-DD format (e.g. 2025-05-15).",
		))
	}
	if !validDate(checkOut) {
		return marshal(model.ValidationError(
			"Invalid check-out date format. Use YYYY-MM-DD.",
			"Please provide the check-out date in YYYY-MM-DD format (e.g. 2025-05-22).",
		))
	}
	in, _ := parseDate(checkIn)
	out, _ := parseDate(checkOut)
	if !out.After(in) {
		return marshal(model.ValidationError(
			"Check-out date must be after check-in date.",
			"Please make the check-out date at least one day after check-in.",
		))
	}
	nights := int(out.Sub(in).Hours() / 24)

	required := parseAmenities(req.Amenities)

	ilog.EventInfo(ctx, "hotel_search", "destination", destination,
		"check_in", checkIn, "check_out", checkOut, "guests", guests)

	cacheKey := fmt.Sprintf("%s:%s:%s:%s:%d:%.2f:%d:%s",
		consts.ToolHotelSearch, destination, checkIn, checkOut, guests, req.MaxPrice, req.MinStars, strings.Join(required, ","))
	if v, ok := d.Cache.Get(cacheKey); ok {
		ilog.EventInfo(ctx, "hotel_search_cached", "destination", destination)
		return marshal(&model.HotelSearchResult{Status: model.StatusSuccess, Hotels: v.([]*model.Hotel), Cached: true})
	}

	r := d.rng()
	var hotels []*model.Hotel
	err := d.Retry.Do(ctx, func() error {
		var genErr error
		hotels, genErr = d.generateHotels(r, destination, nights, maxResults)
		return genErr
	})
	if err != nil {
		ilog.EventError(ctx, err, "hotel_search_failed", "destination", destination)
		return marshal(model.ServiceError(
			"Hotel search is temporarily unavailable.",
			"Please try again in a moment.",
		))
	}

	hotels = filterHotels(hotels, req.MaxPrice, req.MinStars, required)
	d.Cache.Set(cacheKey, hotels)

	ilog.EventInfo(ctx, "hotel_search_done", "results", len(hotels))
	return marshal(&model.HotelSearchResult{Status: model.StatusSuccess, Hotels: hotels})
}

func (d *Deps) generateHotels(r *rand.Rand, destination string, nights, maxResults int) ([]*model.Hotel, error) {
	if err := d.simulateOutage(r); err != nil {
		return nil, err
	}

	type template struct {
		name  string
		stars int
		rate  float64
	}
	templates := []template{
		{fmt.Sprintf("Grand Hotel %s", destination), 5, 299.99},
		{fmt.Sprintf("Boutique Stay %s", destination), 4, 189.99},
		{fmt.Sprintf("Budget Inn %s", destination), 3, 99.99},
	}
	prefixes := []string{"Harbor View", "Royal", "Old Town", "Riverside", "Central", "Garden", "Skyline"}
	kinds := []string{"Hotel", "Suites", "Inn", "Lodge", "Residence"}
	for len(templates) < maxResults {
		stars := randBetween(r, 3, 5)
		rate := float64(stars)*60 + float64(randBetween(r, 0, 80))
		templates = append(templates, template{
			name:  fmt.Sprintf("%s %s %s", choice(r, prefixes), kinds[r.Intn(len(kinds))], destination),
			stars: stars,
			rate:  math.Round(rate*100) / 100,
		})
	}
	if len(templates) > maxResults {
		templates = templates[:maxResults]
	}

	hotels := make([]*model.Hotel, 0, len(templates))
	for i, tpl := range templates {
		count := randBetween(r, 3, 6)
		perm := r.Perm(len(hotelAmenityPool))[:count]
		amenities := make([]string, 0, count+1)
		for _, idx := range perm {
			amenities = append(amenities, hotelAmenityPool[idx])
		}
		if tpl.stars >= 4 {
			amenities = ensureAmenity(amenities, "wifi")
		}

		hotels = append(hotels, &model.Hotel{
			Name:               tpl.name,
			Address:            fmt.Sprintf("%d %s Street, %s", 100*(i+1)+randBetween(r, 1, 99), choice(r, []string{"Main", "High", "Station", "Market", "Park"}), destination),
			StarRating:         tpl.stars,
			PricePerNight:      tpl.rate,
			TotalPrice:         math.Round(tpl.rate*float64(nights)*100) / 100,
			Amenities:          amenities,
			AvailableRooms:     randBetween(r, 1, 8),
			CancellationPolicy: choice(r, cancellationPolicies),
		})
	}
	return hotels, nil
}

func filterHotels(hotels []*model.Hotel, maxPrice float64, minStars int, required []string) []*model.Hotel {
	out := hotels[:0]
	for _, h := range hotels {
		if maxPrice > 0 && h.PricePerNight > maxPrice {
			continue
		}
		if minStars > 0 && h.StarRating < minStars {
			continue
		}
		if !hasAll(h.Amenities, required) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func parseAmenities(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.ToLower(strings.TrimSpace(sanitize(a))); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func hasAll(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func ensureAmenity(amenities []string, a string) []string {
	for _, x := range amenities {
		if x == a {
			return amenities
		}
	}
	return append(amenities, a)
}
