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
	"hash/fnv"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/RanFeng/ilog"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"

	"github.com/tripwise-ai/tripwise/biz/consts"
	"github.com/tripwise-ai/tripwise/biz/model"
)

var (
	airlines = []string{"Delta", "United", "American", "British Airways", "Emirates", "Lufthansa", "Qatar Airways"}
	carriers = []string{"DL", "UA", "AA", "BA", "EK", "LH", "QR"}
	aircraft = []string{"Boeing 737", "Airbus A320", "Boeing 777", "Airbus A380", "Boeing 787", "Airbus A350"}

	cabinClasses = []string{consts.CabinEconomy, consts.CabinPremiumEconomy, consts.CabinBusiness, consts.CabinFirst}
)

type FlightSearchRequest struct {
	Origin        string `json:"origin" jsonschema:"description=Origin airport code (e.g. JFK, LAX)"`
	Destination   string `json:"destination" jsonschema:"description=Destination airport code (e.g. LHR, CDG)"`
	Date          string `json:"date" jsonschema:"description=Departure date in YYYY-MM-DD format"`
	ReturnDate    string `json:"return_date,omitempty" jsonschema:"description=Return date in YYYY-MM-DD format for round trips"`
	NumPassengers int    `json:"num_passengers,omitempty" jsonschema:"description=Number of passengers"`
	MaxResults    int    `json:"max_results,omitempty" jsonschema:"description=Maximum number of results to return"`
	SortBy        string `json:"sort_by,omitempty" jsonschema:"description=Sort results by price, duration, departure or airline"`
	PriceRange    string `json:"price_range,omitempty" jsonschema:"description=Price range in format min-max (e.g. 200-800)"`
	CabinClass    string `json:"cabin_class,omitempty" jsonschema:"description=Cabin class: economy, premium_economy, business or first"`
}

// NewFlightSearchTool builds the flight_search tool. Results are
// randomized demo data; identical searches are intentionally not cached
// so repeated queries show fresh fares.
func NewFlightSearchTool(d *Deps) (tool.BaseTool, error) {
	return utils.InferTool(
		consts.ToolFlightSearch,
		"Search for flights between airports on specific dates",
		d.searchFlights,
	)
}

func (d *Deps) searchFlights(ctx context.Context, req *FlightSearchRequest) (string, error) {
	origin := strings.ToUpper(sanitize(req.Origin))
	destination := strings.ToUpper(sanitize(req.Destination))
	date := sanitize(req.Date)
	returnDate := sanitize(req.ReturnDate)

	passengers := req.NumPassengers
	if passengers <= 0 {
		passengers = 1
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	if maxResults > 30 {
		maxResults = 30
	}
	sortBy := strings.ToLower(sanitize(req.SortBy))
	if sortBy == "" {
		sortBy = "price"
	}
	cabin := strings.ToLower(sanitize(req.CabinClass))
	if cabin == "" {
		cabin = consts.CabinEconomy
	}

	if missing := missingFields(map[string]string{
		"origin": origin, "destination": destination, "date": date,
	}); len(missing) > 0 {
		ilog.EventWarn(ctx, "flight_search_missing_fields", "fields", missing)
		return marshal(model.ValidationError(
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
			"Please provide all required information for flight search.",
		))
	}
	if !validDate(date) {
		return marshal(model.ValidationError(
			"Invalid departure date format. Use YYYY-MM-DD.",
			"Please provide the date in YYYY-MM-DD format (e.g. 2025-05-15).",
		))
	}
	if returnDate != "" {
		if !validDate(returnDate) {
			return marshal(model.ValidationError(
				"Invalid return date format. Use YYYY-MM-DD.",
				"Please provide the return date in YYYY-MM-DD format (e.g. 2025-05-22).",
			))
		}
		dep, _ := parseDate(date)
		ret, _ := parseDate(returnDate)
		if !ret.After(dep) {
			return marshal(model.ValidationError(
				"Return date must be after departure date.",
				"Please pick a return date later than the departure date.",
			))
		}
	}
	if !validCabin(cabin) {
		return marshal(model.ValidationError(
			fmt.Sprintf("Invalid cabin class: %s", cabin),
			"Use one of: economy, premium_economy, business, first.",
		))
	}

	ilog.EventInfo(ctx, "flight_search", "origin", origin, "destination", destination,
		"date", date, "return_date", returnDate, "passengers", passengers)

	r := d.rng()
	var flights []*model.Flight
	err := d.Retry.Do(ctx, func() error {
		var genErr error
		flights, genErr = d.generateFlights(r, origin, destination, date, passengers, maxResults)
		return genErr
	})
	if err != nil {
		ilog.EventError(ctx, err, "flight_search_failed", "origin", origin, "destination", destination)
		return marshal(model.ServiceError(
			"Flight search is temporarily unavailable.",
			"Please try again in a moment.",
		))
	}

	flights = filterByPrice(flights, sanitize(req.PriceRange), cabin)
	sortFlights(flights, sortBy, cabin)

	result := &model.FlightSearchResult{
		Status:  model.StatusSuccess,
		Flights: flights,
		Summary: summarize(flights, cabin),
	}

	if returnDate != "" {
		ret, err := d.generateFlights(r, destination, origin, returnDate, passengers, maxResults)
		if err != nil {
			// Outbound results are already in hand; degrade to one-way.
			ilog.EventWarn(ctx, "return_flight_generation_failed", "err", err)
		} else {
			sortFlights(ret, sortBy, cabin)
			result.Return = ret
		}
	}

	ilog.EventInfo(ctx, "flight_search_done", "results", len(flights))
	return marshal(result)
}

func (d *Deps) generateFlights(r *rand.Rand, origin, destination, date string, passengers, maxResults int) ([]*model.Flight, error) {
	if err := d.simulateOutage(r); err != nil {
		return nil, err
	}

	n := maxResults
	if n > 10 {
		n = 10
	}

	routeFactor := float64(routeHash(origin+destination)%100)/100 + 0.5

	flights := make([]*model.Flight, 0, n)
	for i := 0; i < n; i++ {
		depHour := randBetween(r, 6, 22)
		durHours := randBetween(r, 1, 12)
		durMinutes := r.Intn(60)

		totalMinutes := depHour*60 + durHours*60 + durMinutes
		arrHour := (totalMinutes / 60) % 24
		arrMinute := totalMinutes % 60
		dayOffset := ""
		if totalMinutes >= 24*60 {
			dayOffset = "+1"
		}

		popularityFactor := 1 + 0.2*float64(durHours)/12
		timeFactor := 1 + 0.3*absFloat(float64(depHour)-12)/12
		basePrice := float64(randBetween(r, 200, 1000)) * routeFactor * popularityFactor * timeFactor

		variation := 0.85 + r.Float64()*0.30
		economy := int(basePrice * variation)
		premium := int(basePrice * 1.8 * variation)
		business := int(basePrice * 3.2 * variation)
		first := int(basePrice * 6.5 * variation)

		idx := r.Intn(len(airlines))
		flights = append(flights, &model.Flight{
			Airline:       airlines[idx],
			FlightNumber:  fmt.Sprintf("%s%d", carriers[idx], randBetween(r, 100, 999)),
			Aircraft:      choice(r, aircraft),
			Origin:        origin,
			Destination:   destination,
			DepartureDate: date,
			DepartureTime: fmt.Sprintf("%02d:%02d", depHour, r.Intn(60)),
			ArrivalTime:   fmt.Sprintf("%02d:%02d%s", arrHour, arrMinute, dayOffset),
			Duration:      fmt.Sprintf("%dh %dm", durHours, durMinutes),
			DurationMin:   durHours*60 + durMinutes,
			Stops:         r.Intn(3),
			Prices: map[string]int{
				consts.CabinEconomy:        economy * passengers,
				consts.CabinPremiumEconomy: premium * passengers,
				consts.CabinBusiness:       business * passengers,
				consts.CabinFirst:          first * passengers,
			},
			PriceDetails: &model.PriceDetails{
				BaseFare:     int(float64(economy) * 0.7),
				TaxesAndFees: int(float64(economy) * 0.3),
				PerPassenger: economy,
				Total:        economy * passengers,
			},
			Amenities: []string{
				choice(r, []string{"Wi-Fi", "No Wi-Fi"}),
				choice(r, []string{"Power outlets", "USB charging", "No power"}),
				choice(r, []string{"Seatback entertainment", "No entertainment"}),
				choice(r, []string{"Complimentary meal", "Meal for purchase", "No meal service"}),
			},
			Baggage: &model.BaggageAllowance{
				CarryOn: choice(r, []string{"1 bag", "2 bags"}),
				Checked: choice(r, []string{"0 bags", "1 bag", "2 bags"}),
			},
		})
	}
	return flights, nil
}

func filterByPrice(flights []*model.Flight, priceRange, cabin string) []*model.Flight {
	if priceRange == "" {
		return flights
	}
	lo, hi, ok := parsePriceRange(priceRange)
	if !ok {
		// Invalid range is ignored, matching the lenient filter contract.
		return flights
	}
	out := flights[:0]
	for _, f := range flights {
		if p := f.Prices[cabin]; p >= lo && p <= hi {
			out = append(out, f)
		}
	}
	return out
}

func parsePriceRange(s string) (lo, hi int, ok bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	hi, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

func sortFlights(flights []*model.Flight, sortBy, cabin string) {
	switch sortBy {
	case "duration":
		sort.SliceStable(flights, func(i, j int) bool { return flights[i].DurationMin < flights[j].DurationMin })
	case "departure":
		sort.SliceStable(flights, func(i, j int) bool { return flights[i].DepartureTime < flights[j].DepartureTime })
	case "airline":
		sort.SliceStable(flights, func(i, j int) bool { return flights[i].Airline < flights[j].Airline })
	default: // price
		sort.SliceStable(flights, func(i, j int) bool { return flights[i].Prices[cabin] < flights[j].Prices[cabin] })
	}
}

func summarize(flights []*model.Flight, cabin string) *model.FlightSearchSummary {
	if len(flights) == 0 {
		return nil
	}

	stats := &model.PriceStatistics{LowestPrice: flights[0].Prices[cabin], HighestPrice: flights[0].Prices[cabin]}
	sum := 0
	fastest := flights[0]
	seen := map[string]struct{}{}
	for _, f := range flights {
		p := f.Prices[cabin]
		if p < stats.LowestPrice {
			stats.LowestPrice = p
		}
		if p > stats.HighestPrice {
			stats.HighestPrice = p
		}
		sum += p
		if f.DurationMin < fastest.DurationMin {
			fastest = f
		}
		seen[f.Airline] = struct{}{}
	}
	stats.AveragePrice = sum / len(flights)

	return &model.FlightSearchSummary{
		TotalResults:      len(flights),
		PriceStatistics:   stats,
		FastestDuration:   fastest.Duration,
		AirlinesAvailable: len(seen),
	}
}

func missingFields(fields map[string]string) []string {
	var missing []string
	for name, v := range fields {
		if v == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

func validCabin(cabin string) bool {
	for _, c := range cabinClasses {
		if c == cabin {
			return true
		}
	}
	return false
}

func routeHash(route string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(route))
	return h.Sum32()
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
