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

package model

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const (
	ErrTypeValidation         = "ValidationError"
	ErrTypeServiceUnavailable = "ServiceUnavailableError"
)

// ToolError is the uniform error envelope every tool returns to the
// model. Nothing a tool does is fatal to the process; bad input and
// exhausted retries both degrade to this payload.
type ToolError struct {
	Status     string `json:"status"`
	ErrorType  string `json:"error_type,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func ValidationError(message, suggestion string) *ToolError {
	return &ToolError{
		Status:     StatusError,
		ErrorType:  ErrTypeValidation,
		Message:    message,
		Suggestion: suggestion,
	}
}

func ServiceError(message, suggestion string) *ToolError {
	return &ToolError{
		Status:     StatusError,
		ErrorType:  ErrTypeServiceUnavailable,
		Message:    message,
		Suggestion: suggestion,
	}
}

type PriceDetails struct {
	BaseFare     int `json:"base_fare"`
	TaxesAndFees int `json:"taxes_and_fees"`
	PerPassenger int `json:"per_passenger"`
	Total        int `json:"total"`
}

type BaggageAllowance struct {
	CarryOn string `json:"carry_on"`
	Checked string `json:"checked"`
}

type Flight struct {
	Airline       string            `json:"airline"`
	FlightNumber  string            `json:"flight_number"`
	Aircraft      string            `json:"aircraft"`
	Origin        string            `json:"origin"`
	Destination   string            `json:"destination"`
	DepartureDate string            `json:"departure_date"`
	DepartureTime string            `json:"departure_time"`
	ArrivalTime   string            `json:"arrival_time"` // "+1" suffix for next-day arrivals
	Duration      string            `json:"duration"`
	DurationMin   int               `json:"-"`
	Stops         int               `json:"stops"`
	Prices        map[string]int    `json:"prices"` // cabin class -> total for all passengers
	PriceDetails  *PriceDetails     `json:"price_details,omitempty"`
	Amenities     []string          `json:"amenities,omitempty"`
	Baggage       *BaggageAllowance `json:"baggage_allowance,omitempty"`
}

type PriceStatistics struct {
	LowestPrice  int `json:"lowest_price"`
	HighestPrice int `json:"highest_price"`
	AveragePrice int `json:"average_price"`
}

type FlightSearchSummary struct {
	TotalResults      int              `json:"total_results"`
	PriceStatistics   *PriceStatistics `json:"price_statistics"`
	FastestDuration   string           `json:"fastest_duration"`
	AirlinesAvailable int              `json:"airlines_available"`
}

type FlightSearchResult struct {
	Status  string               `json:"status"`
	Flights []*Flight            `json:"flights,omitempty"`
	Return  []*Flight            `json:"return_flights,omitempty"`
	Summary *FlightSearchSummary `json:"search_summary,omitempty"`
}

type Hotel struct {
	Name               string   `json:"name"`
	Address            string   `json:"address"`
	StarRating         int      `json:"star_rating"`
	PricePerNight      float64  `json:"price_per_night"`
	TotalPrice         float64  `json:"total_price"`
	Amenities          []string `json:"amenities"`
	AvailableRooms     int      `json:"available_rooms"`
	CancellationPolicy string   `json:"cancellation_policy"`
}

type HotelSearchResult struct {
	Status string   `json:"status"`
	Hotels []*Hotel `json:"hotels"`
	Cached bool     `json:"cached,omitempty"`
}

type DestinationInfo struct {
	Destination string            `json:"destination"`
	InfoType    string            `json:"info_type"`
	LastUpdated string            `json:"last_updated"`
	Disclaimer  string            `json:"disclaimer"`
	Details     map[string]string `json:"details"`
}

type DestinationInfoResult struct {
	Status      string           `json:"status"`
	Information *DestinationInfo `json:"information"`
	Cached      bool             `json:"cached,omitempty"`
}

// SearchResult is one shaped web/news/places search hit. Fields not
// relevant for the search type stay empty and are omitted.
type SearchResult struct {
	Title    string `json:"title"`
	Link     string `json:"link,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
	Position int    `json:"position,omitempty"`
	Date     string `json:"date,omitempty"`
	Source   string `json:"source,omitempty"`
	Address  string `json:"address,omitempty"`
	Rating   string `json:"rating,omitempty"`
	Reviews  int    `json:"reviews,omitempty"`
	Category string `json:"category,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
	Type     string `json:"type,omitempty"`
}

type WebSearchResult struct {
	Status  string          `json:"status"`
	Results []*SearchResult `json:"results"`
	Cached  bool            `json:"cached,omitempty"`
}
