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

package consts

// ==================================== Agent / Tool Names ====================================
const (
	AgentName = "travel_assistant"

	ToolFlightSearch = "flight_search"
	ToolHotelSearch  = "hotel_search"
	ToolTravelInfo   = "travel_info"
	ToolWebSearch    = "web_search"
)

// ==================================== Cabin Classes ====================================
const (
	CabinEconomy        = "economy"
	CabinPremiumEconomy = "premium_economy"
	CabinBusiness       = "business"
	CabinFirst          = "first"
)

// ==================================== Search Types ====================================
const (
	SearchTypeWeb    = "web"
	SearchTypeNews   = "news"
	SearchTypePlaces = "places"
)

// ==================================== Date Format ====================================
const DateLayout = "2006-01-02"
