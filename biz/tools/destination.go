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
	"math/rand"
	"strings"
	"time"

	"github.com/RanFeng/ilog"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"

	"github.com/tripwise-ai/tripwise/biz/consts"
	"github.com/tripwise-ai/tripwise/biz/model"
)

const infoDisclaimer = "This information is for demonstration purposes only."

var infoTypes = []string{"general", "visa", "weather", "safety", "attractions", "transportation", "culture"}

type TravelInfoRequest struct {
	Destination string `json:"destination" jsonschema:"description=Destination to get information about (e.g. Paris)"`
	InfoType    string `json:"info_type,omitempty" jsonschema:"description=Type of information: general, visa, weather, safety, attractions, transportation or culture"`
}

// NewTravelInfoTool builds the travel_info tool backed by the shared cache.
func NewTravelInfoTool(d *Deps) (tool.BaseTool, error) {
	return utils.InferTool(
		consts.ToolTravelInfo,
		"Get information about travel destinations like visa requirements, weather, attractions, etc.",
		d.travelInfo,
	)
}

func (d *Deps) travelInfo(ctx context.Context, req *TravelInfoRequest) (string, error) {
	destination := sanitize(req.Destination)
	infoType := strings.ToLower(sanitize(req.InfoType))
	if infoType == "" {
		infoType = "general"
	}

	if destination == "" {
		ilog.EventWarn(ctx, "travel_info_missing_destination")
		return marshal(model.ValidationError(
			"Missing destination parameter",
			"Please specify a destination to get travel information about.",
		))
	}
	if !validInfoType(infoType) {
		return marshal(model.ValidationError(
			fmt.Sprintf("Invalid info_type: %s", infoType),
			fmt.Sprintf("Please use one of the following info types: %s", strings.Join(infoTypes, ", ")),
		))
	}

	ilog.EventInfo(ctx, "travel_info", "destination", destination, "info_type", infoType)

	cacheKey := fmt.Sprintf("%s:%s:%s", consts.ToolTravelInfo, destination, infoType)
	if v, ok := d.Cache.Get(cacheKey); ok {
		ilog.EventInfo(ctx, "travel_info_cached", "destination", destination)
		return marshal(&model.DestinationInfoResult{Status: model.StatusSuccess, Information: v.(*model.DestinationInfo), Cached: true})
	}

	r := d.rng()
	var info *model.DestinationInfo
	err := d.Retry.Do(ctx, func() error {
		var genErr error
		info, genErr = d.generateTravelInfo(r, destination, infoType)
		return genErr
	})
	if err != nil {
		ilog.EventError(ctx, err, "travel_info_failed", "destination", destination)
		return marshal(model.ServiceError(
			"Travel information is temporarily unavailable.",
			"Please try again later or try a different destination.",
		))
	}

	d.Cache.Set(cacheKey, info)
	return marshal(&model.DestinationInfoResult{Status: model.StatusSuccess, Information: info})
}

func (d *Deps) generateTravelInfo(r *rand.Rand, destination, infoType string) (*model.DestinationInfo, error) {
	if err := d.simulateOutage(r); err != nil {
		return nil, err
	}

	details := map[string]string{}
	switch infoType {
	case "visa":
		details["requirements"] = choice(r, []string{
			"A visa is required for most tourists.",
			"A visa is not required for stays under 90 days.",
			"An electronic visa (e-visa) can be obtained online.",
		})
		details["processing_time"] = choice(r, []string{
			"Visa processing typically takes 3-5 business days.",
			"Visa processing typically takes 1-2 weeks.",
			"Visa processing typically takes 24-48 hours with express service.",
		})
		details["documentation"] = choice(r, []string{
			"Required documents include a valid passport, visa application form, and passport photos.",
			"Required documents include a valid passport with at least 6 months validity, proof of accommodation, and return flight ticket.",
			"Required documents include a valid passport, travel insurance, and bank statements.",
		})
	case "weather":
		details["climate"] = destination + " " + choice(r, []string{
			"has a tropical climate.",
			"has a mediterranean climate.",
			"has a continental climate.",
			"has a temperate climate.",
		})
		details["seasons"] = choice(r, []string{
			"The seasons are well-defined with four distinct seasons.",
			"The seasons are primarily wet and dry seasons.",
			"The seasons are mild with little temperature variation throughout the year.",
		})
		details["temperature"] = fmt.Sprintf("Average temperatures range from %d°C in winter to %d°C in summer.",
			randBetween(r, 0, 20), randBetween(r, 20, 40))
	case "safety":
		details["overall"] = destination + " " + choice(r, []string{
			"is generally considered very safe for tourists.",
			"is generally considered safe for tourists.",
			"is generally considered moderately safe for tourists.",
		})
		details["areas_to_avoid"] = choice(r, []string{
			"Travelers are advised to exercise normal precautions.",
			"Travelers are advised to avoid certain neighborhoods after dark.",
			"Travelers are advised to be vigilant in tourist areas where pickpocketing can occur.",
		})
		details["emergency_contacts"] = choice(r, []string{
			"In case of emergency, dial 911.",
			"In case of emergency, dial 112.",
			"In case of emergency, dial 999.",
		})
	case "attractions":
		details["highlights"] = strings.Join([]string{
			fmt.Sprintf("The %s Museum", destination),
			fmt.Sprintf("%s Cathedral", destination),
			fmt.Sprintf("Old Town %s", destination),
			fmt.Sprintf("%s Botanical Gardens", destination),
		}[:randBetween(r, 2, 4)], "; ")
		details["tickets"] = choice(r, []string{
			"Most attractions offer online tickets with skip-the-line options.",
			"City passes cover the major attractions at a discount.",
			"Many attractions are free on the first Sunday of the month.",
		})
	case "transportation":
		details["getting_around"] = choice(r, []string{
			"An extensive metro and bus network covers the city.",
			"Trams and ride-sharing are the easiest way to get around.",
			"The city center is compact and very walkable.",
		})
		details["airport_transfer"] = choice(r, []string{
			"The airport express train reaches the center in about 30 minutes.",
			"Airport shuttles and taxis are available around the clock.",
		})
	case "culture":
		details["etiquette"] = choice(r, []string{
			"Tipping around 10% is customary in restaurants.",
			"Greetings are formal; a handshake is standard.",
			"Dress modestly when visiting religious sites.",
		})
		details["cuisine"] = choice(r, []string{
			"The local cuisine is known for its street food.",
			"The local cuisine is famous for its seafood.",
			"The local cuisine features hearty regional dishes.",
		})
	default: // general
		details["overview"] = destination + " " + choice(r, []string{
			"is a popular travel destination known for its beautiful scenery.",
			"is a popular travel destination known for its rich culture.",
			"is a popular travel destination known for its historical sites.",
			"is a popular travel destination known for its vibrant nightlife.",
			"is a popular travel destination known for its delicious cuisine.",
		})
		details["best_time_to_visit"] = choice(r, []string{
			"The best time to visit is during spring (March-May).",
			"The best time to visit is during summer (June-August).",
			"The best time to visit is during fall (September-November).",
			"The best time to visit is during winter (December-February).",
		})
		details["language"] = choice(r, []string{
			"The primary language spoken is English, and it is widely understood.",
			"The primary language spoken is Spanish, but many locals speak English.",
			"The primary language spoken is French, but English is commonly spoken in tourist areas.",
			"The primary language spoken is German, and English is also widely spoken.",
		})
	}

	return &model.DestinationInfo{
		Destination: destination,
		InfoType:    infoType,
		LastUpdated: time.Now().Format(consts.DateLayout),
		Disclaimer:  infoDisclaimer,
		Details:     details,
	}, nil
}

func validInfoType(t string) bool {
	for _, v := range infoTypes {
		if v == t {
			return true
		}
	}
	return false
}
