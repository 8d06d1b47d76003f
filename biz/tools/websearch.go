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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/RanFeng/ilog"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"

	"github.com/tripwise-ai/tripwise/biz/consts"
	"github.com/tripwise-ai/tripwise/biz/model"
	"github.com/tripwise-ai/tripwise/biz/search"
)

const maxSearchResults = 10

// travelTerms mark queries that already carry travel intent. Anything
// else gets a travel prefix so general queries stay on-topic.
var travelTerms = []string{
	"travel", "flight", "hotel", "vacation", "destination", "tourism",
	"tourist", "visa", "airport", "airline", "booking", "resort", "trip",
}

// Searcher is the upstream search dependency. The Serper client
// satisfies it; tests plug in a stub.
type Searcher interface {
	Search(ctx context.Context, req *search.Request) (*search.Response, error)
}

type WebSearchRequest struct {
	Query      string `json:"query" jsonschema:"description=Search query about travel"`
	NumResults int    `json:"num_results,omitempty" jsonschema:"description=Number of results to return (default 3, max 10)"`
	SearchType string `json:"search_type,omitempty" jsonschema:"description=Type of search: web, news or places"`
	Location   string `json:"location,omitempty" jsonschema:"description=Two-letter country code to localize results (e.g. us, fr)"`
	Language   string `json:"language,omitempty" jsonschema:"description=Two-letter language code for results (e.g. en, fr)"`
	Recent     bool   `json:"recent,omitempty" jsonschema:"description=Prefer recent results"`
}

type webSearchTool struct {
	deps     *Deps
	searcher Searcher
}

// NewWebSearchTool builds the web_search tool on top of an upstream
// Searcher. Results are cached; transient upstream failures retry.
func NewWebSearchTool(d *Deps, s Searcher) (tool.BaseTool, error) {
	w := &webSearchTool{deps: d, searcher: s}
	return utils.InferTool(
		consts.ToolWebSearch,
		"Search the web for up-to-date travel information like events, travel advisories or anything not covered by the other tools.",
		w.run,
	)
}

func (w *webSearchTool) run(ctx context.Context, req *WebSearchRequest) (string, error) {
	query := sanitize(req.Query)
	searchType := strings.ToLower(sanitize(req.SearchType))
	if searchType == "" {
		searchType = consts.SearchTypeWeb
	}
	num := req.NumResults
	if num <= 0 {
		num = 3
	}
	if num > maxSearchResults {
		num = maxSearchResults
	}

	if query == "" {
		ilog.EventWarn(ctx, "web_search_missing_query")
		return marshal(model.ValidationError(
			"Missing query parameter",
			"Please provide a search query.",
		))
	}
	switch searchType {
	case consts.SearchTypeWeb, consts.SearchTypeNews, consts.SearchTypePlaces:
	default:
		return marshal(model.ValidationError(
			fmt.Sprintf("Invalid search_type: %s", searchType),
			"Please use one of the following search types: web, news, places.",
		))
	}

	query = travelQuery(query, req.Recent)
	ilog.EventInfo(ctx, "web_search", "query", query, "type", searchType, "num", num)

	location := strings.ToLower(sanitize(req.Location))
	language := strings.ToLower(sanitize(req.Language))

	cacheKey := strings.Join([]string{
		consts.ToolWebSearch, query, searchType, location, language,
		strconv.Itoa(num), strconv.FormatBool(req.Recent),
	}, ":")
	if v, ok := w.deps.Cache.Get(cacheKey); ok {
		ilog.EventInfo(ctx, "web_search_cached", "query", query)
		return marshal(&model.WebSearchResult{Status: model.StatusSuccess, Results: v.([]*model.SearchResult), Cached: true})
	}

	var res *search.Response
	err := w.deps.Retry.Do(ctx, func() error {
		var searchErr error
		res, searchErr = w.searcher.Search(ctx, &search.Request{
			Query:    query,
			Num:      num,
			Type:     searchType,
			Location: location,
			Language: language,
		})
		return searchErr
	})
	if err != nil {
		ilog.EventError(ctx, err, "web_search_failed", "query", query)
		if errors.Is(err, search.ErrUnavailable) {
			return marshal(model.ServiceError(
				"Web search is temporarily unavailable.",
				"Please try again later.",
			))
		}
		return marshal(model.ValidationError(
			"Web search request was rejected.",
			"Please rephrase the query and try again.",
		))
	}

	results := shapeResults(res, searchType, num)
	w.deps.Cache.Set(cacheKey, results)
	return marshal(&model.WebSearchResult{Status: model.StatusSuccess, Results: results})
}

// travelQuery prefixes off-topic queries with a travel term and
// optionally biases toward recent results.
func travelQuery(query string, recent bool) string {
	lower := strings.ToLower(query)
	onTopic := false
	for _, term := range travelTerms {
		if strings.Contains(lower, term) {
			onTopic = true
			break
		}
	}
	if !onTopic {
		query = "travel " + query
	}
	if recent {
		query += " latest"
	}
	return query
}

// shapeResults flattens the provider response into the tool's result
// shape. A knowledge graph entry, when present, leads the list.
func shapeResults(res *search.Response, searchType string, num int) []*model.SearchResult {
	results := make([]*model.SearchResult, 0, num+1)

	if res.KnowledgeGraph != nil && res.KnowledgeGraph.Title != "" {
		results = append(results, &model.SearchResult{
			Title:   res.KnowledgeGraph.Title,
			Link:    res.KnowledgeGraph.Website,
			Snippet: res.KnowledgeGraph.Description,
			Type:    "knowledge_graph",
		})
	}

	switch searchType {
	case consts.SearchTypeNews:
		for _, item := range res.News {
			results = append(results, &model.SearchResult{
				Title:   item.Title,
				Link:    item.Link,
				Snippet: item.Snippet,
				Date:    item.Date,
				Source:  item.Source,
				Type:    consts.SearchTypeNews,
			})
		}
	case consts.SearchTypePlaces:
		for _, item := range res.Places {
			r := &model.SearchResult{
				Title:    item.Title,
				Address:  item.Address,
				Reviews:  item.Reviews,
				Category: item.Category,
				Phone:    item.Phone,
				Website:  item.Website,
				Snippet:  item.Snippet,
				Type:     consts.SearchTypePlaces,
			}
			if item.Rating > 0 {
				r.Rating = strconv.FormatFloat(item.Rating, 'f', 1, 64)
			}
			results = append(results, r)
		}
	default:
		for _, item := range res.Organic {
			results = append(results, &model.SearchResult{
				Title:    item.Title,
				Link:     item.Link,
				Snippet:  item.Snippet,
				Position: item.Position,
				Type:     consts.SearchTypeWeb,
			})
		}
	}

	if len(results) > num {
		results = results[:num]
	}
	return results
}
