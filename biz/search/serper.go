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

// Package search wraps the Serper search proxy API. Serper fronts Google
// and returns organic/news/places results as JSON.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// ErrUnavailable marks transient upstream failures (network errors,
// rate limiting, 5xx). Callers retry on it.
var ErrUnavailable = errors.New("search service unavailable")

const defaultTimeout = 10 * time.Second

type Config struct {
	APIKey  string
	BaseURL string // e.g. https://google.serper.dev
	Timeout time.Duration
}

type Request struct {
	Query    string
	Num      int
	Type     string // web | news | places
	Location string // Serper "gl" country code
	Language string // Serper "hl" language code
}

type KnowledgeGraph struct {
	Title       string `json:"title"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type OrganicItem struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}

type NewsItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
	Source  string `json:"source"`
}

type PlaceItem struct {
	Title     string  `json:"title"`
	Address   string  `json:"address"`
	Rating    float64 `json:"rating"`
	Reviews   int     `json:"ratingCount"`
	Category  string  `json:"category"`
	Phone     string  `json:"phoneNumber"`
	Website   string  `json:"website"`
	Snippet   string  `json:"description"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Response struct {
	KnowledgeGraph *KnowledgeGraph `json:"knowledgeGraph,omitempty"`
	Organic        []OrganicItem   `json:"organic,omitempty"`
	News           []NewsItem      `json:"news,omitempty"`
	Places         []PlaceItem     `json:"places,omitempty"`
}

type serperPayload struct {
	Q  string `json:"q"`
	Nm int    `json:"num,omitempty"`
	GL string `json:"gl,omitempty"`
	HL string `json:"hl,omitempty"`
}

// Client is a thin HTTPS client for the Serper endpoints.
type Client struct {
	cli     *client.Client
	apiKey  string
	baseURL string
}

func NewClient(cfg *Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("serper api key is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://google.serper.dev"
	}

	cli, err := client.NewClient(
		client.WithDialTimeout(timeout),
		client.WithClientReadTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("init serper http client: %w", err)
	}

	return &Client{cli: cli, apiKey: cfg.APIKey, baseURL: baseURL}, nil
}

// Search posts the query to the endpoint matching req.Type and decodes
// the reply. Rate limiting and server errors map to ErrUnavailable.
func (c *Client) Search(ctx context.Context, req *Request) (*Response, error) {
	endpoint := c.baseURL + "/search"
	switch req.Type {
	case "news":
		endpoint = c.baseURL + "/news"
	case "places":
		endpoint = c.baseURL + "/places"
	}

	body, err := sonic.Marshal(&serperPayload{
		Q:  req.Query,
		Nm: req.Num,
		GL: req.Location,
		HL: req.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal serper payload: %w", err)
	}

	hreq, hres := protocol.AcquireRequest(), protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(hreq)
		protocol.ReleaseResponse(hres)
	}()

	hreq.SetMethod(consts.MethodPost)
	hreq.SetRequestURI(endpoint)
	hreq.SetBody(body)
	hreq.Header.SetContentTypeBytes([]byte("application/json"))
	hreq.Header.Set("X-API-KEY", c.apiKey)

	if err := c.cli.Do(ctx, hreq, hres); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return ParseResponse(hres.StatusCode(), hres.Body())
}

// ParseResponse maps a Serper HTTP reply to a Response. Separated from
// the transport so response shaping is testable without a network.
func ParseResponse(status int, body []byte) (*Response, error) {
	switch {
	case status == 429 || status >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, status)
	case status >= 400:
		return nil, fmt.Errorf("search request rejected: status %d", status)
	}

	res := &Response{}
	if err := sonic.Unmarshal(body, res); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return res, nil
}
