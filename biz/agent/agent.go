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

// Package agent assembles the travel assistant: one chat model agent
// holding the flight, hotel, destination info and web search tools.
package agent

import (
	"context"
	"fmt"

	"github.com/RanFeng/ilog"
	"github.com/cloudwego/eino-ext/components/tool/duckduckgo/v2"
	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"

	"github.com/tripwise-ai/tripwise/biz/consts"
	"github.com/tripwise-ai/tripwise/biz/infra"
	"github.com/tripwise-ai/tripwise/biz/search"
	"github.com/tripwise-ai/tripwise/biz/toolcache"
	"github.com/tripwise-ai/tripwise/biz/tools"
	"github.com/tripwise-ai/tripwise/conf"
	"github.com/tripwise-ai/tripwise/pkg/cache"
	"github.com/tripwise-ai/tripwise/pkg/retry"
)

// NewTravelAgent wires the shared cache, retry policy and all four
// tools into a single ChatModelAgent.
func NewTravelAgent(ctx context.Context, cfg *conf.Config) (adk.Agent, error) {
	cm, err := infra.NewChatModelWithFallback(ctx, cfg)
	if err != nil {
		return nil, err
	}

	deps := &tools.Deps{
		Cache: cache.New(cfg.CacheTTL()),
		Retry: retry.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   cfg.RetryBaseDelay(),
			Retryable:   tools.IsRetryable,
		},
		OutageRate: cfg.Tools.OutageRate,
	}

	flightTool, err := tools.NewFlightSearchTool(deps)
	if err != nil {
		return nil, fmt.Errorf("init flight tool: %w", err)
	}
	hotelTool, err := tools.NewHotelSearchTool(deps)
	if err != nil {
		return nil, fmt.Errorf("init hotel tool: %w", err)
	}
	infoTool, err := tools.NewTravelInfoTool(deps)
	if err != nil {
		return nil, fmt.Errorf("init travel info tool: %w", err)
	}
	searchTool, err := newSearchTool(ctx, cfg, deps)
	if err != nil {
		return nil, fmt.Errorf("init web search tool: %w", err)
	}

	return adk.NewChatModelAgent(ctx, &adk.ChatModelAgentConfig{
		Name:        consts.AgentName,
		Description: agentDescription,
		Instruction: travelAgentInstruction,
		Model:       cm,
		ToolsConfig: adk.ToolsConfig{
			ToolsNodeConfig: compose.ToolsNodeConfig{
				Tools: []tool.BaseTool{flightTool, hotelTool, infoTool, searchTool},
				UnknownToolsHandler: func(ctx context.Context, name, input string) (string, error) {
					ilog.EventWarn(ctx, "unknown_tool_call", "name", name, "input", input)
					return fmt.Sprintf("unknown tool: %s", name), nil
				},
			},
		},
		MaxIterations: cfg.Tools.MaxIterations,
	})
}

// newSearchTool prefers the Serper-backed web_search tool. Without a
// Serper key it degrades to DuckDuckGo text search behind the shared
// result cache.
func newSearchTool(ctx context.Context, cfg *conf.Config, deps *tools.Deps) (tool.BaseTool, error) {
	if cfg.Search.SerperAPIKey != "" {
		cli, err := search.NewClient(&search.Config{
			APIKey:  cfg.Search.SerperAPIKey,
			BaseURL: cfg.Search.SerperBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return tools.NewWebSearchTool(deps, cli)
	}

	ilog.EventWarn(ctx, "serper_key_missing", "fallback", "duckduckgo")
	ddg, err := duckduckgo.NewTextSearchTool(ctx, &duckduckgo.Config{
		ToolName:   consts.ToolWebSearch,
		ToolDesc:   "Search the web for up-to-date travel information.",
		MaxResults: cfg.Search.MaxResults,
	})
	if err != nil {
		return nil, err
	}
	return toolcache.Wrap(ddg, deps.Cache), nil
}

// NewRunner wraps the travel agent in a streaming ADK runner.
func NewRunner(ctx context.Context, cfg *conf.Config) (*adk.Runner, error) {
	a, err := NewTravelAgent(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return adk.NewRunner(ctx, adk.RunnerConfig{
		EnableStreaming: true,
		Agent:           a,
	}), nil
}
