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

package infra

import (
	"context"
	"fmt"

	"github.com/RanFeng/ilog"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/tripwise-ai/tripwise/conf"
)

// NewChatModel builds a tool-calling chat model for one provider entry.
func NewChatModel(ctx context.Context, mc *conf.ModelConfig) (model.ToolCallingChatModel, error) {
	switch mc.Provider {
	case "deepseek":
		return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			Model:   mc.Name,
			APIKey:  mc.APIKey,
			BaseURL: mc.BaseURL,
		})
	case "openai":
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:   mc.Name,
			APIKey:  mc.APIKey,
			BaseURL: mc.BaseURL,
		})
	case "ark":
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			Model:   mc.Name,
			APIKey:  mc.APIKey,
			BaseURL: mc.BaseURL,
		})
	case "ollama":
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			Model:   mc.Name,
			BaseURL: mc.BaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown model provider: %s", mc.Provider)
	}
}

// NewChatModelWithFallback tries the primary model first, then each
// fallback in order. Providers without a key are skipped.
func NewChatModelWithFallback(ctx context.Context, cfg *conf.Config) (model.ToolCallingChatModel, error) {
	candidates := make([]*conf.ModelConfig, 0, len(cfg.Model.Fallbacks)+1)
	candidates = append(candidates, &cfg.Model.ModelConfig)
	for i := range cfg.Model.Fallbacks {
		candidates = append(candidates, &cfg.Model.Fallbacks[i])
	}

	var lastErr error
	for _, mc := range candidates {
		if mc.Provider != "ollama" && mc.APIKey == "" {
			ilog.EventWarn(ctx, "model_no_api_key", "provider", mc.Provider, "model", mc.Name)
			continue
		}
		cm, err := NewChatModel(ctx, mc)
		if err != nil {
			ilog.EventWarn(ctx, "model_init_failed", "provider", mc.Provider, "model", mc.Name, "err", err)
			lastErr = err
			continue
		}
		ilog.EventInfo(ctx, "model_ready", "provider", mc.Provider, "model", mc.Name)
		return cm, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("no usable chat model: %w", lastErr)
	}
	return nil, fmt.Errorf("no usable chat model: no provider has an API key configured")
}
