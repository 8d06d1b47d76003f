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

// Package toolcache caches tool invocations by name and raw arguments.
// Tools that manage their own cache keys do not need it; it exists for
// wrapping third-party tools that have no caching of their own.
package toolcache

import (
	"context"

	"github.com/RanFeng/ilog"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/tripwise-ai/tripwise/pkg/cache"
)

type cachedTool struct {
	inner tool.InvokableTool
	cache *cache.ExpiringCache
}

// Wrap decorates an invokable tool so that repeated calls with the
// same arguments are served from c instead of re-invoking the tool.
func Wrap(t tool.InvokableTool, c *cache.ExpiringCache) tool.InvokableTool {
	return &cachedTool{inner: t, cache: c}
}

func (t *cachedTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return t.inner.Info(ctx)
}

func (t *cachedTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	info, err := t.inner.Info(ctx)
	if err != nil {
		return "", err
	}

	key := info.Name + ":" + argumentsInJSON
	if v, ok := t.cache.Get(key); ok {
		ilog.EventInfo(ctx, "tool_cache_hit", "tool", info.Name)
		return v.(string), nil
	}

	out, err := t.inner.InvokableRun(ctx, argumentsInJSON, opts...)
	if err != nil {
		return "", err
	}

	t.cache.Set(key, out)
	return out, nil
}
